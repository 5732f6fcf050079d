// Package block implements the Block container (§4.5): an ordered
// sequence of ColumnDescriptors paired with typed column storage, the
// opaque carrier the Native and RowBinary framers read into and write
// from.
package block

import (
	"fmt"
	"strings"

	"github.com/lattice-io/chcore/chtype"
	"github.com/lattice-io/chcore/errs"
)

// ColumnDescriptor names one column of a Block: its name, its element
// type, and how many levels of Array(...) nesting wrap that element type
// (§3).
type ColumnDescriptor struct {
	Name        string
	ElementType chtype.Type
	ArrayDepth  int
}

// NewColumnDescriptor builds a scalar (ArrayDepth 0) ColumnDescriptor. It
// fails with errs.ErrEmptyColumnName if name is empty.
func NewColumnDescriptor(name string, elementType chtype.Type) (ColumnDescriptor, error) {
	return NewArrayColumnDescriptor(name, elementType, 0)
}

// NewArrayColumnDescriptor builds a ColumnDescriptor wrapped in arrayDepth
// levels of Array(...). It fails with errs.ErrEmptyColumnName if name is
// empty.
func NewArrayColumnDescriptor(name string, elementType chtype.Type, arrayDepth int) (ColumnDescriptor, error) {
	if name == "" {
		return ColumnDescriptor{}, errs.ErrEmptyColumnName
	}

	return ColumnDescriptor{Name: name, ElementType: elementType, ArrayDepth: arrayDepth}, nil
}

// WireTypeName returns the element type's canonical name wrapped in
// ArrayDepth layers of "Array(...)", the derived property named in §3.
func (d ColumnDescriptor) WireTypeName() string {
	name := d.ElementType.TypeName()
	for i := 0; i < d.ArrayDepth; i++ {
		name = "Array(" + name + ")"
	}

	return name
}

// EffectiveElementShape returns a short human-readable description of this
// column's shape: the element type's name wrapped in ArrayDepth layers of
// "sequence of", the derived property named in §3.
func (d ColumnDescriptor) EffectiveElementShape() string {
	shape := d.ElementType.TypeName()
	prefix := strings.Repeat("sequence of ", d.ArrayDepth)

	return fmt.Sprintf("%s%s", prefix, shape)
}
