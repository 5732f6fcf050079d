package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// bufferConfig stands in for the kind of small, mutable config struct this
// package's generic Option is meant to build up — capability.Descriptor is
// the real caller; this is a second, unrelated type to prove the pattern
// isn't accidentally specialized to capability.Descriptor's shape.
type bufferConfig struct {
	MinSize  int
	Label    string
	Pooled   bool
	LastCall string
}

func (bc *bufferConfig) SetMinSize(n int) error {
	if n < 0 {
		return errors.New("min size cannot be negative")
	}
	bc.MinSize = n
	bc.LastCall = "SetMinSize"

	return nil
}

func (bc *bufferConfig) SetLabel(label string) {
	bc.Label = label
	bc.LastCall = "SetLabel"
}

func (bc *bufferConfig) SetPooled(pooled bool) {
	bc.Pooled = pooled
	bc.LastCall = "SetPooled"
}

func TestNew_AppliesAndCanFail(t *testing.T) {
	cfg := &bufferConfig{}

	opt := New(func(c *bufferConfig) error { return c.SetMinSize(4096) })
	require.NoError(t, opt.apply(cfg))
	require.Equal(t, 4096, cfg.MinSize)

	failing := New(func(c *bufferConfig) error { return c.SetMinSize(-1) })
	err := failing.apply(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "negative")
}

func TestNoError_NeverFails(t *testing.T) {
	cfg := &bufferConfig{}

	opt := NoError(func(c *bufferConfig) { c.SetLabel("scratch") })
	require.NoError(t, opt.apply(cfg))
	require.Equal(t, "scratch", cfg.Label)
}

func TestApply_RunsInOrder(t *testing.T) {
	cfg := &bufferConfig{}

	opts := []Option[*bufferConfig]{
		New(func(c *bufferConfig) error { return c.SetMinSize(16) }),
		NoError(func(c *bufferConfig) { c.SetLabel("pooled") }),
		NoError(func(c *bufferConfig) { c.SetPooled(true) }),
	}

	require.NoError(t, Apply(cfg, opts...))
	require.Equal(t, 16, cfg.MinSize)
	require.Equal(t, "pooled", cfg.Label)
	require.True(t, cfg.Pooled)
	require.Equal(t, "SetPooled", cfg.LastCall)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &bufferConfig{}

	opts := []Option[*bufferConfig]{
		New(func(c *bufferConfig) error { return c.SetMinSize(8) }),
		New(func(c *bufferConfig) error { return c.SetMinSize(-1) }),
		NoError(func(c *bufferConfig) { c.SetLabel("unreached") }),
	}

	err := Apply(cfg, opts...)
	require.Error(t, err)
	require.Equal(t, 8, cfg.MinSize)
	require.Empty(t, cfg.Label)
}

func TestApply_NoOptionsIsNoop(t *testing.T) {
	cfg := &bufferConfig{}

	require.NoError(t, Apply(cfg))
	require.Equal(t, bufferConfig{}, *cfg)
}

func TestApply_GenericOverPrimitivePointer(t *testing.T) {
	var n int

	opt := NoError(func(p *int) { *p = 7 })
	require.NoError(t, Apply(&n, opt))
	require.Equal(t, 7, n)
}
