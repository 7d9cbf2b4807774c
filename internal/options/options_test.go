package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	samples int
	label   string
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}
	err := Apply(cfg,
		NoError(func(c *testConfig) { c.samples = 300 }),
		NoError(func(c *testConfig) { c.label = "curve" }),
	)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.samples)
	assert.Equal(t, "curve", cfg.label)
}

func TestApplyStopsOnError(t *testing.T) {
	boom := errors.New("bad option")
	cfg := &testConfig{}
	err := Apply(cfg,
		New(func(c *testConfig) error { return boom }),
		NoError(func(c *testConfig) { c.samples = 42 }),
	)
	require.ErrorIs(t, err, boom)
	assert.Zero(t, cfg.samples, "options after a failing one must not run")
}
