package opt_test

import (
	"errors"
	"testing"

	// Packages
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	assert "github.com/stretchr/testify/assert"
)

func TestApplyEmpty(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply()
	assert.NoError(err)
	assert.NotNil(opts)
	assert.False(opts.Has("missing"))
}

func TestApplyNil(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(nil, opt.SetString("key", "value"), nil)
	assert.NoError(err)
	assert.Equal("value", opts.GetString("key"))
}

func TestStringOptions(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.SetString("key", " value "))
	assert.NoError(err)
	assert.Equal("value", opts.GetString("key"))
	assert.Equal([]string{" value "}, opts.Query("key")["key"])
}

func TestSetStringReplaces(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.SetString("key", "a"), opt.SetString("key", "c"))
	assert.NoError(err)
	assert.Equal("c", opts.GetString("key"))
	assert.Equal([]string{"c"}, opts.Query("key")["key"])
}

func TestUintOptions(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.SetUint("limit", 10), opt.SetUint("limit", 20))
	assert.NoError(err)
	assert.Equal(uint(20), opts.GetUint("limit"))
	assert.Equal([]string{"20"}, opts.Query("limit")["limit"])
	assert.Zero(opts.GetUint("missing"))
}

func TestFloatOptions(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.SetFloat64("score", 1.5))
	assert.NoError(err)
	assert.InDelta(1.5, opts.GetFloat64("score"), 1e-9)
	assert.Zero(opts.GetFloat64("missing"))
}

func TestAnyOptions(t *testing.T) {
	assert := assert.New(t)
	tk := struct{ Name string }{"toolkit"}
	opts, err := opt.Apply(opt.SetAny(opt.ToolkitKey, tk), opt.AddAny("list", 1), opt.AddAny("list", 2))
	assert.NoError(err)
	assert.Equal(tk, opts.Get(opt.ToolkitKey))
	assert.Equal([]any{1, 2}, opts.GetAll("list"))
	assert.True(opts.Has("list"))
	assert.Nil(opts.Get("missing"))
	assert.Empty(opts.Query("list").Get("list"))
}

func TestErrorOption(t *testing.T) {
	assert := assert.New(t)
	want := errors.New("boom")
	opts, err := opt.Apply(opt.SetString("a", "b"), opt.Error(want))
	assert.ErrorIs(err, want)
	assert.Nil(opts)
}
