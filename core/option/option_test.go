package option_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/myrimark/core/option"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionMaybe(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	color := func(x option.StringT) interface{} {
		y, err := x.Match(option.Maybe{
			option.None: "transparent",
			option.Some: stringify,
		})
		require.NoError(t, err)
		return y
	}
	assert.Equal(t, `Value = "#ff0000"`, color(option.Param([]string{"#ff0000"}, 0)))
	assert.Equal(t, "transparent", color(option.Param([]string{"#ff0000"}, 1)))
	//
	_, err := option.String().Match(option.Maybe{option.Some: 1})
	assert.Equal(t, option.ErrCannotMatchUnsetValue, err)
}

func TestOptionOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	choices := option.Of{
		option.None: 0,
		"multicol":  99,
		option.Some: 1,
	}
	y, err := option.SomeString("multicol").Match(choices)
	require.NoError(t, err)
	assert.Equal(t, 99, y)
	y, _ = option.SomeString("paragraph").Match(choices)
	assert.Equal(t, 1, y)
	y, _ = option.String().Match(choices)
	assert.Equal(t, 0, y)
	//
	_, err = option.SomeString("other").Match(option.Of{"multicol": 99})
	assert.Equal(t, option.ErrCannotMatchValue, err)
	_, err = option.SomeString("x").Match(map[string]int{})
	assert.Equal(t, option.ErrNoSuchMatchPattern, err)
	//
	assert.Equal(t, "multicol", option.SomeString("multicol").OrElse("none"))
	assert.Equal(t, "none", option.String().OrElse("none"))
}

func TestOptionFloat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	scale := func(s option.StringT) float64 {
		f, _ := option.ParseFloat(s).Match(option.Maybe{
			option.None: 1.0,
			option.Some: func(o interface{}) (interface{}, error) {
				return o.(option.FloatT).Unwrap()
			},
			option.Error: 1.0,
		})
		return f.(float64)
	}
	assert.Equal(t, 0.5, scale(option.SomeString(" 0.5 ")))
	assert.Equal(t, 1.0, scale(option.String()))
	assert.Equal(t, 1.0, scale(option.SomeString("huge")))
	assert.Equal(t, "Float.NaN", option.ParseFloat(option.SomeString("x")).String())
	assert.True(t, option.SomeFloat(2).Equals(2))
	assert.False(t, option.Float().Equals(0))
}

func TestOptionFail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	x := option.SomeString("none")
	_, err := x.Match(option.Of{
		option.None:  7,
		"none":       option.Fail(errors.New("Fail")),
		option.Some:  x.Unwrap(),
		option.Error: option.Fail(errors.New("Caught Fail")),
	})
	require.Error(t, err)
	assert.Equal(t, "Caught Fail", err.Error())
	//
	_, err = option.String().Match(option.Maybe{
		option.None: option.Fail(errors.New("missing")),
	})
	assert.EqualError(t, err, "missing")
}

func TestOptionErrorCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "myrimark.input")
	defer teardown()
	//
	s, err := option.SomeString("x").Match(option.Of{
		option.None:  "None",
		option.Some:  nonsense,
		option.Error: "ERROR",
	})
	require.NoError(t, err)
	assert.Equal(t, "ERROR", s)
}

// ---------------------------------------------------------------------------

func nonsense(x interface{}) (interface{}, error) {
	return nil, errors.New("ERROR")
}

func stringify(x interface{}) (interface{}, error) {
	return fmt.Sprintf("Value = %v", x), nil
}
