package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndIsType(t *testing.T) {
	err := New(ErrorTypePrecondition, "data/x.csv is not a file")

	assert.Equal(t, "precondition: data/x.csv is not a file", err.Error())
	assert.True(t, IsType(err, ErrorTypePrecondition))
	assert.False(t, IsType(err, ErrorTypeParse))
	assert.NotEmpty(t, err.Stack)
	assert.Contains(t, err.StackTrace(), "TestNewAndIsType")
}

func TestWrapPreservesCauseAndStack(t *testing.T) {
	inner := New(ErrorTypeParse, "bad height")
	outer := Wrap(fmt.Errorf("row 3: %w", inner), ErrorTypeData, "clean failed")

	require.NotNil(t, outer)
	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, errors.Is(outer, inner))
	assert.True(t, IsType(outer, ErrorTypeData))

	var target *Error
	require.True(t, As(outer.Cause, &target))
	assert.Equal(t, ErrorTypeParse, target.Type)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeFile, "unused"))
}

func TestWrapForeignError(t *testing.T) {
	base := errors.New("connection refused")
	err := Wrap(base, ErrorTypeNetwork, "fetch dataset")

	assert.Equal(t, "network: fetch dataset: connection refused", err.Error())
	assert.ErrorIs(t, err, base)
	assert.False(t, IsType(base, ErrorTypeNetwork))
}

func TestWithDetail(t *testing.T) {
	err := Newf(ErrorTypeParse, "cannot parse %q", "7-0").
		WithDetail("column", "height").
		WithDetail("row", 12)

	assert.Equal(t, "height", err.Details["column"])
	assert.Equal(t, 12, err.Details["row"])
	assert.Equal(t, `parse: cannot parse "7-0"`, err.Error())
}
