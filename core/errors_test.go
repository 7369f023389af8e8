package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := WrapError(errors.New("open x.mmk: no such file"), EMISSING, "source %s not found", "x.mmk")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "source x.mmk not found", UserMessage(err))
	assert.Equal(t, 2, ExitCode(err))
	//
	wrapped := fmt.Errorf("rendering failed: %w", err)
	assert.Equal(t, EMISSING, Code(wrapped), "code should survive wrapping")
}

func TestNilErrors(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, 0, ExitCode(nil))
	err := ErrorWithCode(nil, EDECODE)
	assert.Equal(t, EDECODE, Code(err))
	assert.Equal(t, "cannot decode", UserMessage(err))
}

func TestForeignError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, EINTERNAL, Code(err))
	assert.Equal(t, "internal error", UserMessage(err))
	assert.Equal(t, 1, ExitCode(err))
}
