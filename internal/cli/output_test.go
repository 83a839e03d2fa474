package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Error(t *testing.T) {
	plain := NewExitError(ExitCommandError, "this post is already public")
	assert.Equal(t, "this post is already public", plain.Error())

	wrapped := WrapExitError(ExitFailure, "loading configuration", errors.New("no such file"))
	assert.Equal(t, "loading configuration: no such file", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "no such file")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "x", errors.New("y"))))

	// Exit codes survive further wrapping.
	inner := NewExitError(ExitCommandError, "inner")
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("outer: %w", inner)))
}
