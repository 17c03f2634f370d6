package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageRendersTemplateArgs(t *testing.T) {
	err := NewParseError("0", CodeUnknownOp, "frobnicate")
	assert.Equal(t, `Unknown expression "frobnicate"`, err.Message())
	assert.Equal(t, PhaseParser, err.Phase)
	assert.Equal(t, "0", err.Key)
}

func TestZoomOutOfPlaceMessageHasNoArgs(t *testing.T) {
	err := NewParseError("", CodeZoomOutOfPlace)
	assert.Equal(t, `The "zoom" expression may only be used as the input to a top-level "curve" expression.`, err.Message())
}

func TestUnknownCodeFallsBackToPlaceholder(t *testing.T) {
	err := &Error{Code: Code("Z999"), Phase: PhaseCompiler, Key: "1"}
	assert.Contains(t, err.Message(), "Z999")
}

func TestErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = NewTypeError("0.1", CodeArityMismatch, 2, 3)
	assert.Equal(t, "Expected 2 arguments, got 3", err.Error())
}

func TestFlattenProjectsKeyAndMessage(t *testing.T) {
	errs := []*Error{
		NewParseError("0", CodeNotArray),
		NewCompileError("1.2", CodeOperatorError, "bad curve stops"),
	}
	flat := Flatten(errs)
	assert.Equal(t, []CompileError{
		{Key: "0", Message: "Expected an array"},
		{Key: "1.2", Message: "bad curve stops"},
	}, flat)
}
