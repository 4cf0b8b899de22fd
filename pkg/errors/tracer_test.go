package errors

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: Wrap captures a stack trace for plain errors
func TestTracer_WrapPlainError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	tracer := NewTracer("publish_failed").Wrap(cause)

	assert.Equal(t, "publish_failed: connection refused", tracer.Error())
	assert.NotNil(t, tracer.StackTrace())
	assert.ErrorIs(t, tracer, cause)
}

// Test 2: Wrap keeps an existing stack trace instead of re-capturing
func TestTracer_WrapStackedError(t *testing.T) {
	cause := pkgerrors.New("already stacked")
	tracer := NewTracer("publish_failed").Wrap(cause)

	require.NotNil(t, tracer.StackTrace())
	assert.Same(t, cause, tracer.Unwrap())
}

// Test 3: TracerFromError uses the cause's message as the label
func TestTracerFromError(t *testing.T) {
	cause := fmt.Errorf("boom")
	tracer := TracerFromError(cause)

	assert.Equal(t, "boom: boom", tracer.Error())
	assert.NotNil(t, tracer.StackTrace())
}

// Test 4: A label-only tracer reports just the label
func TestTracer_NoCause(t *testing.T) {
	tracer := NewTracer("label_only")

	assert.Equal(t, "label_only", tracer.Error())
	assert.Nil(t, tracer.Unwrap())
	assert.Nil(t, tracer.StackTrace())
}
