// Package generator defines the text-generation capability consumed by the
// discussion driver, with an OpenAI adapter and a retrying wrapper.
package generator

import (
	"context"
	"errors"
)

// ErrEmptyOutput indicates the capability returned no usable text.
var ErrEmptyOutput = errors.New("generator returned empty output")

// Request carries one generation context: the persona and instructions as
// the system text, and the discussion material as the prompt.
type Request struct {
	System string
	Prompt string
}

// Invoker produces text for one request. Implementations may be slow and
// may fail; callers bound them with contexts and retry policies.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (string, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, req Request) (string, error)

// Invoke calls the wrapped function.
func (f InvokerFunc) Invoke(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
