package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceZero(t *testing.T) {
	tests := []struct {
		name     string
		values   []any
		expected string
	}{
		{name: "first non-empty", values: []any{"", "key", "path"}, expected: "key"},
		{name: "first wins", values: []any{"target", "key"}, expected: "target"},
		{name: "all empty", values: []any{"", ""}, expected: ""},
		{name: "no values", values: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoalesceZero[string](tt.values...))
		})
	}
}

func TestCancelContext(t *testing.T) {
	assert.NotPanics(t, func() { CancelContext(nil) })

	ctx, cancel := context.WithCancel(context.Background())
	CancelContext(cancel)
	assert.Error(t, ctx.Err())
}
