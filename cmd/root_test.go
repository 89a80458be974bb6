package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"clean run", nil, 0},
		{"violations", contract.ErrViolations, 1},
		{"wrapped violations", fmt.Errorf("run: %w", contract.ErrViolations), 1},
		{"config error", contract.NewConfigError(errors.New("bad flag")), 2},
		{"strict parse", fmt.Errorf("%w: 2 unit(s) skipped", contract.ErrStrictParse), 3},
		{"unknown error", errors.New("boom"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}
