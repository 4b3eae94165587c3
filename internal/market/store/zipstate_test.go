package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateForZip(t *testing.T) {
	tests := []struct {
		zip      string
		expected string
		ok       bool
	}{
		{zip: "90210", expected: "CA", ok: true},
		{zip: "10001", expected: "NY", ok: true},
		{zip: "75201", expected: "TX", ok: true},
		{zip: "00601", ok: false},
		{zip: "9", ok: false},
		{zip: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			state, ok := StateForZip(tt.zip)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, state)
		})
	}
}
