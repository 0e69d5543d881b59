package envtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Speed; 1|2|4", "1"},
		{"Skin; classic", "classic"},
		{"no label|alt", "no label"},
		{"", ""},
		{"Label; ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, defaultValue(tt.in), "input %q", tt.in)
	}
}
