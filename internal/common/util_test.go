package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	s, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)

	s2, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.NotEqual(t, s, s2)
}

func TestValidFileType(t *testing.T) {
	tests := []struct {
		name string
		t    string
		want bool
	}{
		{"folder", TypeFolder, true},
		{"file", TypeFile, true},
		{"image", TypeImage, true},
		{"empty", "", false},
		{"unknown", "archive", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidFileType(tt.t))
		})
	}
}
