package generator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]+$`)

func TestGenerate_Hex(t *testing.T) {
	for _, n := range []int{1, 2, 15, 16, 64} {
		p := &Profile{Name: "h", Format: Hex, Length: n}
		got, err := p.Generate()
		require.NoError(t, err)
		assert.Len(t, got, n)
		assert.Regexp(t, hexPattern, got)
	}
}

func TestGenerate_Base64(t *testing.T) {
	for _, n := range []int{1, 3, 4, 17, 40} {
		p := &Profile{Name: "b", Format: Base64, Length: n}
		got, err := p.Generate()
		require.NoError(t, err)
		assert.Len(t, got, n)
		assert.NotContains(t, got, "=")
		for _, r := range got {
			assert.Contains(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/", string(r))
		}
	}
}

func TestGenerate_Distinct(t *testing.T) {
	p := &Profile{Name: "d", Format: Hex, Length: 32}
	a, err := p.Generate()
	require.NoError(t, err)
	b, err := p.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr string
	}{
		{"ok", Profile{Name: "x", Format: Hex, Length: 8}, ""},
		{"bad format", Profile{Name: "x", Format: "ascii85", Length: 8}, "unknown format"},
		{"zero length", Profile{Name: "x", Format: Base64, Length: 0}, "length must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			_, genErr := tt.profile.Generate()
			assert.Error(t, genErr)
		})
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("strong")
	assert.ErrorIs(t, err, ErrNoSuchGenerator)
	assert.True(t, exitcode.Is(err, exitcode.Resolution))
	assert.Equal(t, "no such generator profile: strong", err.Error())
}
