// Package generator produces new secret values from named profiles.
package generator

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

// Format is the alphabet a profile generates from.
type Format string

const (
	Hex    Format = "hex"
	Base64 Format = "base64"
)

// Formats lists the supported formats.
var Formats = []Format{Hex, Base64}

const (
	DefaultName   = "default"
	DefaultFormat = Hex
	DefaultLength = 16
)

// ErrNoSuchGenerator is wrapped when a profile name is not configured.
var ErrNoSuchGenerator = errors.New("no such generator profile")

// Profile is a named generation rule. Length counts output characters.
type Profile struct {
	Name   string `json:"name"`
	Format Format `json:"format"`
	Length int    `json:"length"`
}

// NotFound builds the resolution error for an unknown profile name.
func NotFound(name string) error {
	return exitcode.Wrap(exitcode.Resolution, fmt.Errorf("%w: %s", ErrNoSuchGenerator, name))
}

// Validate checks the format and length.
func (p *Profile) Validate() error {
	switch p.Format {
	case Hex, Base64:
	default:
		return fmt.Errorf("generator %q: unknown format %q (want hex or base64)", p.Name, p.Format)
	}
	if p.Length <= 0 {
		return fmt.Errorf("generator %q: length must be positive, got %d", p.Name, p.Length)
	}
	return nil
}

// Generate returns a new random secret of exactly p.Length characters.
func (p *Profile) Generate() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	var encoded string
	switch p.Format {
	case Hex:
		buf, err := random((p.Length + 1) / 2)
		if err != nil {
			return "", err
		}
		encoded = hex.EncodeToString(buf)
	case Base64:
		buf, err := random((p.Length*3)/4 + 3)
		if err != nil {
			return "", err
		}
		encoded = base64.StdEncoding.EncodeToString(buf)
	}
	return encoded[:p.Length], nil
}

func random(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("reading random bytes: %w", err)
	}
	return buf, nil
}
