package config

import (
	"sort"

	"github.com/kbsecret/kbsecret/internal/generator"
	"github.com/kbsecret/kbsecret/internal/session"
)

// Generator resolves a configured generator profile by exact name.
func (c *Config) Generator(name string) (*generator.Profile, error) {
	g, ok := c.Generators[name]
	if !ok {
		return nil, generator.NotFound(name)
	}
	return &generator.Profile{Name: name, Format: generator.Format(g.Format), Length: g.Length}, nil
}

// GeneratorNames returns the configured generator names, sorted.
func (c *Config) GeneratorNames() []string {
	names := make([]string, 0, len(c.Generators))
	for name := range c.Generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SessionDescriptors returns the configured sessions, sorted by label.
func (c *Config) SessionDescriptors() []session.Descriptor {
	out := make([]session.Descriptor, 0, len(c.Sessions))
	for label, s := range c.Sessions {
		out = append(out, session.Descriptor{Label: label, Root: s.Root, Users: s.Users})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
