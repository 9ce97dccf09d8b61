// Package config provides the configuration model, loader, validator, and
// default values for kbsecret's config.yml, which declares the sessions and
// generator profiles that commands may refer to.
package config

// Config is the root struct matching config.yml.
type Config struct {
	Sessions   map[string]SessionConfig   `yaml:"sessions" json:"sessions"`
	Generators map[string]GeneratorConfig `yaml:"generators" json:"generators"`
}

// SessionConfig declares one session. Root names the storage bucket and
// defaults to the session label.
type SessionConfig struct {
	Root  string   `yaml:"root" json:"root"`
	Users []string `yaml:"users,omitempty" json:"users,omitempty"`
}

// GeneratorConfig declares one generator profile.
type GeneratorConfig struct {
	Format string `yaml:"format" json:"format"` // "hex" | "base64"
	Length int    `yaml:"length" json:"length"` // output characters
}
