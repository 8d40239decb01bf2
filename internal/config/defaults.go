package config

import (
	_ "embed"
)

//go:embed defaults/config.toml
var starterConfig []byte

// StarterFile returns the embedded example configuration.
func StarterFile() []byte {
	out := make([]byte, len(starterConfig))
	copy(out, starterConfig)
	return out
}
