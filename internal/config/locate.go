package config

import (
	"os"
	"path/filepath"
)

// FileName is the default config file name.
const FileName = "ptah.cue"

// EnvVar overrides config discovery when set.
const EnvVar = "PTAH_CONFIG"

// Locate finds the config file to use, or "" when none exists. Order:
// $PTAH_CONFIG, ./ptah.cue, then ptah.cue next to the executable. A path set
// via $PTAH_CONFIG is returned even when the file is absent so the caller can
// fail loudly instead of silently running unconfigured.
func Locate(exeDir string) string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if exeDir != "" {
		p := filepath.Join(exeDir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// MaybeParse loads the discovered config, returning a zero Config when no
// file is found.
func MaybeParse(exeDir string) (Config, error) {
	path := Locate(exeDir)
	if path == "" {
		return Config{}, nil
	}
	return Parse(path)
}
