// Package shared holds the context passed to all CLI commands.
package shared

import "os"

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// ConfigPath overrides the store file location.
	// When empty, resolution falls through to TACO_CONFIG env var →
	// settings file → ~/.config/taco/taco.json.
	ConfigPath string
}

// WorkingDir returns the --pwd flag value, or the process working directory
// when the flag was not set.
func WorkingDir(pwdFlag string) (string, error) {
	if pwdFlag != "" {
		return pwdFlag, nil
	}
	return os.Getwd()
}
