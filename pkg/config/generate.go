package config

import (
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
)

// GenerateDefault renders the default settings as a commented TOML
// document suitable for seeding a user config file.
func GenerateDefault() (string, error) {
	var s Settings
	out, err := gotoml.Marshal(&s)
	if err != nil {
		return "", err
	}

	header := strings.Join([]string{
		"# dupkeep configuration.",
		"# Place this file at " + Path(),
		"# Command-line flags override every value here.",
		"",
		"",
	}, "\n")
	return header + string(out), nil
}
