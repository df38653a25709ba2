package config

import (
	"os"
	"regexp"
)

// envVarPattern matches ${VAR} or ${VAR:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// ExpandEnv replaces ${VAR} with the value of VAR, and ${VAR:-default}
// with the value of VAR or default when VAR is unset or empty.
// An unset variable without a default expands to the empty string.
//
//	icons:
//	  root: ${ICON_ROOT:-src/assets/icon/common}
func ExpandEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if value, ok := os.LookupEnv(parts[1]); ok && value != "" {
			return value
		}
		if parts[2] != "" {
			return parts[3]
		}
		return ""
	})
}

// ExpandEnvBytes is ExpandEnv for file contents
func ExpandEnvBytes(input []byte) []byte {
	return []byte(ExpandEnv(string(input)))
}

// MissingEnvVars lists the variables referenced without a default that are
// unset or empty, each once, in order of appearance
func MissingEnvVars(input string) []string {
	seen := make(map[string]bool)
	var missing []string

	for _, m := range envVarPattern.FindAllStringSubmatch(input, -1) {
		name := m[1]
		if seen[name] || m[2] != "" {
			continue
		}
		seen[name] = true
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}

	return missing
}
