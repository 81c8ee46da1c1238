package config

import (
	"os"
	"regexp"
	"strings"
)

// placeholderPattern matches ${VAR} and ${VAR:-default} placeholders
var placeholderPattern = regexp.MustCompile(`\$\{([^}{]+)\}`)

// InterpolateEnv replaces ${VAR} placeholders in text with environment
// variable values. The ${VAR:-default} form substitutes the default when
// the variable is unset. Placeholders for unset variables without a
// default are left untouched.
func InterpolateEnv(text string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		expr := match[2 : len(match)-1]

		if val, ok := os.LookupEnv(expr); ok {
			return val
		}

		if name, def, found := strings.Cut(expr, ":-"); found {
			if val, ok := os.LookupEnv(name); ok {
				return val
			}
			return def
		}

		return match
	})
}
