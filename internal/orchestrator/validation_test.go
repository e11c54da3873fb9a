package orchestrator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRefName(t *testing.T) {
	valid := []string{"good-2024-01-01.1", "rebased/main-2024-01-01_10-00-00", "v1.0", "a@b"}
	for _, name := range valid {
		assert.NoError(t, ValidateRefName(name), name)
	}
	invalid := map[string]string{
		"":                  "cannot be empty",
		"-x":                "dash",
		"a..b":              "consecutive dots",
		"a/":                "slash",
		"a//b":              "slash",
		"x.lock":            ".lock",
		"a/.hidden":         "start with a dot",
		"a.":                "end with a dot",
		"a@{b":              "@{",
		"has space":         "invalid ref name format",
		"colon:x":           "invalid ref name format",
		"@":                 "cannot be @",
		strings.Repeat("a", 256): "too long",
	}
	for name, want := range invalid {
		err := ValidateRefName(name)
		if assert.Error(t, err, name) {
			assert.Contains(t, err.Error(), want)
		}
	}
}
