package orchestrator

import (
	"fmt"
	"regexp"
	"strings"
)

// refNameRegex rejects characters git never allows in a ref name.
var refNameRegex = regexp.MustCompile(`^[^\x00-\x20\x7f~^:?*\[\\]+$`)

// ValidateRefName checks an expanded tag or branch name against git's ref-name rules.
func ValidateRefName(name string) error {
	if name == "" {
		return fmt.Errorf("ref name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("ref name too long: %d characters (max: 255)", len(name))
	}
	if name == "@" {
		return fmt.Errorf("ref name cannot be @")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("ref name cannot start with a dash: %s", name)
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") || strings.Contains(name, "//") {
		return fmt.Errorf("ref name cannot start or end with slash or contain empty components: %s", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("ref name cannot contain consecutive dots: %s", name)
	}
	if strings.Contains(name, "@{") {
		return fmt.Errorf("ref name cannot contain @{: %s", name)
	}
	if strings.HasSuffix(name, ".") {
		return fmt.Errorf("ref name cannot end with a dot: %s", name)
	}
	for _, component := range strings.Split(name, "/") {
		if strings.HasPrefix(component, ".") {
			return fmt.Errorf("ref name component cannot start with a dot: %s", name)
		}
		if strings.HasSuffix(component, ".lock") {
			return fmt.Errorf("ref name component cannot end with .lock: %s", name)
		}
	}
	if !refNameRegex.MatchString(name) {
		return fmt.Errorf("invalid ref name format: %s", name)
	}
	return nil
}
