// Package validation provides request input validation for the medinfo API.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Pre-compiled pattern for medicine-name input: letters, digits and the
// punctuation that appears in real brand names (e.g. "Dolo-650",
// "Augmentin 625 Duo", "D.Cold").
var medicineNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+']+$`)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

// Substring checks are cheaper than regex for these and cover the common
// injection probes seen in logs.
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "onload=", "onerror=",
	"eval(", "expression(",
	"' or ", "\" or ", "union select", "drop table", "delete from",
	"insert into", "--", "/*", "*/",
	"../", "..\\", "file://",
	"$(", "${", "`",
}

// ValidateMedicineName checks a user-supplied medicine name. The empty
// check is deliberately separate so handlers can return the "please enter
// a medicine name" message for it.
func ValidateMedicineName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("medicine name cannot be empty")
	}

	if len(name) > 100 {
		return fmt.Errorf("medicine name too long: %d characters", len(name))
	}

	if !medicineNameRegex.MatchString(name) {
		return fmt.Errorf("medicine name contains invalid characters")
	}

	lower := strings.ToLower(name)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("medicine name contains a disallowed sequence")
		}
	}

	return nil
}

// ValidateUsername checks a registration username.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) < 3 || len(username) > 32 {
		return fmt.Errorf("username must be between 3 and 32 characters")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username contains invalid characters")
	}
	return nil
}

// ValidateMessage checks an assistant chat message.
func ValidateMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(message) > 4000 {
		return fmt.Errorf("message too long: %d characters", len(message))
	}
	return nil
}
