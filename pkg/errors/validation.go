package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds node, edge and diagram names.
const maxNameLength = 256

// ValidateName validates a node or edge name.
//
// Names are diagram-local keys, so the rules only guard against values that
// cannot be rendered or addressed:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	return nil
}

// templateNameRegex matches registrable shape template names.
var templateNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateTemplateName validates a shape template name for registration.
// Lookups never validate: an unknown or malformed name simply falls back.
func ValidateTemplateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTemplate, "template name cannot be empty")
	}
	if !templateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTemplate, "invalid template name: %q", name)
	}
	return nil
}

// ValidateFilename validates a diagram's filename label.
// The filename is free-form and never touches the filesystem, but it is
// embedded in SVG output and must stay on a single line.
func ValidateFilename(filename string) error {
	if filename == "" {
		return nil
	}
	if len(filename) > maxNameLength {
		return New(ErrCodeInvalidInput, "filename too long (max %d characters)", maxNameLength)
	}
	if strings.ContainsAny(filename, "\x00\n\r") {
		return New(ErrCodeInvalidInput, "filename contains invalid characters")
	}
	return nil
}
