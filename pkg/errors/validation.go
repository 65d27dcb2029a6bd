package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a directory or file path given on the command line
// or in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateLink validates a relative link written into generated HTML.
// It must not carry a scheme other than http(s) and must not contain
// characters that would break out of an attribute.
func ValidateLink(link string) error {
	if link == "" {
		return nil
	}
	if strings.ContainsAny(link, "\"<>\x00") {
		return New(ErrCodeInvalidInput, "link contains invalid characters: %q", link)
	}
	if i := strings.Index(link, ":"); i > 0 && !strings.ContainsAny(link[:i], "/.?#") {
		scheme := strings.ToLower(link[:i])
		if scheme != "http" && scheme != "https" {
			return New(ErrCodeInvalidInput, "link must be relative or use http(s): %q", link)
		}
	}
	return nil
}

// ValidateLabel validates a display name such as a figure name. Labels
// only appear as escaped text, so any printable character is accepted.
func ValidateLabel(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidateName validates a setplot or file name. It applies the label
// rules and also rejects path separators.
func ValidateName(name string) error {
	if err := ValidateLabel(name); err != nil {
		return err
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "name cannot contain path separators: %q", name)
	}
	return nil
}
