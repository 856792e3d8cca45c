package cli

import (
	"fmt"
	"strings"

	"github.com/formloom/formloom-cli/pkg/models"
)

// ValidateFormName validates a form name
func ValidateFormName(name string) error {
	if name == "" {
		return fmt.Errorf("form name cannot be empty")
	}

	// Check for invalid characters
	invalidChars := []string{"/", "\\", "..", "~", "$", "`"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("form name contains invalid character: %s", char)
		}
	}

	return nil
}

// ValidateFieldType validates a field type string
func ValidateFieldType(t string) error {
	if models.ValidFieldType(models.FieldType(strings.ToLower(t))) {
		return nil
	}

	types := make([]string, len(models.FieldTypeOrder))
	for i, ft := range models.FieldTypeOrder {
		types[i] = string(ft)
	}
	return fmt.Errorf("invalid field type: %s (must be one of: %s)", t, strings.Join(types, ", "))
}

// ValidateContentStyle validates a content block style string
func ValidateContentStyle(s string) error {
	if models.ValidContentStyle(models.ContentStyle(strings.ToLower(s))) {
		return nil
	}

	styles := make([]string, len(models.ContentStyleOrder))
	for i, cs := range models.ContentStyleOrder {
		styles[i] = string(cs)
	}
	return fmt.Errorf("invalid content style: %s (must be one of: %s)", s, strings.Join(styles, ", "))
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
