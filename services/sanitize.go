package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips any markup from user-supplied free text (occurrence
// descriptions, immediate actions, manager replies) before persistence.
func SanitizeText(input string) string {
	return strings.TrimSpace(textPolicy.Sanitize(input))
}
