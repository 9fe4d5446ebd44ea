// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxContentLength is the maximum length, in characters, of post and reply
// content after trimming.
const MaxContentLength = 280

// MaxBioLength is the maximum length of a user bio.
const MaxBioLength = 160

var imageFileRegex = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)

// ValidateContent trims s and checks it is 1-280 characters long.
// Returns the trimmed content.
func ValidateContent(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("content is required")
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxContentLength {
		return "", fmt.Errorf("content too long (%d characters, max %d)", n, MaxContentLength)
	}
	return trimmed, nil
}

// ValidateBio checks the bio length. Empty bios are allowed.
func ValidateBio(s string) error {
	if utf8.RuneCountInString(s) > MaxBioLength {
		return fmt.Errorf("bio must not exceed %d characters", MaxBioLength)
	}
	return nil
}

// ValidateImageURL checks that u parses as a URL and its path ends in an
// image file extension.
func ValidateImageURL(u string) error {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("image URL must be a valid URL")
	}
	if !imageFileRegex.MatchString(parsed.Path) {
		return fmt.Errorf("image URL must point to an image file (jpg, jpeg, png, gif, webp)")
	}
	return nil
}
