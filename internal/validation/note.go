// Package validation provides input validation utilities executed before any
// persistence call.
package validation

import (
	"fmt"
	"strings"
)

const (
	// MaxTitleLength is the maximum allowed note title length.
	MaxTitleLength = 100
	// MaxContentLength is the maximum allowed note content length.
	MaxContentLength = 5000
)

// ValidateNoteTitle checks that a title is non-empty after trimming and within
// the length limit.
func ValidateNoteTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("Title and content are required")
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("Title must be %d characters or less", MaxTitleLength)
	}
	return nil
}

// ValidateNoteContent checks that content is non-empty after trimming and
// within the length limit.
func ValidateNoteContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("Title and content are required")
	}
	if len(content) > MaxContentLength {
		return fmt.Errorf("Content must be %d characters or less", MaxContentLength)
	}
	return nil
}

// NormalizeTags trims every tag and drops entries that are empty after
// trimming, preserving order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// ParseTagList splits a comma-separated tag query parameter into a normalized
// tag list.
func ParseTagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := NormalizeTags(parts)
	if len(tags) == 0 {
		return nil
	}
	return tags
}
