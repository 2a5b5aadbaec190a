package validation

import (
	"fmt"
	"strings"
)

// Content limits.
const (
	MaxTitleLength    = 200
	MaxLanguageLength = 50
	MaxCodeLength     = 100_000
	MaxTags           = 10
	MaxTagLength      = 30
	MaxCommentLength  = 5_000
	MaxMessageLength  = 5_000
	MaxCollectionName = 100
)

// ValidateSnippet checks the required snippet fields. Inputs are expected to
// be trimmed already.
func ValidateSnippet(title, code, language string, tags []string) error {
	switch {
	case title == "" || code == "" || language == "":
		return fmt.Errorf("title, code and language are required")
	case len([]rune(title)) > MaxTitleLength:
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLength)
	case len(language) > MaxLanguageLength:
		return fmt.Errorf("language must not exceed %d characters", MaxLanguageLength)
	case len(code) > MaxCodeLength:
		return fmt.Errorf("code must not exceed %d bytes", MaxCodeLength)
	case len(tags) > MaxTags:
		return fmt.Errorf("at most %d tags are allowed", MaxTags)
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("tags cannot be empty")
		}
		if len([]rune(tag)) > MaxTagLength {
			return fmt.Errorf("tags must not exceed %d characters", MaxTagLength)
		}
	}
	return nil
}

// NormalizeTags trims, lowercases and de-duplicates tags, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ValidateText checks a required free-text body such as a comment or message.
func ValidateText(field, content string, max int) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	if len([]rune(content)) > max {
		return fmt.Errorf("%s must not exceed %d characters", field, max)
	}
	return nil
}
