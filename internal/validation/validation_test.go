package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "test_user123", false},
		{"Too Short", "tu", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Illegal Chars", "user@123", true},
		{"Starts Dash", "-user", true},
		{"Ends Underscore", "user_", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateProfileURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"Empty", "", false},
		{"Https", "https://github.com/gopher", false},
		{"Http", "http://example.com", false},
		{"No Scheme", "github.com/gopher", true},
		{"Javascript", "javascript:alert(1)", true},
		{"Too Long", "https://example.com/" + strings.Repeat("a", 250), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileURL("github_url", tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSnippet(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		title    string
		code     string
		language string
		tags     []string
		wantErr  bool
	}{
		{"Valid", "quicksort", "func qs() {}", "go", []string{"sort"}, false},
		{"Missing Title", "", "x", "go", nil, true},
		{"Missing Code", "t", "", "go", nil, true},
		{"Missing Language", "t", "x", "", nil, true},
		{"Long Title", strings.Repeat("t", MaxTitleLength+1), "x", "go", nil, true},
		{"Too Many Tags", "t", "x", "go", make([]string, MaxTags+1), true},
		{"Blank Tag", "t", "x", "go", []string{" "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnippet(tt.title, tt.code, tt.language, tt.tags)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"go", "sort"}, NormalizeTags([]string{" Go ", "sort", "GO", ""}))
	assert.Empty(t, NormalizeTags(nil))
}

func TestValidateText(t *testing.T) {
	t.Parallel()
	assert.Error(t, ValidateText("comment", "   ", MaxCommentLength))
	assert.Error(t, ValidateText("comment", strings.Repeat("x", 11), 10))
	assert.NoError(t, ValidateText("comment", "nice snippet", MaxCommentLength))
}
