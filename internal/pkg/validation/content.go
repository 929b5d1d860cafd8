package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/SMU-RES/smu-course-review/internal/pkg/apperrors"
)

// DefaultCommentMaxLen is the trimmed length ceiling for free-text comments.
// Earlier revisions of the platform allowed 500 characters for flat comments;
// the nested comment system settled on 100.
const DefaultCommentMaxLen = 100

// escaper rewrites the five HTML-significant characters to their entity forms
// so persisted content is inert when rendered verbatim.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// SanitizeContent trims and validates free-text input, then HTML-escapes it.
// The length check counts runes of the trimmed input, before escaping.
func SanitizeContent(content string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", apperrors.ErrCommentEmpty
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return "", apperrors.ErrCommentTooLong
	}
	return escaper.Replace(trimmed), nil
}

// ValidateScore bounds-checks a rating score.
func ValidateScore(score int) error {
	if score < 1 || score > 5 {
		return apperrors.ErrScoreOutOfRange
	}
	return nil
}
