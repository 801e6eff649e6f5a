package feedback

import (
	"strings"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
)

// NormalizeComment trims and length-caps incoming comment fields before
// persisting. Fields empty after trimming fail validation.
func NormalizeComment(contentPath, author, body string) (string, string, string, error) {
	contentPath = strings.TrimSpace(contentPath)
	author = capRunes(strings.TrimSpace(author), MaxAuthorLen)
	body = capRunes(strings.TrimSpace(body), MaxBodyLen)

	if contentPath == "" || author == "" || body == "" {
		return "", "", "", apperr.NewValidation("author, body, content_path are required")
	}
	return contentPath, author, body, nil
}

func capRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ValidateUpload rejects oversized files and disallowed MIME types before
// any blob write happens.
func ValidateUpload(size int64, mimeType string) error {
	if size > MaxFileSize {
		return apperr.NewValidation("file size exceeds 10MB limit")
	}
	if !MimeTypeAllowed(mimeType) {
		return apperr.NewValidation("file type not allowed. Allowed: pdf, xlsx, xls, doc, docx, hwp, jpg, jpeg, png, gif")
	}
	return nil
}
