package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/minjae-ko/localtax-portal/internal/feedback"
	"github.com/minjae-ko/localtax-portal/pkg/stringsutil"
)

const maxExtractedChars = 8000

// ExtractAttachmentText renders one attachment into instruction text. PDFs
// get their plain text extracted; images and other allowed formats are
// annotated with a reference so the agent knows they exist.
func ExtractAttachmentText(ctx context.Context, blobs feedback.BlobStore, a feedback.Attachment) string {
	switch {
	case a.MimeType == "application/pdf":
		data, err := blobs.Get(ctx, a.StoragePath)
		if err != nil {
			return fmt.Sprintf("[첨부파일 %s: 읽기 실패]", a.FileName)
		}
		text, err := pdfText(data)
		if err != nil || strings.TrimSpace(text) == "" {
			return fmt.Sprintf("[첨부파일 %s: 텍스트 추출 불가]", a.FileName)
		}
		return fmt.Sprintf("[첨부파일 %s 내용]\n%s", a.FileName, stringsutil.Truncate(text, maxExtractedChars))
	case strings.HasPrefix(a.MimeType, "image/"):
		return fmt.Sprintf("[첨부 이미지: %s (%s)]", a.FileName, feedback.DownloadURL(a.ID))
	default:
		return fmt.Sprintf("[첨부파일: %s (%s, 내용 미추출)]", a.FileName, a.MimeType)
	}
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
