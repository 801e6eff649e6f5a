package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/minjae-ko/localtax-portal/internal/feedback"
	"github.com/minjae-ko/localtax-portal/pkg/stringsutil"
)

const (
	maxGuidelinesChars  = 12000
	maxFileContentChars = 24000
)

// InstructionInput is everything needed to compose one editing instruction
// for a single content file.
type InstructionInput struct {
	ContentPath     string
	FilePath        string
	FileContent     string
	Guidelines      string
	Comments        []feedback.Comment
	AttachmentTexts []string
	RunDate         time.Time
}

// ComposeInstruction renders the editing instruction the agent receives. The
// guidelines and file content are length-capped so a pathological input
// cannot blow up the prompt.
func ComposeInstruction(in InstructionInput) string {
	var sb strings.Builder

	sb.WriteString("다음은 지방세 안내 문서에 접수된 사용자 피드백입니다. 피드백을 반영하여 문서를 수정하세요.\n\n")

	sb.WriteString("## 작성 지침\n")
	sb.WriteString(stringsutil.Truncate(in.Guidelines, maxGuidelinesChars))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "## 대상 파일\n%s\n\n", in.FilePath)

	sb.WriteString("## 현재 문서 내용\n")
	sb.WriteString(stringsutil.Truncate(in.FileContent, maxFileContentChars))
	sb.WriteString("\n\n")

	sb.WriteString("## 피드백\n")
	for i, c := range in.Comments {
		fmt.Fprintf(&sb, "%d. %s (%s):\n%s\n", i+1, c.Author, c.CreatedAt.Format("2006-01-02 15:04"), c.Body)
	}
	sb.WriteString("\n")

	if len(in.AttachmentTexts) > 0 {
		sb.WriteString("## 첨부 자료\n")
		for _, t := range in.AttachmentTexts {
			sb.WriteString(t)
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString("## 수정 규칙\n")
	sb.WriteString("- 위 파일만 수정하고 다른 파일은 건드리지 마세요.\n")
	sb.WriteString("- 피드백끼리 충돌하면 가장 최근 피드백을 따르세요.\n")
	sb.WriteString("- 수정이 필요 없는 피드백(단순 감상, 질문 등)은 무시하세요.\n")
	fmt.Fprintf(&sb, "- 내용을 수정했다면 front matter의 last_updated를 %s로 갱신하세요.\n", in.RunDate.Format("2006-01-02"))
	sb.WriteString("- 근거 없는 사실을 만들어내지 마세요. 피드백과 첨부 자료에 없는 내용은 추가하지 마세요.\n")

	return sb.String()
}
