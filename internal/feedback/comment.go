package feedback

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxAuthorLen = 100
	MaxBodyLen   = 5000
)

// Comment is one reader remark against a content path. The author string is
// the only ownership credential; there is no account system behind it.
type Comment struct {
	ID          uuid.UUID  `json:"id"`
	ContentPath string     `json:"content_path"`
	Author      string     `json:"author"`
	Body        string     `json:"body"`
	CreatedAt   time.Time  `json:"created_at"`
	Processed   bool       `json:"processed"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CommitSha   string     `json:"commit_sha,omitempty"`
}
