package feedback

import (
	"time"

	"github.com/google/uuid"
)

// MaxFileSize caps uploads at 10 MiB, checked before any blob write.
const MaxFileSize = 10 * 1024 * 1024

// AllowedMimeTypes is the upload allow-list: PDF, common office formats
// (including HWP) and common image formats.
var AllowedMimeTypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-excel",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/haansofthwp",
	"image/jpeg",
	"image/png",
	"image/gif",
}

func MimeTypeAllowed(mimeType string) bool {
	for _, m := range AllowedMimeTypes {
		if m == mimeType {
			return true
		}
	}
	return false
}

// Attachment is one uploaded supporting file. Ownership follows the same
// weak model as comments: the UploadedBy string is the delete credential.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	ContentPath string    `json:"content_path"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	DownloadURL string    `json:"download_url,omitempty"`
}
