package pg

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS comments (
    id UUID PRIMARY KEY,
    content_path TEXT NOT NULL,
    author VARCHAR(100) NOT NULL,
    body VARCHAR(5000) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    processed BOOLEAN NOT NULL DEFAULT false,
    processed_at TIMESTAMPTZ,
    commit_sha TEXT
);

CREATE INDEX IF NOT EXISTS idx_comments_content_path ON comments (content_path);
CREATE INDEX IF NOT EXISTS idx_comments_unprocessed ON comments (created_at) WHERE processed IS NOT TRUE;

CREATE TABLE IF NOT EXISTS attachments (
    id UUID PRIMARY KEY,
    content_path TEXT NOT NULL,
    file_name TEXT NOT NULL,
    storage_path TEXT NOT NULL,
    file_size BIGINT NOT NULL,
    mime_type TEXT NOT NULL,
    uploaded_by VARCHAR(100) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_attachments_content_path ON attachments (content_path);
`

// Migrate creates the feedback tables when they do not exist yet.
func Migrate(ctx context.Context, pool *ConnectionPool) error {
	if _, err := pool.conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
