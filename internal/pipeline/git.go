package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/minjae-ko/localtax-portal/internal/feedback"
)

// Workspace is the repository the pipeline edits. Mutation detection and
// commit scope are limited to the content directory.
type Workspace interface {
	// ModifiedContentFiles lists content files changed in the working tree.
	ModifiedContentFiles(ctx context.Context) ([]string, error)
	// CommitAndPush stages the content directory, commits with a message
	// derived from the comments, pushes, and returns the commit sha.
	CommitAndPush(ctx context.Context, comments []feedback.Comment) (string, error)
	// Discard drops uncommitted changes under the content directory.
	Discard(ctx context.Context) error
}

// GitWorkspace shells out to git in a checkout root.
type GitWorkspace struct {
	Root       string
	ContentDir string
	Push       bool
}

func NewGitWorkspace(root, contentDir string, push bool) *GitWorkspace {
	return &GitWorkspace{Root: root, ContentDir: contentDir, Push: push}
}

func (w *GitWorkspace) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = w.Root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func (w *GitWorkspace) ModifiedContentFiles(ctx context.Context) ([]string, error) {
	out, err := w.git(ctx, "status", "--porcelain", "--", w.ContentDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		// porcelain: XY <path>, renames carry "old -> new".
		p := strings.TrimSpace(line[3:])
		if idx := strings.Index(p, " -> "); idx >= 0 {
			p = p[idx+4:]
		}
		files = append(files, p)
	}
	return files, nil
}

func (w *GitWorkspace) CommitAndPush(ctx context.Context, comments []feedback.Comment) (string, error) {
	if _, err := w.git(ctx, "add", w.ContentDir); err != nil {
		return "", err
	}
	if _, err := w.git(ctx, "commit", "-m", commitMessage(comments)); err != nil {
		return "", err
	}

	sha, err := w.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	sha = strings.TrimSpace(sha)

	if w.Push {
		if _, err := w.git(ctx, "push", "origin", "HEAD"); err != nil {
			return "", err
		}
	}
	return sha, nil
}

func (w *GitWorkspace) Discard(ctx context.Context) error {
	// Restore index and worktree from HEAD: a failed CommitAndPush has
	// already staged the edits, so restoring from the index is not enough.
	if _, err := w.git(ctx, "checkout", "HEAD", "--", w.ContentDir); err != nil {
		return err
	}
	// Files the agent created are untracked and survive checkout.
	_, err := w.git(ctx, "clean", "-fd", "--", w.ContentDir)
	return err
}

func commitMessage(comments []feedback.Comment) string {
	if len(comments) == 0 {
		return "docs: apply user feedback"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "docs: apply user feedback to %s\n\n", comments[0].ContentPath)
	for _, c := range comments {
		fmt.Fprintf(&sb, "- %s (%s)\n", shortID(c.ID.String()), c.Author)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
