package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/minjae-ko/localtax-portal/internal/content"
	"github.com/minjae-ko/localtax-portal/internal/feedback"
	"github.com/minjae-ko/localtax-portal/pkg/stringsutil"
)

const instructionPreviewChars = 800

// Runner drives the feedback pipeline: it groups unprocessed comments per
// content file, lets the agent edit the file, and commits the result. Groups
// are isolated; a failing group leaves its comments unprocessed and does not
// stop the others.
type Runner struct {
	comments    feedback.CommentStore
	attachments feedback.AttachmentStore
	blobs       feedback.BlobStore
	repo        *content.FSRepository
	agent       Agent
	workspace   Workspace
	guidelines  string
	logger      *slog.Logger

	DryRun bool

	now func() time.Time
}

func NewRunner(
	comments feedback.CommentStore,
	attachments feedback.AttachmentStore,
	blobs feedback.BlobStore,
	repo *content.FSRepository,
	agent Agent,
	workspace Workspace,
	guidelines string,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		comments:    comments,
		attachments: attachments,
		blobs:       blobs,
		repo:        repo,
		agent:       agent,
		workspace:   workspace,
		guidelines:  guidelines,
		logger:      logger,
		now:         time.Now,
	}
}

// Summary aggregates one pipeline run.
type Summary struct {
	Groups            int
	GroupsCommitted   int
	GroupsUnchanged   int
	GroupsFailed      int
	CommentsProcessed int
}

func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	unprocessed, err := r.comments.GetUnprocessedComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unprocessed comments: %w", err)
	}
	if len(unprocessed) == 0 {
		r.logger.Info("no unprocessed feedback")
		return &Summary{}, nil
	}

	groups := groupByContentPath(unprocessed)
	summary := &Summary{Groups: len(groups)}

	for _, g := range groups {
		if err := r.processGroup(ctx, g, summary); err != nil {
			summary.GroupsFailed++
			r.logger.Error("feedback group failed, comments stay unprocessed",
				"contentPath", g.contentPath, "error", err)
		}
	}

	r.logger.Info("pipeline run finished",
		"groups", summary.Groups,
		"committed", summary.GroupsCommitted,
		"unchanged", summary.GroupsUnchanged,
		"failed", summary.GroupsFailed,
		"commentsProcessed", summary.CommentsProcessed)
	return summary, nil
}

type commentGroup struct {
	contentPath string
	comments    []feedback.Comment
}

func groupByContentPath(comments []feedback.Comment) []commentGroup {
	byPath := make(map[string][]feedback.Comment)
	for _, c := range comments {
		byPath[c.ContentPath] = append(byPath[c.ContentPath], c)
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	groups := make([]commentGroup, 0, len(paths))
	for _, p := range paths {
		groups = append(groups, commentGroup{contentPath: p, comments: byPath[p]})
	}
	return groups
}

func (r *Runner) processGroup(ctx context.Context, g commentGroup, summary *Summary) error {
	filePath, raw, err := r.resolveContent(g.contentPath)
	if err != nil {
		return err
	}

	attachmentTexts, err := r.collectAttachments(ctx, g.contentPath)
	if err != nil {
		return err
	}

	instruction := ComposeInstruction(InstructionInput{
		ContentPath:     g.contentPath,
		FilePath:        filePath,
		FileContent:     raw,
		Guidelines:      r.guidelines,
		Comments:        g.comments,
		AttachmentTexts: attachmentTexts,
		RunDate:         r.now(),
	})

	if r.DryRun {
		r.logger.Info("dry run, skipping agent",
			"contentPath", g.contentPath,
			"comments", len(g.comments),
			"instruction", stringsutil.Truncate(instruction, instructionPreviewChars))
		return nil
	}

	r.logger.Info("running agent", "contentPath", g.contentPath, "comments", len(g.comments))
	if _, err := r.agent.Run(ctx, instruction); err != nil {
		r.discard(g.contentPath)
		return err
	}

	modified, err := r.workspace.ModifiedContentFiles(ctx)
	if err != nil {
		r.discard(g.contentPath)
		return err
	}

	sha := ""
	if len(modified) == 0 {
		r.logger.Info("agent made no changes", "contentPath", g.contentPath)
		summary.GroupsUnchanged++
	} else {
		sha, err = r.workspace.CommitAndPush(ctx, g.comments)
		if err != nil {
			r.discard(g.contentPath)
			return err
		}
		r.logger.Info("committed feedback changes", "contentPath", g.contentPath, "sha", sha, "files", modified)
		summary.GroupsCommitted++
	}

	for _, c := range g.comments {
		if err := r.comments.MarkCommentProcessed(ctx, c.ID, sha); err != nil {
			return fmt.Errorf("failed to mark comment %s processed: %w", c.ID, err)
		}
	}
	summary.CommentsProcessed += len(g.comments)
	return nil
}

// discard restores the working tree after a failed group so the next group
// starts clean; a failed discard only logs, the run keeps going.
func (r *Runner) discard(contentPath string) {
	if err := r.workspace.Discard(context.Background()); err != nil {
		r.logger.Error("failed to discard working tree changes", "contentPath", contentPath, "error", err)
	}
}

func (r *Runner) resolveContent(contentPath string) (string, string, error) {
	categoryStr, slug, ok := strings.Cut(strings.Trim(contentPath, "/"), "/")
	if !ok || slug == "" {
		return "", "", fmt.Errorf("malformed content path %q", contentPath)
	}
	category, valid := content.ParseCategory(categoryStr)
	if !valid {
		return "", "", fmt.Errorf("unknown category in content path %q", contentPath)
	}

	filePath, err := r.repo.Resolve(category, slug, "")
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve %q: %w", contentPath, err)
	}
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return filePath, string(raw), nil
}

func (r *Runner) collectAttachments(ctx context.Context, contentPath string) ([]string, error) {
	attachments, err := r.attachments.GetAttachments(ctx, contentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments for %q: %w", contentPath, err)
	}

	texts := make([]string, 0, len(attachments))
	for _, a := range attachments {
		texts = append(texts, ExtractAttachmentText(ctx, r.blobs, a))
	}
	return texts, nil
}
