package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

const DefaultAgentTimeout = 10 * time.Minute

// Agent applies one editing instruction to the working tree and reports what
// it did. Implementations run with the repository root as working directory.
type Agent interface {
	Run(ctx context.Context, instruction string) (string, error)
}

// CLIAgent shells out to an editing agent binary, passing the instruction as
// a prompt and collecting its stdout.
type CLIAgent struct {
	Binary  string
	Dir     string
	Timeout time.Duration
}

func NewCLIAgent(dir string) *CLIAgent {
	binary := os.Getenv("AGENT_CMD")
	if binary == "" {
		binary = "claude"
	}

	timeout := DefaultAgentTimeout
	if raw := os.Getenv("AGENT_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return &CLIAgent{Binary: binary, Dir: dir, Timeout: timeout}
}

func (a *CLIAgent) Run(ctx context.Context, instruction string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.Binary, "-p", instruction)
	cmd.Dir = a.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("agent timed out after %s", a.Timeout)
		}
		return "", fmt.Errorf("agent failed: %w: %s", err, stderr.String())
	}
	return stdout.String(), nil
}
