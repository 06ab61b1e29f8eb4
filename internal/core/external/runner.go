// Package external adapts command-line tools (tesseract, pdftoppm, catppt) to
// the core collaborator interfaces.
package external

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/markdave123-py/docsight/internal/core"
)

// runCommand runs bin to completion and captures its output. A tool that ran
// and exited non-zero is not an error here; callers read ExitCode.
func runCommand(ctx context.Context, stdin []byte, bin string, args ...string) (*core.CommandResult, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("run %s: %w", bin, ctxErr)
	}
	res := &core.CommandResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", bin, err)
	}
	return res, nil
}

// lookTool resolves bin on PATH, or accepts it as given when it is a path.
func lookTool(bin string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%s not found: %w", bin, err)
	}
	return path, nil
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
