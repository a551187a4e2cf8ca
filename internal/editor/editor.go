// Package editor edits text by handing it to an external program.
package editor

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

var (
	ErrLaunch     = errors.New("could not start editor")
	ErrEditorExit = errors.New("editor exited with an error")
	timeNow       = func() time.Time { return time.Now().UTC() }
)

// Editor turns seed text into edited text.
type Editor interface {
	Edit(ctx context.Context, seed string) (string, error)
}

// Func adapts a plain function to Editor.
type Func func(ctx context.Context, seed string) (string, error)

func (f Func) Edit(ctx context.Context, seed string) (string, error) { return f(ctx, seed) }

// LaunchError wraps the failure to start the editor process.
// It satisfies errors.Is(err, ErrLaunch).
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrLaunch, e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

func (e *LaunchError) Is(target error) bool {
	return target == ErrLaunch
}

// External runs Command against a scratch file and waits for it to exit.
type External struct {
	Command string
	TempDir string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	log     *log.Logger
}

// New returns an External attached to the process terminal.
func New(command string, logger *log.Logger) *External {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &External{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		log:     logger,
	}
}

func (e *External) Edit(ctx context.Context, seed string) (string, error) {
	argv := strings.Fields(e.Command)
	if len(argv) == 0 {
		return "", &LaunchError{Command: e.Command, Err: errors.New("no editor configured")}
	}

	path, err := e.writeScratch(seed)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	e.logger().Debug("launching editor", "command", e.Command, "file", path)
	if err := cmd.Start(); err != nil {
		return "", &LaunchError{Command: e.Command, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEditorExit, err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read scratch file: %w", err)
	}
	return string(b), nil
}

func (e *External) writeScratch(seed string) (string, error) {
	dir := e.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "todo-note-"+newULID()+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	if _, err := io.WriteString(f, seed); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	return path, nil
}

func (e *External) logger() *log.Logger {
	if e.log == nil {
		return log.New(io.Discard)
	}
	return e.log
}

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

func newULID() string {
	t := ulid.Timestamp(timeNow())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return id.String()
}
