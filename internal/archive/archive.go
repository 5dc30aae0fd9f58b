// Package archive unpacks fetched tarballs with the host's tar utility.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Mode selects how tar is asked to read an archive.
type Mode string

const (
	// ModeGzip forces gzip decompression (tar -xz).
	ModeGzip Mode = "gzip"
	// ModePlain lets tar read the archive as-is (tar -x).
	ModePlain Mode = "plain"
)

// Kind classifies a file name by its archive suffix.
type Kind int

const (
	KindNone Kind = iota
	KindGzipTar
	KindTar
)

// KindOf returns the archive kind implied by name's suffix. Gzip suffixes
// are checked before the plain tar suffix.
func KindOf(name string) Kind {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return KindGzipTar
	case strings.HasSuffix(lower, ".tar"):
		return KindTar
	}
	return KindNone
}

// ExitError is returned when tar exits with a non-zero status.
type ExitError struct {
	Mode     Mode
	Archive  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("archive: %s extraction of %s exited with status %d: %s", e.Mode, e.Archive, e.ExitCode, e.Stderr)
}

type runFunc func(ctx context.Context, name string, args ...string) (stderr string, exitCode int, err error)

// Tar extracts archives by shelling out to tar.
type Tar struct {
	command string
	run     runFunc
}

// NewTar returns a Tar that invokes command, or "tar" when command is empty.
func NewTar(command string) *Tar {
	if command == "" {
		command = "tar"
	}
	return &Tar{command: command, run: execRun}
}

// CheckInstalled reports whether the tar command can be found on PATH.
func (t *Tar) CheckInstalled() error {
	if _, err := exec.LookPath(t.command); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	return nil
}

// Extract unpacks archivePath into dir using the given mode. The target
// directory is passed to tar explicitly; the working directory is untouched.
func (t *Tar) Extract(ctx context.Context, archivePath, dir string, mode Mode) error {
	flags := "-xf"
	if mode == ModeGzip {
		flags = "-xzf"
	}

	stderr, code, err := t.run(ctx, t.command, flags, archivePath, "-C", dir)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Mode: mode, Archive: archivePath, ExitCode: code, Stderr: stderr}
	}
	return nil
}

func execRun(ctx context.Context, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return strings.TrimSpace(stderr.String()), exitErr.ExitCode(), nil
	}
	if err != nil {
		return "", -1, fmt.Errorf("archive: run %s: %w", name, err)
	}
	return "", 0, nil
}
