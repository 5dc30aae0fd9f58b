// Package irods talks to an iRODS data store through the icommands
// (ilocate, iget) installed on the host.
package irods

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
)

// DefaultGetFlags keeps checksums, preserves timestamps, shows progress and
// verifies the transfer.
var DefaultGetFlags = []string{"-KPVT"}

// runFunc executes name with args in dir and returns its standard output.
type runFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// Options configures the icommand names and transfer flags.
type Options struct {
	LocateCommand string   // default "ilocate"
	GetCommand    string   // default "iget"
	GetFlags      []string // default DefaultGetFlags
}

// Client runs icommands on behalf of the retrieval pipeline.
type Client struct {
	locateCmd string
	getCmd    string
	getFlags  []string
	run       runFunc
}

// NewClient creates a Client, filling unset options with defaults.
func NewClient(opts Options) *Client {
	c := &Client{
		locateCmd: opts.LocateCommand,
		getCmd:    opts.GetCommand,
		getFlags:  opts.GetFlags,
		run:       execRun,
	}
	if c.locateCmd == "" {
		c.locateCmd = "ilocate"
	}
	if c.getCmd == "" {
		c.getCmd = "iget"
	}
	if c.getFlags == nil {
		c.getFlags = DefaultGetFlags
	}
	return c
}

// CheckInstalled reports whether both icommands can be found on PATH.
func (c *Client) CheckInstalled() error {
	for _, name := range []string{c.locateCmd, c.getCmd} {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("irods: %w", err)
		}
	}
	return nil
}

// Locate lists every data object whose logical path matches pattern. The
// returned lines are raw ilocate output and may include blanks.
func (c *Client) Locate(ctx context.Context, pattern string) ([]string, error) {
	out, err := c.run(ctx, "", c.locateCmd, pattern)
	if err != nil {
		return nil, err
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("irods: read %s output: %w", c.locateCmd, err)
	}
	return lines, nil
}

// Fetch copies the data object at remotePath into dir, keeping its base
// name, and returns the local file path. An existing local file of the same
// name, such as one left by an interrupted run, is overwritten.
func (c *Client) Fetch(ctx context.Context, remotePath, dir string) (string, error) {
	local := filepath.Join(dir, path.Base(remotePath))

	args := append([]string{}, c.getFlags...)
	if _, err := os.Stat(local); err == nil {
		slog.WarnContext(ctx, "replacing existing local file", "path", remotePath, "local", local)
		if !hasForceFlag(args) {
			args = append(args, "-f")
		}
	}
	args = append(args, remotePath, dir)

	out, err := c.run(ctx, dir, c.getCmd, args...)
	if err != nil {
		return "", err
	}
	if len(out) > 0 {
		slog.DebugContext(ctx, "iget output", "path", remotePath, "output", strings.TrimSpace(string(out)))
	}
	return local, nil
}

// hasForceFlag reports whether flags already include -f, alone or combined
// into a short-flag group such as -fKPVT.
func hasForceFlag(flags []string) bool {
	for _, f := range flags {
		if strings.HasPrefix(f, "-") && !strings.HasPrefix(f, "--") && strings.ContainsRune(f, 'f') {
			return true
		}
	}
	return false
}

func execRun(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), &CommandError{
				Command:  name,
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return stdout.Bytes(), fmt.Errorf("irods: run %s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
