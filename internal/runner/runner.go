// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runner/runner.go
// Summary: Runs layout commands and streams their output into panes.
// Usage: Each job runs under a pseudo terminal; every output line is
// stripped of escape sequences and sent to its pane with Println.

package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/texelout/config"
)

// Printer receives complete lines for a pane. *texel.Bridge implements it.
type Printer interface {
	Println(id int, text string) error
}

// StartFunc starts cmd and returns a reader over its combined output.
type StartFunc func(cmd *exec.Cmd) (io.ReadCloser, error)

// Runner feeds the output of a set of jobs into a Printer.
type Runner struct {
	sink       Printer
	start      StartFunc
	cols, rows int
}

// Option configures a Runner.
type Option func(*Runner)

// WithStart replaces the pseudo terminal start function.
func WithStart(start StartFunc) Option {
	return func(r *Runner) { r.start = start }
}

// WithWindowSize sets the terminal size reported to commands.
func WithWindowSize(cols, rows int) Option {
	return func(r *Runner) {
		if cols > 0 && rows > 0 {
			r.cols, r.rows = cols, rows
		}
	}
}

// New constructs a runner writing to sink.
func New(sink Printer, opts ...Option) *Runner {
	r := &Runner{sink: sink, cols: 80, rows: 24}
	r.start = r.startPTY
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) startPTY(cmd *exec.Cmd) (io.ReadCloser, error) {
	return pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(r.rows),
		Cols: uint16(r.cols),
	})
}

// Run starts every job and waits until all of them have finished or ctx is
// cancelled. A command that fails to start or exits non-zero is reported in
// its pane; only a Printer error aborts the other jobs.
func (r *Runner) Run(ctx context.Context, jobs []config.Job) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		g.Go(func() error {
			return r.runJob(ctx, job)
		})
	}
	return g.Wait()
}

func (r *Runner) runJob(ctx context.Context, job config.Job) error {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", job.Command)
	cmd.Dir = job.Dir
	cmd.Env = append(os.Environ(),
		"TERM=dumb",
		"COLUMNS="+strconv.Itoa(r.cols),
		"LINES="+strconv.Itoa(r.rows),
	)

	out, err := r.start(cmd)
	if err != nil {
		log.Printf("Runner: failed to start %q for pane %d: %v", job.Command, job.PaneID, err)
		return r.sink.Println(job.PaneID, fmt.Sprintf("[start failed: %v]", err))
	}
	stop := context.AfterFunc(ctx, func() { out.Close() })
	defer stop()
	defer out.Close()

	readErr := r.stream(job.PaneID, out)
	var sinkErr *sinkError
	switch {
	case errors.As(readErr, &sinkErr):
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return sinkErr.err
	// The pty master reports EIO once the child side has closed.
	case readErr != nil && !errors.Is(readErr, syscall.EIO) && ctx.Err() == nil:
		log.Printf("Runner: read output of pane %d: %v", job.PaneID, readErr)
		_ = cmd.Process.Kill()
	}

	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return r.sink.Println(job.PaneID, exitLine(waitErr))
}

// maxLineBytes bounds one output line. Longer lines are cut at the bound
// and the rest, up to the next newline, is discarded.
const maxLineBytes = 64 * 1024

type sinkError struct{ err error }

func (e *sinkError) Error() string { return e.err.Error() }

// stream sends every line read from out to pane id until out is exhausted.
// It returns nil at end of input, a *sinkError when the Printer fails, or
// the read error.
func (r *Runner) stream(id int, out io.Reader) error {
	reader := bufio.NewReaderSize(out, maxLineBytes)
	discarding := false
	for {
		chunk, err := reader.ReadSlice('\n')
		full := errors.Is(err, bufio.ErrBufferFull)
		if len(chunk) > 0 && !discarding {
			line := strings.TrimRight(string(chunk), "\r\n")
			if perr := r.sink.Println(id, ansi.Strip(line)); perr != nil {
				return &sinkError{err: perr}
			}
		}
		discarding = full
		switch {
		case full:
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
	}
}

func exitLine(err error) string {
	if err == nil {
		return "[exit 0]"
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("[exit %d]", exitErr.ExitCode())
	}
	return fmt.Sprintf("[error: %v]", err)
}
