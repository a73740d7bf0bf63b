//go:build !windows

// Package stderr captures stderr output from C libraries (GStreamer and its
// plugins) that write directly to file descriptor 2, bypassing Go's
// os.Stderr. This prevents raw warnings from corrupting the TUI layout.
package stderr

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
)

// Messages receives stderr lines captured from C libraries.
// Callers should read from this channel to display warnings in the UI.
var Messages = make(chan string, 100)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
)

// Start begins capturing stderr output and logs every line at warn level.
// Must be called early in main(), before gst.Init.
// Returns an error if capture cannot be set up, but the program can continue
// without stderr capture (warnings will just go to the original stderr).
func Start(log *slog.Logger) error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	err = syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd()))
	if err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true

	go forward(pipeRead, log, Messages)

	return nil
}

// forward copies non-empty lines from r to log and out. Lines are dropped
// when out is full.
func forward(r io.Reader, log *slog.Logger, out chan<- string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if log != nil {
			log.Warn("native stderr", "line", line)
		}
		select {
		case out <- line:
		default:
		}
	}
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must be visible even if TUI is running.
func WriteOriginal(msg string) {
	if origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
	}
}

// Stop restores the original stderr. Should be called on program exit.
func Stop() {
	if !started {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)

	pipeWrite.Close()
	pipeRead.Close()

	started = false
}
