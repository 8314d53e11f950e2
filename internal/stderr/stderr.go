//go:build !windows

// Package stderr redirects file descriptor 2 into a channel while the
// interactive screen owns the terminal, so log lines written to stderr do
// not corrupt its layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// bufferedLines is the number of captured lines kept while nobody reads.
const bufferedLines = 100

// Capture is an active stderr redirection.
type Capture struct {
	orig  int
	read  *os.File
	write *os.File
	lines chan string
	done  chan struct{}
}

// Start redirects stderr into a pipe. If capture cannot be set up the
// program can carry on writing to the original stderr.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		orig:  orig,
		read:  r,
		write: w,
		lines: make(chan string, bufferedLines),
		done:  make(chan struct{}),
	}
	go c.scan()
	return c, nil
}

func (c *Capture) scan() {
	defer close(c.done)
	defer close(c.lines)
	scanner := bufio.NewScanner(c.read)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// full, drop rather than block the writer
		}
	}
}

// Lines receives captured lines. It is closed by Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes to the original stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr and closes Lines once the pipe is
// drained.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	c.write.Close()
	<-c.done
	c.read.Close()
}
