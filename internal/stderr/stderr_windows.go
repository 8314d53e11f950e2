//go:build windows

package stderr

import "os"

// Capture is a no-op on Windows: stderr is left alone.
type Capture struct{}

// Start returns a no-op capture.
func Start() (*Capture, error) {
	return &Capture{}, nil
}

// Lines returns nil, which never delivers.
func (c *Capture) Lines() <-chan string {
	return nil
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func (c *Capture) Stop() {}
