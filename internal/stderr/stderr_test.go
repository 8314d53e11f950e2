//go:build !windows

package stderr

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	c, err := Start()
	require.NoError(t, err)

	fmt.Fprintln(os.Stderr, "  first line  ")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "second line")

	select {
	case line := <-c.Lines():
		assert.Equal(t, "first line", line)
	case <-time.After(2 * time.Second):
		t.Fatal("no line captured")
	}

	c.Stop()

	var rest []string
	for line := range c.Lines() {
		rest = append(rest, line)
	}
	assert.Equal(t, []string{"second line"}, rest)
}
