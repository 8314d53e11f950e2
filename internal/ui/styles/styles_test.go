package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/trackshelf/internal/ui/testutil"
)

func TestApplyGradient_PreservesText(t *testing.T) {
	out := ApplyGradient("trackshelf", "#a78bfa", "#f1a208")
	assert.Equal(t, "trackshelf", testutil.StripANSI(out))
}

func TestApplyGradient_Empty(t *testing.T) {
	assert.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
}

func TestApplyBoldGradient_GraphemeClusters(t *testing.T) {
	out := ApplyBoldGradient("éa", "#000000", "#ffffff")
	assert.Equal(t, "éa", testutil.StripANSI(out))
	assert.Len(t, graphemes("éa"), 2)
}

func TestToColorful(t *testing.T) {
	assert.Equal(t, "#ff0000", toColorful("#ff0000").Hex())
	assert.Equal(t, "#808080", toColorful(lipgloss.Color("39")).Hex())
	assert.Equal(t, "#808080", toColorful("#zzzzzz").Hex())
}

func TestThemeStylesCached(t *testing.T) {
	th := T()
	assert.Same(t, th.S(), th.S())
	assert.True(t, strings.Contains(testutil.StripANSI(th.Title("ab")), "ab"))
}
