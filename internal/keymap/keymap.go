package keymap

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "queue"
}

// Contexts lists binding contexts in help display order.
var Contexts = []string{"playback", "queue", "global"}

// All contains every key binding of the queue view.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "right"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "left"}, "Previous track", "playback"},
	{ActionToggleShuffle, []string{"s"}, "Toggle shuffle", "playback"},
	{ActionToggleRepeat, []string{"r"}, "Toggle repeat", "playback"},

	// Queue
	{ActionPageDown, []string{"pgdown", "J"}, "Next page", "queue"},
	{ActionPageUp, []string{"pgup", "K"}, "Previous page", "queue"},
	{ActionClear, []string{"c"}, "Clear queue", "queue"},
	{ActionQueueLibrary, []string{"L"}, "Queue library", "queue"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// KeyMap turns bindings into bubbles key bindings and resolves key
// messages to actions. It satisfies help.KeyMap.
type KeyMap struct {
	order    []Action
	contexts map[string][]Action
	bindings map[Action]key.Binding
}

// New builds a KeyMap. Later bindings for an action add keys to it.
func New(bindings []Binding) *KeyMap {
	km := &KeyMap{
		contexts: make(map[string][]Action),
		bindings: make(map[Action]key.Binding),
	}
	keys := make(map[Action][]string)
	desc := make(map[Action]string)
	for _, b := range bindings {
		if _, seen := keys[b.Action]; !seen {
			km.order = append(km.order, b.Action)
			km.contexts[b.Context] = append(km.contexts[b.Context], b.Action)
			desc[b.Action] = b.Description
		}
		keys[b.Action] = dedupe(append(keys[b.Action], b.Keys...))
	}
	for _, a := range km.order {
		km.bindings[a] = key.NewBinding(
			key.WithKeys(keys[a]...),
			key.WithHelp(helpKeys(keys[a]), strings.ToLower(desc[a])),
		)
	}
	return km
}

// Default returns the KeyMap of All.
func Default() *KeyMap {
	return New(All)
}

// Resolve returns the action bound to msg, or empty string if not bound.
func (km *KeyMap) Resolve(msg tea.KeyMsg) Action {
	for _, a := range km.order {
		if key.Matches(msg, km.bindings[a]) {
			return a
		}
	}
	return ""
}

// Binding returns the bubbles binding of an action.
func (km *KeyMap) Binding(a Action) (key.Binding, bool) {
	b, ok := km.bindings[a]
	return b, ok
}

// KeysFor returns the keys bound to an action.
func (km *KeyMap) KeysFor(a Action) []string {
	return km.bindings[a].Keys()
}

// ShortHelp shows the playback bindings plus help and quit.
func (km *KeyMap) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, a := range slices.Concat(km.contexts["playback"], km.contexts["global"]) {
		out = append(out, km.bindings[a])
	}
	return out
}

// FullHelp shows one column per context.
func (km *KeyMap) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for _, ctx := range Contexts {
		var col []key.Binding
		for _, a := range km.contexts[ctx] {
			col = append(col, km.bindings[a])
		}
		if len(col) > 0 {
			cols = append(cols, col)
		}
	}
	return cols
}

var keyLabels = map[string]string{
	" ":     "space",
	"left":  "←",
	"right": "→",
}

// helpKeys renders keys as "space" or "n/→".
func helpKeys(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if l, ok := keyLabels[k]; ok {
			k = l
		}
		labels[i] = k
	}
	return strings.Join(labels, "/")
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
