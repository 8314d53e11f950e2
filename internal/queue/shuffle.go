package queue

// DefaultSeed seeds the shuffle generator when no seed is configured.
const DefaultSeed uint32 = 1337

// lcg is the linear congruential generator s = (s*1103515245 + 12345) mod 2^31.
type lcg struct {
	state uint32
}

func (g *lcg) next() uint32 {
	g.state = (g.state*1103515245 + 12345) & 0x7FFFFFFF
	return g.state
}

// shuffleAround permutes nodes with Fisher-Yates, leaving the node at pinned
// in its slot. pinned < 0 permutes every node.
func shuffleAround(nodes []*node, pinned int, seed uint32) []*node {
	rest := make([]*node, 0, len(nodes))
	for i, n := range nodes {
		if i != pinned {
			rest = append(rest, n)
		}
	}

	g := lcg{state: seed}
	for i := len(rest) - 1; i > 0; i-- {
		j := int(g.next() % uint32(i+1))
		rest[i], rest[j] = rest[j], rest[i]
	}

	if pinned < 0 {
		return rest
	}
	out := make([]*node, 0, len(nodes))
	out = append(out, rest[:pinned]...)
	out = append(out, nodes[pinned])
	out = append(out, rest[pinned:]...)
	return out
}
