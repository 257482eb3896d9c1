// Package filtergraph models transcoding filter graphs as typed operation
// nodes with labeled streams, serialized to the engine's filter_complex
// syntax only at the invocation boundary.
package filtergraph

import (
	"strings"
)

// Stream is a typed stream label. Input file streams use the engine's
// "index:type" form (e.g. "0:v"); intermediate and output streams use bare
// names (e.g. "vcat").
type Stream string

// Filter is one operation node: a filter name plus its ordered, already
// rendered arguments.
type Filter struct {
	Name string
	Args []string
}

// String renders the filter in name=a:b:c form.
func (f Filter) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	return f.Name + "=" + strings.Join(f.Args, ":")
}

// Chain is a linear run of filters from a set of input streams to a set of
// output streams. Source filters (e.g. a silence generator) have no inputs;
// multi-input operations (concat, mix, overlay) list all their inputs on
// the chain.
type Chain struct {
	Inputs  []Stream
	Filters []Filter
	Outputs []Stream
}

// Graph is an ordered set of chains plus the final output mapping. Chains
// are serialized in insertion order, which is also a valid evaluation
// order: every chain only consumes streams produced by earlier chains or
// by the input files.
type Graph struct {
	chains []Chain

	// VideoOut is always set; AudioOut is empty for video-only graphs.
	VideoOut Stream
	AudioOut Stream
}

// Add appends a chain to the graph.
func (g *Graph) Add(chain Chain) {
	g.chains = append(g.chains, chain)
}

// HasAudio reports whether the graph produces an audio output stream.
func (g *Graph) HasAudio() bool {
	return g.AudioOut != ""
}

// Serialize renders the whole graph in filter_complex syntax:
// chains joined by ";", filters within a chain joined by ",", stream
// labels bracketed.
func (g *Graph) Serialize() string {
	parts := make([]string, 0, len(g.chains))
	for _, chain := range g.chains {
		var b strings.Builder
		for _, in := range chain.Inputs {
			b.WriteString("[")
			b.WriteString(string(in))
			b.WriteString("]")
		}
		filters := make([]string, len(chain.Filters))
		for i, f := range chain.Filters {
			filters[i] = f.String()
		}
		b.WriteString(strings.Join(filters, ","))
		for _, out := range chain.Outputs {
			b.WriteString("[")
			b.WriteString(string(out))
			b.WriteString("]")
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ";")
}
