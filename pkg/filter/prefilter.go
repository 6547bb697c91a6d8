package filter

import (
	ac "github.com/petar-dambovaliev/aho-corasick"

	"github.com/vtgrid/tilefilter/pkg/strmatch"
)

// LayerPrefilter is a literal prefilter over the layer-name patterns of the
// process rules. Exact, prefix, suffix and contains patterns all imply their
// literal occurs somewhere in a matching layer name, so a single
// Aho-Corasick scan of the name can rule a layer out before the ordered rule
// lists are walked. The prefilter never decides on its own: a true answer
// still has to be confirmed by GenericFilter, a false answer is only
// meaningful when the rule set is deny-by-default.
type LayerPrefilter struct {
	automaton *ac.AhoCorasick
	patterns  []string
	// A match-anything pattern (or a rule set without literal process
	// rules) defeats literal prefiltering entirely.
	passAll bool
}

type PrefilterStats struct {
	PatternCount int
	PassAll      bool
}

// NewLayerPrefilter collects the literal layer-name patterns from every
// process list of the description.
func NewLayerPrefilter(desc *Description) *LayerPrefilter {
	p := &LayerPrefilter{}

	add := func(pat strmatch.Pattern) {
		if !pat.IsLiteral() {
			p.passAll = true
			return
		}
		if pat.Value == "" {
			// Empty literal matches every name.
			p.passAll = true
			return
		}
		p.patterns = append(p.patterns, pat.Value)
	}

	for _, r := range desc.LayersToProcess {
		add(r.Name)
	}
	for _, lists := range [][]FeatureRule{desc.PointsToProcess, desc.LinesToProcess, desc.PolygonsToProcess} {
		for _, r := range lists {
			add(r.Layer)
		}
	}

	if len(p.patterns) == 0 {
		// Nothing to prune on; stay transparent.
		p.passAll = true
		return p
	}
	if p.passAll {
		return p
	}

	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		MatchKind: ac.LeftMostLongestMatch,
	})
	automaton := builder.Build(p.patterns)
	p.automaton = &automaton
	return p
}

// MightWantLayer reports whether any process rule could possibly match the
// layer name. False guarantees no process rule matches at any level.
func (p *LayerPrefilter) MightWantLayer(layer string) bool {
	if p.passAll || p.automaton == nil {
		return true
	}
	return len(p.automaton.FindAll(layer)) > 0
}

func (p *LayerPrefilter) Stats() PrefilterStats {
	return PrefilterStats{PatternCount: len(p.patterns), PassAll: p.passAll}
}
