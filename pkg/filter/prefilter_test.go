package filter

import (
	"testing"

	"github.com/vtgrid/tilefilter/pkg/strmatch"
)

func TestPrefilterNoProcessRulesPassesAll(t *testing.T) {
	p := NewLayerPrefilter(NewBuilder().Build())
	if !p.MightWantLayer("anything") {
		t.Error("prefilter without patterns must stay transparent")
	}
	if st := p.Stats(); !st.PassAll || st.PatternCount != 0 {
		t.Errorf("stats = %+v, want pass-all with 0 patterns", st)
	}
}

func TestPrefilterAnyPatternDisablesPruning(t *testing.T) {
	p := NewLayerPrefilter(NewBuilder().
		ProcessLayer(strmatch.Any(), LayerOption{}).
		Build())
	if !p.MightWantLayer("whatever") {
		t.Error("any-mode pattern must defeat pruning")
	}
}

func TestPrefilterPrunesNonCandidates(t *testing.T) {
	desc := NewBuilder().
		ProcessLayer(strmatch.Exact("water"), LayerOption{}).
		ProcessPoints(strmatch.Pattern{Value: "road", Mode: strmatch.ModePrefix}, FeatureOption{
			Geometries: []GeometryType{GeometryPoint},
		}).
		ProcessLayersDefault(false).
		Build()
	p := NewLayerPrefilter(desc)

	if !p.MightWantLayer("water") {
		t.Error("water must remain a candidate")
	}
	if !p.MightWantLayer("road_label") {
		t.Error("road_label must remain a candidate")
	}
	if p.MightWantLayer("buildings") {
		t.Error("buildings can never match a process rule")
	}
	if st := p.Stats(); st.PassAll || st.PatternCount != 2 {
		t.Errorf("stats = %+v, want 2 patterns and no pass-all", st)
	}
}

func TestPrefilterNeverContradictsFilter(t *testing.T) {
	desc := NewBuilder().
		ProcessLayer(strmatch.Pattern{Value: "road", Mode: strmatch.ModeContains}, LayerOption{}).
		ProcessLayer(strmatch.Exact("water"), LayerOption{MinLevel: intp(3)}).
		ProcessLayersDefault(false).
		Build()
	p := NewLayerPrefilter(desc)
	f := NewGenericFilter(desc)

	for _, layer := range []string{"water", "major_road", "roadside", "buildings", ""} {
		for _, level := range []int{0, 3, 9} {
			if f.WantsLayer(layer, level) && !p.MightWantLayer(layer) {
				t.Errorf("prefilter pruned %q at level %d but the filter wants it", layer, level)
			}
		}
	}
}
