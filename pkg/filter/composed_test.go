package filter

import (
	"testing"

	"github.com/vtgrid/tilefilter/pkg/strmatch"
)

// boolFilter answers the same value for every predicate.
type boolFilter bool

func (b boolFilter) WantsLayer(string, int) bool                        { return bool(b) }
func (b boolFilter) WantsPointFeature(string, GeometryType, int) bool   { return bool(b) }
func (b boolFilter) WantsLineFeature(string, GeometryType, int) bool    { return bool(b) }
func (b boolFilter) WantsPolygonFeature(string, GeometryType, int) bool { return bool(b) }
func (b boolFilter) WantsKind(...string) bool                           { return bool(b) }
func (b boolFilter) HasKindFilter() bool                                { return bool(b) }

func TestComposedEmptyIsIdentityTrue(t *testing.T) {
	c := NewComposed()
	if !c.WantsLayer("water", 5) {
		t.Error("empty Composed WantsLayer = false")
	}
	if !c.WantsPointFeature("poi", GeometryPoint, 5) {
		t.Error("empty Composed WantsPointFeature = false")
	}
	if !c.WantsLineFeature("roads", GeometryLine, 5) {
		t.Error("empty Composed WantsLineFeature = false")
	}
	if !c.WantsPolygonFeature("buildings", GeometryPolygon, 5) {
		t.Error("empty Composed WantsPolygonFeature = false")
	}
	if !c.WantsKind("water") {
		t.Error("empty Composed WantsKind = false")
	}
	if !c.HasKindFilter() {
		t.Error("empty Composed HasKindFilter = false")
	}
}

func TestComposedIsConjunction(t *testing.T) {
	for _, c := range []struct {
		a, b, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	} {
		comp := NewComposed(boolFilter(c.a), boolFilter(c.b))
		if got := comp.WantsLayer("water", 3); got != c.want {
			t.Errorf("AND(%v, %v): WantsLayer = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := comp.WantsKind("water"); got != c.want {
			t.Errorf("AND(%v, %v): WantsKind = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := comp.HasKindFilter(); got != c.want {
			t.Errorf("AND(%v, %v): HasKindFilter = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestComposedOverGenericFilters(t *testing.T) {
	allowWater := NewGenericFilter(NewBuilder().
		ProcessLayer(strmatch.Exact("water"), LayerOption{}).
		ProcessLayersDefault(false).
		Build())
	denyHighZoom := NewGenericFilter(NewBuilder().
		IgnoreLayer(strmatch.Any(), LayerOption{MinLevel: intp(15)}).
		ProcessLayersDefault(true).
		Build())

	c := NewComposed(allowWater, denyHighZoom)
	if !c.WantsLayer("water", 10) {
		t.Error("water at level 10 should pass both filters")
	}
	if c.WantsLayer("water", 16) {
		t.Error("water at level 16 should be rejected by the second filter")
	}
	if c.WantsLayer("roads", 10) {
		t.Error("roads should be rejected by the first filter")
	}
}
