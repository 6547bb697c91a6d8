package filter

import (
	"github.com/vtgrid/tilefilter/pkg/kind"
	"github.com/vtgrid/tilefilter/pkg/strmatch"
)

// GenericFilter answers the early per-layer/per-feature predicates from a
// Description. Kind sets are materialized once at construction; a category
// with an empty configured list keeps a nil set, which disables that side of
// the kind check entirely.
type GenericFilter struct {
	desc          *Description
	enabledKinds  *kind.Set
	disabledKinds *kind.Set
}

var _ FeatureFilter = (*GenericFilter)(nil)

func NewGenericFilter(desc *Description) *GenericFilter {
	return &GenericFilter{
		desc:          desc,
		enabledKinds:  kind.NewSet(desc.KindsToProcess...),
		disabledKinds: kind.NewSet(desc.KindsToIgnore...),
	}
}

// WantsLayer scans the process rules first, then the ignore rules; the first
// rule whose level range contains level and whose name pattern matches wins.
func (f *GenericFilter) WantsLayer(layer string, level int) bool {
	for _, r := range f.desc.LayersToProcess {
		if r.Levels.Contains(level) && strmatch.Matches(layer, r.Name) {
			return true
		}
	}
	for _, r := range f.desc.LayersToIgnore {
		if r.Levels.Contains(level) && strmatch.Matches(layer, r.Name) {
			return false
		}
	}
	return f.desc.ProcessLayersDefault
}

func (f *GenericFilter) WantsPointFeature(layer string, geometry GeometryType, level int) bool {
	return wantsFeature(f.desc.PointsToProcess, f.desc.PointsToIgnore,
		layer, geometry, level, f.desc.ProcessPointsDefault)
}

func (f *GenericFilter) WantsLineFeature(layer string, geometry GeometryType, level int) bool {
	return wantsFeature(f.desc.LinesToProcess, f.desc.LinesToIgnore,
		layer, geometry, level, f.desc.ProcessLinesDefault)
}

func (f *GenericFilter) WantsPolygonFeature(layer string, geometry GeometryType, level int) bool {
	return wantsFeature(f.desc.PolygonsToProcess, f.desc.PolygonsToIgnore,
		layer, geometry, level, f.desc.ProcessPolygonsDefault)
}

// wantsFeature is the shared per-category resolution. A rule with no
// geometry set never matches here: an unset geometry list means the rule is
// not a geometry filter, not that it matches everything. The level range is
// only enforced on the process side; ignore rules apply at every level.
// That asymmetry is part of the rule language and is relied upon by
// existing rule sets.
func wantsFeature(toProcess, toIgnore []FeatureRule, layer string, geometry GeometryType, level int, def bool) bool {
	for _, r := range toProcess {
		if !r.Levels.Contains(level) {
			continue
		}
		if !strmatch.Matches(layer, r.Layer) {
			continue
		}
		if r.Geometries != nil && r.hasGeometry(geometry) {
			return true
		}
	}
	for _, r := range toIgnore {
		if !strmatch.Matches(layer, r.Layer) {
			continue
		}
		if r.Geometries != nil && r.hasGeometry(geometry) {
			return false
		}
	}
	return def
}

// WantsKind applies the kind formula: a kind is rejected only when it
// intersects the disabled set and does not intersect the enabled set. An
// explicit enable therefore overrides a block. With no labels given there is
// no basis to filter and the feature passes.
func (f *GenericFilter) WantsKind(kinds ...string) bool {
	if len(kinds) == 0 {
		return true
	}
	blocked := f.disabledKinds.HasOrIntersects(kinds...)
	allowed := f.enabledKinds.HasOrIntersects(kinds...)
	return !blocked || allowed
}

// HasKindFilter reports whether either kind set was configured. It is a
// static property of the rule set, useful for callers that want to skip
// kind extraction entirely.
func (f *GenericFilter) HasKindFilter() bool {
	return f.enabledKinds != nil || f.disabledKinds != nil
}
