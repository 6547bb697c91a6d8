package filter

import "github.com/vtgrid/tilefilter/pkg/strmatch"

// Description is the immutable rule-set snapshot consumed by GenericFilter
// and GenericModifier. It is assembled once through Builder and never
// mutated afterwards, so one Description may back many concurrent decoders.
type Description struct {
	LayersToProcess []LayerRule
	LayersToIgnore  []LayerRule

	PointsToProcess []FeatureRule
	PointsToIgnore  []FeatureRule

	LinesToProcess []FeatureRule
	LinesToIgnore  []FeatureRule

	PolygonsToProcess []FeatureRule
	PolygonsToIgnore  []FeatureRule

	ProcessLayersDefault   bool
	ProcessPointsDefault   bool
	ProcessLinesDefault    bool
	ProcessPolygonsDefault bool

	KindsToProcess []string
	KindsToIgnore  []string
}

// RuleCount is used for stats/logging only.
func (d *Description) RuleCount() int {
	return len(d.LayersToProcess) + len(d.LayersToIgnore) +
		len(d.PointsToProcess) + len(d.PointsToIgnore) +
		len(d.LinesToProcess) + len(d.LinesToIgnore) +
		len(d.PolygonsToProcess) + len(d.PolygonsToIgnore)
}

// Builder accumulates rules in insertion order and produces one Description
// snapshot. It does no matching of its own; numeric level bounds are
// normalized here (missing min → 0, missing max → MaxLevel) so evaluation
// never sees an open range.
type Builder struct {
	desc Description
}

// NewBuilder starts from all-true defaults: with no rules configured,
// everything is processed.
func NewBuilder() *Builder {
	return &Builder{desc: Description{
		ProcessLayersDefault:   true,
		ProcessPointsDefault:   true,
		ProcessLinesDefault:    true,
		ProcessPolygonsDefault: true,
	}}
}

// LayerOption configures one layer rule.
type LayerOption struct {
	MinLevel *int
	MaxLevel *int
}

// FeatureOption configures one feature rule.
type FeatureOption struct {
	Geometries []GeometryType
	Classes    []strmatch.Pattern
	MinLevel   *int
	MaxLevel   *int
	Attribute  *FeatureAttribute
}

func normalizeLevels(min, max *int) LevelRange {
	r := AllLevels()
	if min != nil && *min > 0 {
		r.Min = *min
	}
	if max != nil && *max >= 0 {
		r.Max = *max
	}
	return r
}

func (b *Builder) ProcessLayersDefault(v bool) *Builder   { b.desc.ProcessLayersDefault = v; return b }
func (b *Builder) ProcessPointsDefault(v bool) *Builder   { b.desc.ProcessPointsDefault = v; return b }
func (b *Builder) ProcessLinesDefault(v bool) *Builder    { b.desc.ProcessLinesDefault = v; return b }
func (b *Builder) ProcessPolygonsDefault(v bool) *Builder { b.desc.ProcessPolygonsDefault = v; return b }

func (b *Builder) ProcessLayer(name strmatch.Pattern, opt LayerOption) *Builder {
	b.desc.LayersToProcess = append(b.desc.LayersToProcess, LayerRule{
		Name:   name,
		Levels: normalizeLevels(opt.MinLevel, opt.MaxLevel),
	})
	return b
}

func (b *Builder) IgnoreLayer(name strmatch.Pattern, opt LayerOption) *Builder {
	b.desc.LayersToIgnore = append(b.desc.LayersToIgnore, LayerRule{
		Name:   name,
		Levels: normalizeLevels(opt.MinLevel, opt.MaxLevel),
	})
	return b
}

func featureRule(layer strmatch.Pattern, opt FeatureOption) FeatureRule {
	return FeatureRule{
		Layer:      layer,
		Geometries: append([]GeometryType(nil), opt.Geometries...),
		Classes:    append([]strmatch.Pattern(nil), opt.Classes...),
		Levels:     normalizeLevels(opt.MinLevel, opt.MaxLevel),
		Attribute:  opt.Attribute,
	}
}

func (b *Builder) ProcessPoints(layer strmatch.Pattern, opt FeatureOption) *Builder {
	b.desc.PointsToProcess = append(b.desc.PointsToProcess, featureRule(layer, opt))
	return b
}

func (b *Builder) IgnorePoints(layer strmatch.Pattern, opt FeatureOption) *Builder {
	b.desc.PointsToIgnore = append(b.desc.PointsToIgnore, featureRule(layer, opt))
	return b
}

func (b *Builder) ProcessLines(layer strmatch.Pattern, opt FeatureOption) *Builder {
	b.desc.LinesToProcess = append(b.desc.LinesToProcess, featureRule(layer, opt))
	return b
}

func (b *Builder) IgnoreLines(layer strmatch.Pattern, opt FeatureOption) *Builder {
	b.desc.LinesToIgnore = append(b.desc.LinesToIgnore, featureRule(layer, opt))
	return b
}

func (b *Builder) ProcessPolygons(layer strmatch.Pattern, opt FeatureOption) *Builder {
	b.desc.PolygonsToProcess = append(b.desc.PolygonsToProcess, featureRule(layer, opt))
	return b
}

func (b *Builder) IgnorePolygons(layer strmatch.Pattern, opt FeatureOption) *Builder {
	b.desc.PolygonsToIgnore = append(b.desc.PolygonsToIgnore, featureRule(layer, opt))
	return b
}

func (b *Builder) ProcessKinds(kinds ...string) *Builder {
	b.desc.KindsToProcess = append(b.desc.KindsToProcess, kinds...)
	return b
}

func (b *Builder) IgnoreKinds(kinds ...string) *Builder {
	b.desc.KindsToIgnore = append(b.desc.KindsToIgnore, kinds...)
	return b
}

// Build snapshots the accumulated rules. The builder may keep accumulating;
// the returned Description is detached.
func (b *Builder) Build() *Description {
	d := Description{
		LayersToProcess:   append([]LayerRule(nil), b.desc.LayersToProcess...),
		LayersToIgnore:    append([]LayerRule(nil), b.desc.LayersToIgnore...),
		PointsToProcess:   append([]FeatureRule(nil), b.desc.PointsToProcess...),
		PointsToIgnore:    append([]FeatureRule(nil), b.desc.PointsToIgnore...),
		LinesToProcess:    append([]FeatureRule(nil), b.desc.LinesToProcess...),
		LinesToIgnore:     append([]FeatureRule(nil), b.desc.LinesToIgnore...),
		PolygonsToProcess: append([]FeatureRule(nil), b.desc.PolygonsToProcess...),
		PolygonsToIgnore:  append([]FeatureRule(nil), b.desc.PolygonsToIgnore...),

		ProcessLayersDefault:   b.desc.ProcessLayersDefault,
		ProcessPointsDefault:   b.desc.ProcessPointsDefault,
		ProcessLinesDefault:    b.desc.ProcessLinesDefault,
		ProcessPolygonsDefault: b.desc.ProcessPolygonsDefault,

		KindsToProcess: append([]string(nil), b.desc.KindsToProcess...),
		KindsToIgnore:  append([]string(nil), b.desc.KindsToIgnore...),
	}
	return &d
}
