package filter

import "github.com/vtgrid/tilefilter/pkg/strmatch"

// GenericModifier answers the late per-feature predicates, once a property
// environment exists. Class matching and attribute matching are two
// independent passes over the same rule lists; a class-based ignore can be
// overridden by a later attribute-based process match. The pass order
// (process-by-class, ignore-by-class, process-by-attribute,
// ignore-by-attribute) is observable behavior and must not be reordered.
type GenericModifier struct {
	desc *Description
}

var _ FeatureModifier = (*GenericModifier)(nil)

func NewGenericModifier(desc *Description) *GenericModifier {
	return &GenericModifier{desc: desc}
}

func (m *GenericModifier) DoProcessPointFeature(layer string, env Env) bool {
	return doProcessFeature(m.desc.PointsToProcess, m.desc.PointsToIgnore,
		layer, env, m.desc.ProcessPointsDefault)
}

func (m *GenericModifier) DoProcessLineFeature(layer string, env Env) bool {
	return doProcessFeature(m.desc.LinesToProcess, m.desc.LinesToIgnore,
		layer, env, m.desc.ProcessLinesDefault)
}

func (m *GenericModifier) DoProcessPolygonFeature(layer string, env Env) bool {
	return doProcessFeature(m.desc.PolygonsToProcess, m.desc.PolygonsToIgnore,
		layer, env, m.desc.ProcessPolygonsDefault)
}

func doProcessFeature(toProcess, toIgnore []FeatureRule, layer string, env Env, def bool) bool {
	if layer == "" || (len(toProcess) == 0 && len(toIgnore) == 0) {
		return def
	}

	if class, ok := classOf(env); ok {
		if matchClass(toProcess, layer, class) {
			return true
		}
		if matchClass(toIgnore, layer, class) {
			return false
		}
	}

	if matchAttribute(toProcess, layer, env) {
		return true
	}
	if matchAttribute(toIgnore, layer, env) {
		return false
	}
	return def
}

func matchClass(rules []FeatureRule, layer, class string) bool {
	for _, r := range rules {
		if !strmatch.Matches(layer, r.Layer) {
			continue
		}
		for _, p := range r.Classes {
			if strmatch.Matches(class, p) {
				return true
			}
		}
	}
	return false
}

func matchAttribute(rules []FeatureRule, layer string, env Env) bool {
	if env == nil {
		return false
	}
	for _, r := range rules {
		if r.Attribute == nil {
			continue
		}
		if !strmatch.Matches(layer, r.Layer) {
			continue
		}
		v, ok := env.Lookup(r.Attribute.Key)
		if !ok || v == nil {
			continue
		}
		if valueEqual(v, r.Attribute.Value) {
			return true
		}
	}
	return false
}
