// Package filter decides, during vector-tile decoding, whether a layer or
// feature should be processed at all. Decisions are driven by an immutable
// Description assembled once via Builder; every predicate is a stateless scan
// over its ordered rule lists, so a compiled filter is safe to share across
// decoding workers.
package filter

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vtgrid/tilefilter/pkg/strmatch"
)

type GeometryType int

const (
	GeometryPoint GeometryType = iota
	GeometryLine
	GeometryPolygon
)

func (g GeometryType) String() string {
	switch g {
	case GeometryPoint:
		return "point"
	case GeometryLine:
		return "line"
	case GeometryPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("GeometryType(%d)", int(g))
	}
}

// ParseGeometryType resolves a geometry name from configuration or query
// payloads.
func ParseGeometryType(s string) (GeometryType, error) {
	switch s {
	case "point":
		return GeometryPoint, nil
	case "line", "linestring":
		return GeometryLine, nil
	case "polygon":
		return GeometryPolygon, nil
	default:
		return 0, fmt.Errorf("unknown geometry type %q", s)
	}
}

// MaxLevel is the normalized upper bound for rules with no configured
// maximum. Levels are tile zoom levels, so any int32 ceiling is unreachable.
const MaxLevel = int(^uint32(0) >> 1)

// LevelRange bounds a rule to [Min, Max] inclusive. A level outside the
// range makes the owning rule inapplicable regardless of its other fields.
type LevelRange struct {
	Min int
	Max int
}

// AllLevels spans every zoom level.
func AllLevels() LevelRange { return LevelRange{Min: 0, Max: MaxLevel} }

func (r LevelRange) Contains(level int) bool { return level >= r.Min && level <= r.Max }

// LayerRule accepts or rejects a whole layer by name.
type LayerRule struct {
	Name   strmatch.Pattern
	Levels LevelRange
}

// FeatureAttribute is an exact key/value condition looked up in the
// feature's property environment.
type FeatureAttribute struct {
	Key   string
	Value any
}

// FeatureRule matches candidate features of one geometry category. A nil
// Geometries set means the rule is not used as a geometry filter and never
// matches in the early filter stage. Classes and Attribute are evaluated by
// the modifier stage as two independent passes; a rule may carry both.
type FeatureRule struct {
	Layer      strmatch.Pattern
	Geometries []GeometryType
	Classes    []strmatch.Pattern
	Levels     LevelRange
	Attribute  *FeatureAttribute
}

func (r FeatureRule) hasGeometry(g GeometryType) bool {
	for _, have := range r.Geometries {
		if have == g {
			return true
		}
	}
	return false
}

// Env is the read-only property environment of one decoded feature.
type Env interface {
	// Lookup returns the value for key and whether it is present. A present
	// nil value is treated by this package as absent.
	Lookup(key string) (any, bool)
}

// MapEnv is the plain map-backed Env used by the decoder and in tests.
type MapEnv map[string]any

func (m MapEnv) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// FeatureFilter is the early opt-out surface consulted per layer and per raw
// feature before geometry and properties are decoded.
type FeatureFilter interface {
	WantsLayer(layer string, level int) bool
	WantsPointFeature(layer string, geometry GeometryType, level int) bool
	WantsLineFeature(layer string, geometry GeometryType, level int) bool
	WantsPolygonFeature(layer string, geometry GeometryType, level int) bool
	// WantsKind is called with the kind labels attached to a geometry.
	// No labels means there is no basis to filter and the feature passes.
	WantsKind(kinds ...string) bool
	HasKindFilter() bool
}

// FeatureModifier is the late surface consulted once a feature's property
// environment has been resolved, immediately before style selection.
type FeatureModifier interface {
	DoProcessPointFeature(layer string, env Env) bool
	DoProcessLineFeature(layer string, env Env) bool
	DoProcessPolygonFeature(layer string, env Env) bool
}

// classOf resolves the "class" attribute of the environment as a string.
// Absent and nil both yield ok=false.
func classOf(env Env) (string, bool) {
	if env == nil {
		return "", false
	}
	v, ok := env.Lookup("class")
	if !ok || v == nil {
		return "", false
	}
	return valueString(v), true
}

// valueString normalizes scalar attribute values for comparison.
func valueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

// valueEqual compares an environment value against a rule attribute value.
// Numeric types compare by value, everything else by normalized string.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	if aok != bok {
		return false
	}
	return valueString(a) == valueString(b)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
