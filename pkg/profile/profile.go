// Package profile parses the declarative YAML document describing one
// filter rule set and turns it into a compiled filter.Description. All
// validation happens here; evaluation never fails at runtime.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"

	"github.com/vtgrid/tilefilter/pkg/filter"
	"github.com/vtgrid/tilefilter/pkg/strmatch"
)

// pattern accepts either a bare scalar (exact match) or a mapping with
// value/match keys.
type pattern struct {
	p strmatch.Pattern
}

func (p *pattern) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		p.p = strmatch.Exact(s)
		return nil
	case yaml.MappingNode:
		var raw struct {
			Value string `yaml:"value"`
			Match string `yaml:"match"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		mode, err := strmatch.ParseMode(raw.Match)
		if err != nil {
			return err
		}
		if mode != strmatch.ModeAny && raw.Value == "" {
			return errors.New("pattern value must not be empty")
		}
		p.p = strmatch.Pattern{Value: raw.Value, Mode: mode}
		return nil
	default:
		return fmt.Errorf("line %d: pattern must be a string or a value/match mapping", node.Line)
	}
}

type layerRule struct {
	Name     *pattern `yaml:"name"`
	MinLevel *int     `yaml:"min_level"`
	MaxLevel *int     `yaml:"max_level"`
}

type attributeSpec struct {
	Key   string `yaml:"key"`
	Value any    `yaml:"value"`
}

type featureRule struct {
	Layer      *pattern       `yaml:"layer"`
	Geometries []string       `yaml:"geometries"`
	Classes    []pattern      `yaml:"classes"`
	MinLevel   *int           `yaml:"min_level"`
	MaxLevel   *int           `yaml:"max_level"`
	Attribute  *attributeSpec `yaml:"attribute"`
}

type layerLists struct {
	Process []layerRule `yaml:"process"`
	Ignore  []layerRule `yaml:"ignore"`
}

type featureLists struct {
	Process []featureRule `yaml:"process"`
	Ignore  []featureRule `yaml:"ignore"`
}

type kindLists struct {
	Process []string `yaml:"process"`
	Ignore  []string `yaml:"ignore"`
}

type defaultsSpec struct {
	Layers   *bool `yaml:"layers"`
	Points   *bool `yaml:"points"`
	Lines    *bool `yaml:"lines"`
	Polygons *bool `yaml:"polygons"`
}

type document struct {
	Defaults defaultsSpec `yaml:"defaults"`
	Layers   layerLists   `yaml:"layers"`
	Points   featureLists `yaml:"points"`
	Lines    featureLists `yaml:"lines"`
	Polygons featureLists `yaml:"polygons"`
	Kinds    kindLists    `yaml:"kinds"`
}

// Load parses one profile document into an immutable Description.
func Load(b []byte) (*filter.Description, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			doc = document{}
		} else {
			return nil, fmt.Errorf("parse profile: %w", err)
		}
	}

	bld := filter.NewBuilder()
	if doc.Defaults.Layers != nil {
		bld.ProcessLayersDefault(*doc.Defaults.Layers)
	}
	if doc.Defaults.Points != nil {
		bld.ProcessPointsDefault(*doc.Defaults.Points)
	}
	if doc.Defaults.Lines != nil {
		bld.ProcessLinesDefault(*doc.Defaults.Lines)
	}
	if doc.Defaults.Polygons != nil {
		bld.ProcessPolygonsDefault(*doc.Defaults.Polygons)
	}

	for _, r := range doc.Layers.Process {
		name, opt, err := layerOption(r)
		if err != nil {
			return nil, fmt.Errorf("layers.process: %w", err)
		}
		bld.ProcessLayer(name, opt)
	}
	for _, r := range doc.Layers.Ignore {
		name, opt, err := layerOption(r)
		if err != nil {
			return nil, fmt.Errorf("layers.ignore: %w", err)
		}
		bld.IgnoreLayer(name, opt)
	}

	type categoryAdd struct {
		lists   featureLists
		section string
		process func(strmatch.Pattern, filter.FeatureOption) *filter.Builder
		ignore  func(strmatch.Pattern, filter.FeatureOption) *filter.Builder
	}
	for _, cat := range []categoryAdd{
		{doc.Points, "points", bld.ProcessPoints, bld.IgnorePoints},
		{doc.Lines, "lines", bld.ProcessLines, bld.IgnoreLines},
		{doc.Polygons, "polygons", bld.ProcessPolygons, bld.IgnorePolygons},
	} {
		for _, r := range cat.lists.Process {
			layer, opt, err := featureOption(r)
			if err != nil {
				return nil, fmt.Errorf("%s.process: %w", cat.section, err)
			}
			cat.process(layer, opt)
		}
		for _, r := range cat.lists.Ignore {
			layer, opt, err := featureOption(r)
			if err != nil {
				return nil, fmt.Errorf("%s.ignore: %w", cat.section, err)
			}
			cat.ignore(layer, opt)
		}
	}

	bld.ProcessKinds(doc.Kinds.Process...)
	bld.IgnoreKinds(doc.Kinds.Ignore...)

	return bld.Build(), nil
}

func layerOption(r layerRule) (strmatch.Pattern, filter.LayerOption, error) {
	if r.Name == nil {
		return strmatch.Pattern{}, filter.LayerOption{}, errors.New("layer rule needs a name")
	}
	return r.Name.p, filter.LayerOption{MinLevel: r.MinLevel, MaxLevel: r.MaxLevel}, nil
}

func featureOption(r featureRule) (strmatch.Pattern, filter.FeatureOption, error) {
	if r.Layer == nil {
		return strmatch.Pattern{}, filter.FeatureOption{}, errors.New("feature rule needs a layer")
	}
	opt := filter.FeatureOption{MinLevel: r.MinLevel, MaxLevel: r.MaxLevel}
	for _, g := range r.Geometries {
		gt, err := filter.ParseGeometryType(g)
		if err != nil {
			return strmatch.Pattern{}, filter.FeatureOption{}, err
		}
		opt.Geometries = append(opt.Geometries, gt)
	}
	for _, c := range r.Classes {
		opt.Classes = append(opt.Classes, c.p)
	}
	if r.Attribute != nil {
		if r.Attribute.Key == "" {
			return strmatch.Pattern{}, filter.FeatureOption{}, errors.New("attribute condition needs a key")
		}
		opt.Attribute = &filter.FeatureAttribute{Key: r.Attribute.Key, Value: r.Attribute.Value}
	}
	return r.Layer.p, opt, nil
}
