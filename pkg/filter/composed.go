package filter

// Composed fans every predicate out to a list of filters and ANDs the
// answers. An empty list answers true everywhere, so a Composed with no
// members is a transparent pass-through.
type Composed struct {
	filters []FeatureFilter
}

var _ FeatureFilter = (*Composed)(nil)

func NewComposed(filters ...FeatureFilter) *Composed {
	return &Composed{filters: append([]FeatureFilter(nil), filters...)}
}

func (c *Composed) WantsLayer(layer string, level int) bool {
	for _, f := range c.filters {
		if !f.WantsLayer(layer, level) {
			return false
		}
	}
	return true
}

func (c *Composed) WantsPointFeature(layer string, geometry GeometryType, level int) bool {
	for _, f := range c.filters {
		if !f.WantsPointFeature(layer, geometry, level) {
			return false
		}
	}
	return true
}

func (c *Composed) WantsLineFeature(layer string, geometry GeometryType, level int) bool {
	for _, f := range c.filters {
		if !f.WantsLineFeature(layer, geometry, level) {
			return false
		}
	}
	return true
}

func (c *Composed) WantsPolygonFeature(layer string, geometry GeometryType, level int) bool {
	for _, f := range c.filters {
		if !f.WantsPolygonFeature(layer, geometry, level) {
			return false
		}
	}
	return true
}

func (c *Composed) WantsKind(kinds ...string) bool {
	for _, f := range c.filters {
		if !f.WantsKind(kinds...) {
			return false
		}
	}
	return true
}

func (c *Composed) HasKindFilter() bool {
	for _, f := range c.filters {
		if !f.HasKindFilter() {
			return false
		}
	}
	return true
}
