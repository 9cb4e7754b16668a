package domain

// FeatureType is a named feature template inside a category with an
// average man-day estimate used as a starting point for new features.
type FeatureType struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	AverageMDs float64 `json:"averageMDs"`
}

// Category groups feature types for estimation.
type Category struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Status       EntryStatus   `json:"status"`
	IsGlobal     bool          `json:"isGlobal"`
	FeatureTypes []FeatureType `json:"featureTypes,omitempty"`

	IsProjectSpecific bool `json:"isProjectSpecific,omitempty"`
	IsOverridden      bool `json:"isOverridden,omitempty"`
}

// Clone returns an independent copy including the feature-type sub-list.
func (c Category) Clone() Category {
	out := c
	if c.FeatureTypes != nil {
		out.FeatureTypes = make([]FeatureType, len(c.FeatureTypes))
		copy(out.FeatureTypes, c.FeatureTypes)
	}
	return out
}

// MergeCategory shallow-merges an override onto a base category.
// Zero-valued override fields leave the base untouched; a non-nil
// feature-type list replaces the base list wholesale.
func MergeCategory(base, override Category) Category {
	out := base.Clone()
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	if override.Status != "" {
		out.Status = override.Status
	}
	if override.FeatureTypes != nil {
		out.FeatureTypes = make([]FeatureType, len(override.FeatureTypes))
		copy(out.FeatureTypes, override.FeatureTypes)
	}
	out.IsOverridden = true
	return out
}

// EqualCategory compares the persisted fields of two categories,
// including the feature-type sub-list. Derived flags are ignored.
func EqualCategory(a, b Category) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Description != b.Description ||
		a.Status != b.Status || a.IsGlobal != b.IsGlobal {
		return false
	}
	if len(a.FeatureTypes) != len(b.FeatureTypes) {
		return false
	}
	for i := range a.FeatureTypes {
		if a.FeatureTypes[i] != b.FeatureTypes[i] {
			return false
		}
	}
	return true
}

// CloneCategories deep-copies a category collection.
func CloneCategories(in []Category) []Category {
	if in == nil {
		return nil
	}
	out := make([]Category, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
