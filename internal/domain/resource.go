package domain

// ResourceEntry is a supplier or internal resource. Suppliers and internal
// resources share the same shape and are kept in separate collections.
// JSON tags are the load/save contract with persisted configurations.
type ResourceEntry struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Role         Role        `json:"role"`
	Department   string      `json:"department,omitempty"`
	RealRate     float64     `json:"realRate"`
	OfficialRate float64     `json:"officialRate"`
	IsGlobal     bool        `json:"isGlobal"`
	Status       EntryStatus `json:"status"`

	// Derived during resolution, never authoritative in storage.
	IsProjectSpecific bool `json:"isProjectSpecific,omitempty"`
	IsOverridden      bool `json:"isOverridden,omitempty"`
}

// Clone returns an independent copy of the entry.
func (r ResourceEntry) Clone() ResourceEntry {
	return r
}

// MergeResourceEntry shallow-merges an override onto a base entry.
// Zero-valued override fields leave the base field untouched, so a partial
// override such as {id, status: inactive} only changes what it names.
func MergeResourceEntry(base, override ResourceEntry) ResourceEntry {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Role != "" {
		out.Role = override.Role
	}
	if override.Department != "" {
		out.Department = override.Department
	}
	if override.RealRate != 0 {
		out.RealRate = override.RealRate
	}
	if override.OfficialRate != 0 {
		out.OfficialRate = override.OfficialRate
	}
	if override.Status != "" {
		out.Status = override.Status
	}
	out.IsOverridden = true
	return out
}

// EqualResourceEntry compares the persisted fields of two entries.
// Derived flags (IsProjectSpecific, IsOverridden) are ignored.
func EqualResourceEntry(a, b ResourceEntry) bool {
	return a.ID == b.ID &&
		a.Name == b.Name &&
		a.Role == b.Role &&
		a.Department == b.Department &&
		a.RealRate == b.RealRate &&
		a.OfficialRate == b.OfficialRate &&
		a.IsGlobal == b.IsGlobal &&
		a.Status == b.Status
}

// CloneResourceEntries deep-copies a resource collection.
func CloneResourceEntries(in []ResourceEntry) []ResourceEntry {
	if in == nil {
		return nil
	}
	out := make([]ResourceEntry, len(in))
	copy(out, in)
	return out
}
