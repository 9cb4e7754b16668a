package domain

// Role is one of the four cost/effort dimensions every phase is split across.
type Role string

const (
	RoleG1 Role = "G1" // junior developer
	RoleG2 Role = "G2" // senior developer
	RoleTA Role = "TA" // technical analyst
	RolePM Role = "PM" // project manager
)

// Roles lists the four roles in display order.
var Roles = []Role{RoleG1, RoleG2, RoleTA, RolePM}

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[string]bool{
	"G1": true, "G2": true, "TA": true, "PM": true,
}

type EntryStatus string

const (
	StatusActive   EntryStatus = "active"
	StatusInactive EntryStatus = "inactive"
)

// ResourceKind distinguishes the two resource collections sharing one shape.
type ResourceKind string

const (
	KindSupplier ResourceKind = "supplier"
	KindInternal ResourceKind = "internal"
)

// CollectionKind identifies one of the three merged collections.
type CollectionKind string

const (
	CollectionSuppliers         CollectionKind = "suppliers"
	CollectionInternalResources CollectionKind = "internalResources"
	CollectionCategories        CollectionKind = "categories"
)

// Label returns the human-readable singular name used in display strings.
func (k CollectionKind) Label() string {
	switch k {
	case CollectionSuppliers:
		return "Supplier"
	case CollectionInternalResources:
		return "Internal Resource"
	case CollectionCategories:
		return "Category"
	default:
		return "Item"
	}
}

// Scope is the explicit two-case variant carried on every mutation request:
// a write lands either in the global configuration or in the project's
// override set, never decided by a flag buried on the item itself.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeProject Scope = "project"
)

// EffortStatus classifies a phase's total effort for display purposes.
// Totals are never normalized or rejected, only flagged.
type EffortStatus string

const (
	EffortValid   EffortStatus = "valid"   // exactly 100
	EffortWarning EffortStatus = "warning" // under 100 (or zero)
	EffortInvalid EffortStatus = "invalid" // over 100
)
