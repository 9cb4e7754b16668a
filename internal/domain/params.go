package domain

// CalculationParams is the flat map of named numeric/string calculation
// settings (working days per month, currency symbol, risk margin, default
// per-role day rates). Values round-trip through JSON, so numbers arrive
// as float64.
type CalculationParams map[string]any

// Well-known parameter keys.
const (
	ParamWorkingDaysPerMonth = "workingDaysPerMonth"
	ParamWorkingHoursPerDay  = "workingHoursPerDay"
	ParamCurrencySymbol      = "currencySymbol"
	ParamRiskMargin          = "riskMargin"
	ParamDefaultRateG1       = "defaultRateG1"
	ParamDefaultRateG2       = "defaultRateG2"
	ParamDefaultRateTA       = "defaultRateTA"
	ParamDefaultRatePM       = "defaultRatePM"
)

// DefaultRateParam returns the parameter key holding a role's default
// day rate.
func DefaultRateParam(role Role) string {
	switch role {
	case RoleG1:
		return ParamDefaultRateG1
	case RoleG2:
		return ParamDefaultRateG2
	case RoleTA:
		return ParamDefaultRateTA
	case RolePM:
		return ParamDefaultRatePM
	default:
		return ""
	}
}

// Float reads a numeric parameter, tolerating the integer types a literal
// map may carry before a JSON round-trip. Missing or non-numeric values
// yield the fallback.
func (p CalculationParams) Float(key string, fallback float64) float64 {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return fallback
	}
}

// String reads a string parameter, yielding the fallback when missing or
// of another type.
func (p CalculationParams) String(key, fallback string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return fallback
}

// Clone copies the map. Values are scalars, so a shallow value copy is a
// full copy.
func (p CalculationParams) Clone() CalculationParams {
	if p == nil {
		return CalculationParams{}
	}
	out := make(CalculationParams, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// MergeCalculationParams layers parameter maps left to right, later wins.
// Nil layers are treated as empty.
func MergeCalculationParams(layers ...CalculationParams) CalculationParams {
	out := CalculationParams{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// EqualCalculationParams compares two parameter maps by key and value.
func EqualCalculationParams(a, b CalculationParams) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || v != w {
			return false
		}
	}
	return true
}
