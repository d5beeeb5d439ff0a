package model

// Tier is a staff permission tier. Tiers are totally ordered:
// staff < hr < admin < owner.
type Tier int

const (
	TierStaff Tier = iota
	TierHR
	TierAdmin
	TierOwner
)

func (t Tier) String() string {
	switch t {
	case TierStaff:
		return "staff"
	case TierHR:
		return "hr"
	case TierAdmin:
		return "admin"
	case TierOwner:
		return "owner"
	}
	return "unknown"
}

// ParseTier maps a tier name to its Tier value.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "staff":
		return TierStaff, true
	case "hr":
		return TierHR, true
	case "admin":
		return TierAdmin, true
	case "owner":
		return TierOwner, true
	}
	return 0, false
}
