package access

import "tasklist/internal/model"

// Tier is the effective permission a user holds on a task list. It is a
// closed enumeration ordered from weakest to strongest, so a minimum
// requirement is a simple comparison.
type Tier int

const (
	TierNone Tier = iota
	TierView
	TierEdit
	TierOwner
)

func (t Tier) String() string {
	switch t {
	case TierOwner:
		return "owner"
	case TierEdit:
		return "edit"
	case TierView:
		return "view"
	default:
		return "none"
	}
}

// AtLeast reports whether t satisfies the given minimum tier.
func (t Tier) AtLeast(min Tier) bool {
	return t >= min
}

// TierFromPermission maps a stored share permission to its tier.
func TierFromPermission(permission string) Tier {
	switch permission {
	case model.PermissionEdit:
		return TierEdit
	case model.PermissionView:
		return TierView
	default:
		return TierNone
	}
}
