package entity

import "strings"

// GuestIDPrefix marks identities minted for guests
const GuestIDPrefix = "guest_"

// Principal is the authenticated caller of a request
type Principal struct {
	UserID    string
	Guest     bool
	SiteOwner bool
	Email     string
	Name      string
}

// IsGuestID reports whether the id was minted for a guest
func IsGuestID(id string) bool {
	return strings.HasPrefix(id, GuestIDPrefix)
}

// CanUseOwnerEndpoints reports whether the principal passes the owner gate.
// Production is open to every user; other environments are limited to site
// owners, and guests count as owners in mvp mode.
func (p *Principal) CanUseOwnerEndpoints(production, mvpMode bool) bool {
	if p == nil {
		return false
	}
	if production {
		return true
	}
	if p.Guest {
		return mvpMode
	}
	return p.SiteOwner
}

// FeatureFlags switch optional product areas on and off
type FeatureFlags struct {
	MVPMode      bool
	Payment      bool
	GiftCode     bool
	OrderHistory bool
}

// Feature names an optional product area
type Feature string

const (
	FeaturePayment      Feature = "payment"
	FeatureGiftCode     Feature = "giftCode"
	FeatureOrderHistory Feature = "orderHistory"
)

// Enabled reports whether the feature is on; outside mvp mode everything is
func (f FeatureFlags) Enabled(feature Feature) bool {
	if !f.MVPMode {
		return true
	}
	switch feature {
	case FeaturePayment:
		return f.Payment
	case FeatureGiftCode:
		return f.GiftCode
	case FeatureOrderHistory:
		return f.OrderHistory
	default:
		return false
	}
}
