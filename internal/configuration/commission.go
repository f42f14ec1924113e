package configuration

import (
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/vendors"
)

// ResolveCommission returns the effective commission percentage for a
// vendor. A vendor-level override wins; otherwise the active
// configuration's category rate applies; otherwise the platform default.
// Pure: the caller supplies the active configuration row.
func ResolveCommission(vendor *vendors.Vendor, active *Configuration, platformDefault float64) float64 {
	if vendor != nil && vendor.CommissionRate != nil {
		return *vendor.CommissionRate
	}
	if vendor != nil && active != nil {
		if rate, ok := active.RateFor(vendor.Category); ok {
			return rate
		}
	}
	return platformDefault
}
