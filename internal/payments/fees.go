package payments

import "github.com/HarmonyGroup/harmony-bookme-sub002/pkg/paystack"

// ComputeFeeBreakdown splits a successful charge between the vendor and
// the platform. The commission rate is a percentage of the gross amount;
// when the vendor bears the gateway fees they come out of the vendor
// share, otherwise the platform absorbs them.
func ComputeFeeBreakdown(amount int64, commissionRate float64, gatewayFees int64, feeBearer string) (vendorAmount, platformAmount int64) {
	platformAmount = int64(float64(amount) * commissionRate / 100)
	if platformAmount > amount {
		platformAmount = amount
	}
	vendorAmount = amount - platformAmount

	if feeBearer == paystack.BearerSubaccount {
		vendorAmount -= gatewayFees
	} else {
		platformAmount -= gatewayFees
	}
	if vendorAmount < 0 {
		vendorAmount = 0
	}
	if platformAmount < 0 {
		platformAmount = 0
	}
	return vendorAmount, platformAmount
}
