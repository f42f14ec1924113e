package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/paystack"
)

func TestComputeFeeBreakdown(t *testing.T) {
	t.Run("platform bears gateway fees", func(t *testing.T) {
		vendor, platform := ComputeFeeBreakdown(100000, 5, 1500, paystack.BearerAccount)
		assert.Equal(t, int64(95000), vendor)
		assert.Equal(t, int64(3500), platform)
	})

	t.Run("vendor bears gateway fees", func(t *testing.T) {
		vendor, platform := ComputeFeeBreakdown(100000, 5, 1500, paystack.BearerSubaccount)
		assert.Equal(t, int64(93500), vendor)
		assert.Equal(t, int64(5000), platform)
	})

	t.Run("zero commission", func(t *testing.T) {
		vendor, platform := ComputeFeeBreakdown(50000, 0, 0, paystack.BearerAccount)
		assert.Equal(t, int64(50000), vendor)
		assert.Equal(t, int64(0), platform)
	})

	t.Run("commission over 100 percent clamps", func(t *testing.T) {
		vendor, platform := ComputeFeeBreakdown(10000, 150, 0, paystack.BearerAccount)
		assert.Equal(t, int64(0), vendor)
		assert.Equal(t, int64(10000), platform)
	})

	t.Run("fees exceeding a share floor at zero", func(t *testing.T) {
		vendor, platform := ComputeFeeBreakdown(1000, 5, 2000, paystack.BearerSubaccount)
		assert.Equal(t, int64(0), vendor)
		assert.Equal(t, int64(50), platform)

		vendor, platform = ComputeFeeBreakdown(1000, 5, 2000, paystack.BearerAccount)
		assert.Equal(t, int64(950), vendor)
		assert.Equal(t, int64(0), platform)
	})
}

func TestGenerateReference(t *testing.T) {
	a := generateReference()
	b := generateReference()

	assert.Regexp(t, `^BKM-\d+-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}
