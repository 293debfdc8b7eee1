package currency_test

import (
	"testing"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRate 测试汇率查询
func TestRate(t *testing.T) {
	rate, ok := currency.Rate("USD")
	require.True(t, ok)
	assert.Equal(t, 1.0, rate)

	rate, ok = currency.Rate("EUR")
	require.True(t, ok)
	assert.Equal(t, 1.08, rate)

	_, ok = currency.Rate("JPY")
	assert.False(t, ok)
}

// TestIsSupported 测试币种支持判断
func TestIsSupported(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "GBP", "BRL", "XAF"} {
		assert.True(t, currency.IsSupported(code))
	}
	assert.False(t, currency.IsSupported("usd"))
	assert.False(t, currency.IsSupported(""))
}

// TestCodes 测试币种代码按字典序返回
func TestCodes(t *testing.T) {
	assert.Equal(t, []string{"BRL", "EUR", "GBP", "USD", "XAF"}, currency.Codes())
}

// TestRates_ReturnsCopy 测试汇率表返回副本
func TestRates_ReturnsCopy(t *testing.T) {
	rates := currency.Rates()
	rates["USD"] = 42

	fresh, ok := currency.Rate("USD")
	require.True(t, ok)
	assert.Equal(t, 1.0, fresh)
}
