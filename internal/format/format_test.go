package format

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"swapdesk/internal/models"
)

func TestFormatAmount_InvalidInput(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(math.NaN(), DefaultAmountDecimals, false))
	assert.Equal(t, "0", FormatAmount(math.Inf(1), DefaultAmountDecimals, false))
	assert.Equal(t, "0", FormatAmountString("", DefaultAmountDecimals, false))
	assert.Equal(t, "0", FormatAmountString("abc", DefaultAmountDecimals, false))
	assert.Equal(t, "0", FormatAmountString("12.34.56", DefaultAmountDecimals, false))
}

func TestFormatAmount_TinyAmounts(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.0005, "0.0005"},
		{0.00012345, "0.00012345"},
		{0.000123456789, "0.00012346"},
		{0.0009, "0.0009"},
	}
	for _, tt := range tests {
		got := FormatAmount(tt.in, DefaultAmountDecimals, false)
		assert.Equal(t, tt.want, got)
		assert.False(t, strings.HasSuffix(got, "0") && strings.Contains(got, "."),
			"no trailing zeros for %v: %q", tt.in, got)
	}
}

func TestFormatAmount_Compact(t *testing.T) {
	assert.Equal(t, "1.23M", FormatAmount(1234567, 2, true))
	assert.Equal(t, "1M", FormatAmount(1000000, 2, true))
	assert.Equal(t, "2.5B", FormatAmount(2_500_000_000, 2, true))
}

func TestFormatAmount_MagnitudeTiers(t *testing.T) {
	assert.Equal(t, "1,234.5", FormatAmount(1234.5, 6, false))
	assert.Equal(t, "1,234,567", FormatAmount(1234567, 6, false))
	assert.Equal(t, "123.4568", FormatAmount(123.456789, 6, false))
	assert.Equal(t, "0.123457", FormatAmount(0.123456789, 6, false))
	assert.Equal(t, "10", FormatAmount(10, 6, false))
}

func TestFormatAmountString(t *testing.T) {
	assert.Equal(t, "1,234.5", FormatAmountString("1234.5", 6, false))
	assert.Equal(t, "0.5", FormatAmountString(" 0.5 ", 6, false))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0.00", FormatPrice(math.NaN(), "USD", false))
	assert.Equal(t, "$0.00", FormatPrice(0, "USD", false))
	assert.Equal(t, "$2,000.00", FormatPrice(2000, "USD", false))
	assert.Equal(t, "$26,002.82", FormatPrice(26002.822, "USD", false))
	assert.Equal(t, "$0.004039", FormatPrice(0.004039, "USD", false))
	assert.Equal(t, "$1.23M", FormatPrice(1234567.89, "USD", true))
	assert.Equal(t, "€100.4568", FormatPrice(100.456789, "EUR", false))
	assert.Equal(t, "£1.50", FormatPrice(1.5, "GBP", false))
}

func TestFormatCryptoAmount(t *testing.T) {
	assert.Equal(t, "0.66666667 BTC", FormatCryptoAmount(0.666666666, "BTC", true))
	assert.Equal(t, "0.66666667", FormatCryptoAmount(0.666666666, "BTC", false))
	assert.Equal(t, "10", FormatCryptoAmount(10, "", true))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "+5.50%", FormatPercentage(5.5, true))
	assert.Equal(t, "5.50%", FormatPercentage(5.5, false))
	assert.Equal(t, "-3.25%", FormatPercentage(-3.25, true))
	assert.Equal(t, "0.00%", FormatPercentage(0, true))
	assert.Equal(t, "0%", FormatPercentage(math.NaN(), true))
}

func TestFormatCompactNumber(t *testing.T) {
	assert.Equal(t, "1.5B", FormatCompactNumber(1_500_000_000, 1))
	assert.Equal(t, "2.3M", FormatCompactNumber(2_300_000, 1))
	assert.Equal(t, "1.0K", FormatCompactNumber(1000, 1))
	assert.Equal(t, "999", FormatCompactNumber(999, 1))
	assert.Equal(t, "0", FormatCompactNumber(math.NaN(), 1))
}

func TestFormatExchangeRate(t *testing.T) {
	assert.Equal(t, "0", FormatExchangeRate(0, "ETH", "BTC"))
	assert.Equal(t, "1 ETH = 0.066667 BTC", FormatExchangeRate(0.06666666, "ETH", "BTC"))
	assert.Equal(t, "0.066667", FormatExchangeRate(0.06666666, "", ""))
	assert.Equal(t, "0.066667", FormatExchangeRate(0.06666666, "ETH", ""))
}

func TestIsValidAmount(t *testing.T) {
	assert.False(t, IsValidAmount(""))
	assert.False(t, IsValidAmount("   "))
	assert.False(t, IsValidAmount("0"))
	assert.False(t, IsValidAmount("-10"))
	assert.False(t, IsValidAmount("abc"))
	assert.True(t, IsValidAmount("123.45"))
	assert.True(t, IsValidAmount("0.0001"))
	assert.True(t, IsValidAmount(" 10 "))
}

func TestMatchesAmountPattern(t *testing.T) {
	assert.True(t, MatchesAmountPattern(""))
	assert.True(t, MatchesAmountPattern("123"))
	assert.True(t, MatchesAmountPattern("123."))
	assert.True(t, MatchesAmountPattern(".5"))
	assert.True(t, MatchesAmountPattern("123.45"))
	assert.False(t, MatchesAmountPattern("1.2.3"))
	assert.False(t, MatchesAmountPattern("-1"))
	assert.False(t, MatchesAmountPattern("1e5"))
	assert.False(t, MatchesAmountPattern("12a"))
}

func TestValidateSwap(t *testing.T) {
	eth := &models.Token{Currency: "ETH", Price: 2000}
	btc := &models.Token{Currency: "BTC", Price: 30000}

	v := ValidateSwap(nil, btc, "10")
	assert.False(t, v.IsValid)
	assert.Equal(t, MsgSelectFromToken, v.Error)

	v = ValidateSwap(eth, nil, "10")
	assert.False(t, v.IsValid)
	assert.Equal(t, MsgSelectToToken, v.Error)

	v = ValidateSwap(eth, eth, "10")
	assert.False(t, v.IsValid)
	assert.Equal(t, MsgSameToken, v.Error)

	v = ValidateSwap(eth, btc, "0")
	assert.False(t, v.IsValid)
	assert.Equal(t, MsgInvalidAmount, v.Error)

	v = ValidateSwap(eth, btc, "10")
	assert.True(t, v.IsValid)
	assert.Empty(t, v.Error)
}

func TestValidateSwap_FirstFailureWins(t *testing.T) {
	// everything is wrong; the from-token check short-circuits the rest
	v := ValidateSwap(nil, nil, "")
	assert.Equal(t, MsgSelectFromToken, v.Error)
}
