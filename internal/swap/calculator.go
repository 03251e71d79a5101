package swap

import (
	"math"
	"strconv"
	"strings"

	"swapdesk/internal/format"
	"swapdesk/internal/models"
)

// ExchangeRate derives units of the destination token per one unit of
// the source token. Missing tokens or non-positive prices yield 0.
func ExchangeRate(from, to *models.Token) float64 {
	if from == nil || to == nil {
		return 0
	}
	if from.Price <= 0 || to.Price <= 0 {
		return 0
	}
	return from.Price / to.Price
}

// OutputAmount converts an input amount through a rate. Non-positive or
// non-finite inputs yield 0.
func OutputAmount(amount, rate float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0
	}
	return amount * rate
}

// OutputAmountString parses a user-entered amount and converts it.
func OutputAmountString(amount string, rate float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return 0
	}
	return OutputAmount(v, rate)
}

// USDValue renders the USD worth of an amount at a price. A zero or
// invalid amount or price yields "$0.00".
func USDValue(amount, price float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount == 0 {
		return "$0.00"
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price == 0 {
		return "$0.00"
	}
	return format.FormatPrice(amount*price, "USD", true)
}
