package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"swapdesk/internal/models"
)

// Display defaults for amounts, prices, and rates.
const (
	DefaultAmountDecimals = 6
	DefaultPriceDecimals  = 2
	DefaultRateDecimals   = 6
	CryptoDecimals        = 8
)

// Validation messages surfaced verbatim in the UI.
const (
	MsgSelectFromToken = "Please select a token to swap from"
	MsgSelectToToken   = "Please select a token to swap to"
	MsgSameToken       = "Cannot swap the same token"
	MsgInvalidAmount   = "Please enter a valid amount"
)

// AmountPattern is the lexical form of an editable amount field. The
// empty string is the valid "unset" sentinel.
var AmountPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)

var printer = message.NewPrinter(language.English)

func MatchesAmountPattern(s string) bool {
	return AmountPattern.MatchString(s)
}

// FormatAmount renders a numeric amount for display. Invalid input
// degrades to "0". Sub-0.001 amounts keep up to 8 fractional digits
// with trailing zeros trimmed; large amounts get fewer fractional
// digits and, in compact mode, a K/M/B suffix.
func FormatAmount(amount float64, decimals int, compact bool) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0"
	}
	if decimals < 0 {
		decimals = 0
	}

	if amount > 0 && amount < 0.001 {
		return trimZeros(strconv.FormatFloat(amount, 'f', 8, 64))
	}

	if compact && amount >= 1_000_000 {
		return compactSuffix(amount, 2, true)
	}

	maxFrac := decimals
	switch {
	case amount >= 1000:
		maxFrac = min(2, decimals)
	case amount >= 100:
		maxFrac = min(4, decimals)
	}
	return grouped(amount, 0, maxFrac)
}

// FormatAmountString parses a user-entered amount and formats it.
// Non-numeric input degrades to "0".
func FormatAmountString(s string, decimals int, compact bool) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "0"
	}
	return FormatAmount(v, decimals, compact)
}

// FormatPrice renders a USD-denominated price with a currency symbol
// and at least two fractional digits. Invalid input degrades to "$0.00".
func FormatPrice(price float64, currency string, compact bool) string {
	symbol := currencySymbol(currency)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return symbol + "0.00"
	}

	if price > 0 && price < 0.01 {
		return symbol + trimZeros(strconv.FormatFloat(price, 'f', 8, 64))
	}

	if compact && price >= 1_000_000 {
		return symbol + compactSuffix(price, 2, true)
	}

	maxFrac := DefaultAmountDecimals
	switch {
	case price >= 1000:
		maxFrac = 2
	case price >= 100:
		maxFrac = 4
	}
	return symbol + grouped(price, DefaultPriceDecimals, maxFrac)
}

// FormatCryptoAmount renders an on-screen token amount with up to 8
// fractional digits, optionally suffixed with the token symbol.
func FormatCryptoAmount(amount float64, symbol string, showSymbol bool) string {
	s := FormatAmount(amount, CryptoDecimals, false)
	if showSymbol && symbol != "" {
		return s + " " + symbol
	}
	return s
}

// FormatPercentage renders a percentage with two fixed fractional
// digits, prefixing "+" for positive values when showSign is set.
func FormatPercentage(pct float64, showSign bool) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "0%"
	}
	s := strconv.FormatFloat(pct, 'f', 2, 64) + "%"
	if showSign && pct > 0 {
		return "+" + s
	}
	return s
}

// FormatCompactNumber renders n with a B/M/K suffix and fixed decimals.
// Below one thousand it falls back to FormatAmount.
func FormatCompactNumber(n float64, decimals int) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	if math.Abs(n) >= 1000 {
		return compactSuffix(n, decimals, false)
	}
	return FormatAmount(n, decimals, false)
}

// FormatExchangeRate renders a rate, optionally as "1 FROM = rate TO".
// A zero rate renders as "0".
func FormatExchangeRate(rate float64, fromSymbol, toSymbol string) string {
	if rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return "0"
	}
	formatted := FormatAmount(rate, DefaultRateDecimals, false)
	if fromSymbol != "" && toSymbol != "" {
		return fmt.Sprintf("1 %s = %s %s", fromSymbol, formatted, toSymbol)
	}
	return formatted
}

// IsValidAmount reports whether s parses to a finite number greater
// than zero.
func IsValidAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Validation is a non-thrown validation outcome; the first failing
// check wins.
type Validation struct {
	IsValid bool   `json:"is_valid"`
	Error   string `json:"error,omitempty"`
}

// ValidateSwap checks a from/to/amount triple in order: from token set,
// to token set, tokens differ, amount valid.
func ValidateSwap(fromToken, toToken *models.Token, fromAmount string) Validation {
	switch {
	case fromToken == nil:
		return Validation{Error: MsgSelectFromToken}
	case toToken == nil:
		return Validation{Error: MsgSelectToToken}
	case fromToken.Currency == toToken.Currency:
		return Validation{Error: MsgSameToken}
	case !IsValidAmount(fromAmount):
		return Validation{Error: MsgInvalidAmount}
	default:
		return Validation{IsValid: true}
	}
}

func currencySymbol(currency string) string {
	switch currency {
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return "$"
	}
}

func grouped(v float64, minFrac, maxFrac int) string {
	if maxFrac < minFrac {
		maxFrac = minFrac
	}
	return printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(minFrac),
		number.MaxFractionDigits(maxFrac),
	))
}

func compactSuffix(v float64, decimals int, trim bool) string {
	abs := math.Abs(v)
	var scaled float64
	var suffix string
	switch {
	case abs >= 1e9:
		scaled, suffix = v/1e9, "B"
	case abs >= 1e6:
		scaled, suffix = v/1e6, "M"
	default:
		scaled, suffix = v/1e3, "K"
	}
	s := strconv.FormatFloat(scaled, 'f', decimals, 64)
	if trim {
		s = trimZeros(s)
	}
	return s + suffix
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
