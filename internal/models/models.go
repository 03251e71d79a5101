package models

import "time"

// Token is one swappable asset with its latest USD price. Tokens are
// immutable; each price refresh replaces the whole list.
type Token struct {
	Currency    string    `json:"currency"`
	Price       float64   `json:"price"`
	LastUpdated time.Time `json:"last_updated"`
	IconURL     string    `json:"icon_url"`
}

// TokenView is a Token enriched with display strings for the UI.
type TokenView struct {
	Token
	PriceDisplay string `json:"price_display"`
}

// Quote is a stateless rate computation for a from/to/amount triple.
type Quote struct {
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	FromAmount      float64 `json:"from_amount"`
	ToAmount        float64 `json:"to_amount"`
	ExchangeRate    float64 `json:"exchange_rate"`
	RateDisplay     string  `json:"rate_display"`
	ToAmountDisplay string  `json:"to_amount_display"`
	FromUSDDisplay  string  `json:"from_usd_display"`
	ToUSDDisplay    string  `json:"to_usd_display"`
}

// SwapReceipt is returned by a successful session execution.
type SwapReceipt struct {
	ID           string    `json:"id"`
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	FromAmount   float64   `json:"from_amount"`
	ToAmount     float64   `json:"to_amount"`
	ExchangeRate float64   `json:"exchange_rate"`
	ExecutedAt   time.Time `json:"executed_at"`
}

// SessionView is the JSON projection of a swap session.
type SessionView struct {
	ID           string  `json:"id"`
	FromToken    *Token  `json:"from_token"`
	ToToken      *Token  `json:"to_token"`
	FromAmount   string  `json:"from_amount"`
	ToAmount     string  `json:"to_amount"`
	ExchangeRate float64 `json:"exchange_rate"`
	RateDisplay  string  `json:"rate_display"`
	IsLoading    bool    `json:"is_loading"`
	IsValidSwap  bool    `json:"is_valid_swap"`
	HelpText     string  `json:"help_text"`
	Error        string  `json:"error,omitempty"`
}
