package pricefeed

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrUnavailable marks any feed failure: network error, bad status, or
// an undecodable body. Callers fall back to stale cache when they can.
var ErrUnavailable = errors.New("price feed unavailable")

const (
	ModeLive = "live"
	ModeMock = "mock"
)

// Sample is one raw feed record. Many samples may exist per currency;
// deduplication keeps the one with the latest Date.
type Sample struct {
	Currency string    `json:"currency"`
	Price    float64   `json:"price"`
	Date     time.Time `json:"date"`
}

type Source interface {
	Fetch(ctx context.Context) ([]Sample, error)
}

var (
	SampleSample = Sample{
		Currency: "ETH",
		Price:    1645.93,
		Date:     time.Date(2023, 8, 29, 9, 1, 0, 0, time.UTC),
	}
	SampleSamples = []Sample{
		{
			Currency: "ETH",
			Price:    1645.93,
			Date:     time.Date(2023, 8, 29, 9, 1, 0, 0, time.UTC),
		},
		{
			Currency: "USDC",
			Price:    0.9999,
			Date:     time.Date(2023, 8, 29, 9, 1, 0, 0, time.UTC),
		},
	}
)
