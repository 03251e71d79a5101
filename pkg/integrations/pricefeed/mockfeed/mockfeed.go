package mockfeed

import (
	"context"
	"time"

	"swapdesk/pkg/types/pricefeed"
)

var _ pricefeed.Source = (*Feed)(nil)

// Feed serves a fixed sample set so the pipeline can run without the
// real feed. The set deliberately carries duplicate currencies with
// different dates, matching the shape of the live feed.
type Feed struct{}

func New() *Feed {
	return &Feed{}
}

func (f *Feed) Fetch(_ context.Context) ([]pricefeed.Sample, error) {
	samples := make([]pricefeed.Sample, len(fixture))
	copy(samples, fixture)
	return samples, nil
}

var fixture = []pricefeed.Sample{
	{Currency: "ETH", Price: 1645.934, Date: date("2023-08-29T09:01:00Z")},
	{Currency: "BTC", Price: 26002.822, Date: date("2023-08-29T09:01:00Z")},
	{Currency: "USDC", Price: 0.989832, Date: date("2023-08-29T09:01:00Z")},
	{Currency: "USDC", Price: 1.000048, Date: date("2023-08-29T09:04:00Z")},
	{Currency: "SWTH", Price: 0.004039, Date: date("2023-08-29T09:00:00Z")},
	{Currency: "ATOM", Price: 7.186657, Date: date("2023-08-29T09:01:00Z")},
	{Currency: "OSMO", Price: 0.377297, Date: date("2023-08-29T09:01:00Z")},
	{Currency: "LUNA", Price: 0.409563, Date: date("2023-08-29T09:01:00Z")},
	{Currency: "BUSD", Price: 0.999183, Date: date("2023-08-29T09:01:00Z")},
	{Currency: "BUSD", Price: 0.999999, Date: date("2023-08-29T09:06:00Z")},
	{Currency: "WBTC", Price: 26002.277, Date: date("2023-08-29T09:01:00Z")},
	{Currency: "STEVMOS", Price: 0.072862, Date: date("2023-08-29T09:01:00Z")},
}

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
