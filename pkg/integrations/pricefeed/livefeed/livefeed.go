package livefeed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"swapdesk/pkg/types/pricefeed"
)

const DefaultURL = "https://interview.switcheo.com/prices.json"

var _ pricefeed.Source = (*Feed)(nil)

// Feed fetches the price feed: one GET to a fixed URL returning a JSON
// array of {currency, price, date} records.
type Feed struct {
	URL    string
	Client *http.Client
}

func New(url string) *Feed {
	if url == "" {
		url = DefaultURL
	}
	return &Feed{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *Feed) Fetch(ctx context.Context) ([]pricefeed.Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, errors.Wrap(pricefeed.ErrUnavailable, err.Error())
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(pricefeed.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(pricefeed.ErrUnavailable, "unexpected status code: %d", resp.StatusCode)
	}

	var samples []pricefeed.Sample
	if err := json.NewDecoder(resp.Body).Decode(&samples); err != nil {
		return nil, errors.Wrap(pricefeed.ErrUnavailable, "failed to decode response: "+err.Error())
	}

	return samples, nil
}
