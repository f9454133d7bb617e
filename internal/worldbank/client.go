package worldbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrDataUnavailable indicates the World Bank API could not be reached or
// returned no usable data after retries. Handlers surface it as a retryable
// condition rather than a server fault.
var ErrDataUnavailable = errors.New("fertilizer data unavailable")

const fetchAttempts = 3

// Client fetches indicator observations and the country master list from the
// World Bank API.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	config = config.withDefaults()
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

// pageMeta is the first element of every World Bank response envelope
type pageMeta struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// RawObservation is one indicator record as returned by the API
type RawObservation struct {
	CountryISO3 string `json:"countryiso3code"`
	Country     struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// RawCountry is one row of the country master list
type RawCountry struct {
	ID       string `json:"id"`
	ISO2Code string `json:"iso2Code"`
	Name     string `json:"name"`
	Region   struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"region"`
}

// FetchIndicator pages through every observation for the configured
// indicator. It returns ErrDataUnavailable when the source is unreachable
// after retries or reports no data at all.
func (c *Client) FetchIndicator(ctx context.Context) ([]RawObservation, error) {
	var observations []RawObservation

	page := 1
	for {
		endpoint := fmt.Sprintf("%s/country/ALL/indicator/%s", c.config.BaseURL, c.config.Indicator)
		params := url.Values{
			"format":   {"json"},
			"per_page": {strconv.Itoa(c.config.PerPage)},
			"page":     {strconv.Itoa(page)},
		}

		meta, rows, err := c.fetchPage(ctx, endpoint+"?"+params.Encode())
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			break
		}

		var pageObservations []RawObservation
		if err := json.Unmarshal(rows, &pageObservations); err != nil {
			return nil, fmt.Errorf("error decoding indicator page %d: %w", page, err)
		}
		observations = append(observations, pageObservations...)

		if page >= meta.Pages {
			break
		}
		page++
	}

	if len(observations) == 0 {
		return nil, fmt.Errorf("indicator %s returned no observations: %w", c.config.Indicator, ErrDataUnavailable)
	}

	return observations, nil
}

// FetchCountries retrieves the country master list in a single request.
func (c *Client) FetchCountries(ctx context.Context) ([]RawCountry, error) {
	params := url.Values{
		"format":   {"json"},
		"per_page": {"20000"},
	}

	_, rows, err := c.fetchPage(ctx, c.config.BaseURL+"/country?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("country list is empty: %w", ErrDataUnavailable)
	}

	var countries []RawCountry
	if err := json.Unmarshal(rows, &countries); err != nil {
		return nil, fmt.Errorf("error decoding country list: %w", err)
	}

	return countries, nil
}

// fetchPage retrieves one API page and splits the [meta, rows] envelope.
// A response without a rows element (the API's error shape, or the page past
// the last one) yields nil rows.
func (c *Client) fetchPage(ctx context.Context, requestURL string) (pageMeta, json.RawMessage, error) {
	body, err := c.getWithRetry(ctx, requestURL)
	if err != nil {
		return pageMeta{}, nil, err
	}

	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return pageMeta{}, nil, fmt.Errorf("error decoding response envelope: %w", err)
	}
	if len(envelope) < 2 {
		return pageMeta{}, nil, nil
	}

	var meta pageMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return pageMeta{}, nil, fmt.Errorf("error decoding page metadata: %w", err)
	}

	return meta, envelope[1], nil
}

// getWithRetry issues a GET with up to fetchAttempts tries and linear
// backoff. Any terminal failure wraps ErrDataUnavailable.
func (c *Client) getWithRetry(ctx context.Context, requestURL string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * 500 * time.Millisecond):
			}
		}

		body, err := c.get(ctx, requestURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, lastErr)
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, requestURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	return body, nil
}
