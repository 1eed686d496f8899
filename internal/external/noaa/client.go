package noaa

import (
	"context"
	"fmt"
	"net/http"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
	"github.com/madHatter106/state-of-the-climate/pkg/httputil"
	"github.com/madHatter106/state-of-the-climate/pkg/logger"
)

// DefaultMEIURL is the NOAA PSL Multivariate ENSO Index table page
const DefaultMEIURL = "https://www.esrl.noaa.gov/psd/enso/mei/table.html"

// Client fetches climate index tables from NOAA
// ⭐ SSOT: NOAA calls go through this client only
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	meiURL     string
}

// NewClient creates a new NOAA client. An empty meiURL uses DefaultMEIURL.
func NewClient(httpClient *httputil.Client, log *logger.Logger, meiURL string) *Client {
	if meiURL == "" {
		meiURL = DefaultMEIURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "noaa"),
		meiURL:     meiURL,
	}
}

// FetchMEI downloads and parses the MEI table
func (c *Client) FetchMEI(ctx context.Context) (*contracts.ClimateIndexTable, error) {
	resp, err := c.httpClient.Get(ctx, c.meiURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	table, err := ParseMEITable(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse MEI table: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"url":   c.meiURL,
		"years": len(table.Years),
	}).Debug("Fetched MEI table")

	return table, nil
}
