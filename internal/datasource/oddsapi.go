package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
)

// OddsClient fetches the day's game slate with bookmaker quotes from the
// odds API. American odds format is requested so prices arrive as the signed
// integers the core works with.
type OddsClient struct {
	client *RateLimitedHTTPClient
	cfg    *config.OddsAPIConfig
	logger *logrus.Logger
}

// NewOddsClient creates a slate fetcher from configuration.
func NewOddsClient(cfg *config.OddsAPIConfig, logger *logrus.Logger) *OddsClient {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimit

	return &OddsClient{
		client: NewRateLimitedHTTPClient(httpCfg, logger),
		cfg:    cfg,
		logger: logger,
	}
}

// FetchSlate retrieves the upcoming games and their bookmaker quotes.
func (c *OddsClient) FetchSlate(ctx context.Context) ([]*models.GameEvent, error) {
	start := time.Now()
	defer func() {
		metrics.SlateFetchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	endpoint := fmt.Sprintf("%s/v4/sports/%s/odds", strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.SportKey)
	params := url.Values{}
	params.Set("apiKey", c.cfg.APIKey)
	params.Set("regions", c.cfg.Regions)
	params.Set("markets", strings.Join(c.cfg.Markets, ","))
	params.Set("oddsFormat", "american")

	resp, err := c.client.Get(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		metrics.OddsAPIRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch odds slate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.OddsAPIRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("odds API returned status %d", resp.StatusCode)
	}
	metrics.OddsAPIRequestsTotal.WithLabelValues("ok").Inc()

	var games []*models.GameEvent
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("failed to decode odds slate: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"games":   len(games),
		"markets": c.cfg.Markets,
	}).Info("Fetched odds slate")
	return games, nil
}

// Close releases the underlying HTTP client.
func (c *OddsClient) Close() error {
	return c.client.Close()
}
