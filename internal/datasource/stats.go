package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/dataset"
	"github.com/yourusername/diamond-edge/internal/teams"
)

// SeasonTables bundles the four stat sources for one season, ready for the
// feature table builder.
type SeasonTables struct {
	Batting   dataset.SourceTable
	Pitching  dataset.SourceTable
	Fielding  dataset.SourceTable
	Standings dataset.SourceTable
}

type statSource struct {
	name   string
	path   string
	key    string
	scheme teams.NamingScheme
}

// Each source publishes under its own naming scheme; the builder normalizes
// them through the canonical lookup.
var statSources = []statSource{
	{name: "bat", path: "batting.csv", key: "Team", scheme: teams.SchemeAbbrev},
	{name: "pit", path: "pitching.csv", key: "Team", scheme: teams.SchemeAbbrev},
	{name: "field", path: "fielding.csv", key: "Team", scheme: teams.SchemeMascot},
	{name: "stand", path: "standings.csv", key: "Tm", scheme: teams.SchemeFull},
}

// winLossPattern matches textual records like "92-70".
var winLossPattern = regexp.MustCompile(`^\d+-\d+$`)

// StatsClient fetches season statistics tables as CSV. Season stats move
// slowly, so responses are cached with a TTL; the odds slate is never cached.
type StatsClient struct {
	client *RateLimitedHTTPClient
	cfg    *config.StatsConfig
	cache  *cache.Cache
	logger *logrus.Logger
}

// NewStatsClient creates a season-stat fetcher from configuration.
func NewStatsClient(cfg *config.StatsConfig, logger *logrus.Logger) *StatsClient {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &StatsClient{
		client: NewRateLimitedHTTPClient(httpCfg, logger),
		cfg:    cfg,
		cache:  cache.New(cfg.CacheTTL(), cfg.CacheTTL()*2),
		logger: logger,
	}
}

// FetchSeasonTables retrieves (or serves from cache) all four stat sources
// for the configured season.
func (c *StatsClient) FetchSeasonTables(ctx context.Context) (*SeasonTables, error) {
	key := fmt.Sprintf("season:%d", c.cfg.Season)
	if cached, found := c.cache.Get(key); found {
		if tables, ok := cached.(*SeasonTables); ok {
			c.logger.WithField("season", c.cfg.Season).Debug("Season tables served from cache")
			return tables, nil
		}
	}

	out := &SeasonTables{}
	targets := map[string]*dataset.SourceTable{
		"bat":   &out.Batting,
		"pit":   &out.Pitching,
		"field": &out.Fielding,
		"stand": &out.Standings,
	}

	for _, src := range statSources {
		table, err := c.fetchSource(ctx, src)
		if err != nil {
			return nil, err
		}
		*targets[src.name] = table
	}

	c.cache.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

func (c *StatsClient) fetchSource(ctx context.Context, src statSource) (dataset.SourceTable, error) {
	u := fmt.Sprintf("%s/%d/%s", strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.Season, src.path)

	resp, err := c.client.Get(ctx, u)
	if err != nil {
		return dataset.SourceTable{}, fmt.Errorf("failed to fetch %s stats: %w", src.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dataset.SourceTable{}, fmt.Errorf("%s stats returned status %d", src.name, resp.StatusCode)
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return dataset.SourceTable{}, fmt.Errorf("failed to parse %s stats CSV: %w", src.name, err)
	}

	rows, err := ParseStatRows(records, src.key)
	if err != nil {
		return dataset.SourceTable{}, fmt.Errorf("%s stats: %w", src.name, err)
	}

	c.logger.WithFields(logrus.Fields{"source": src.name, "rows": len(rows)}).Debug("Fetched stat source")
	return dataset.SourceTable{Name: src.name, Scheme: src.scheme, Rows: rows}, nil
}

// ParseStatRows converts raw CSV records into source rows. Cells parse as
// numeric features where possible; textual win/loss records are kept for the
// builder to derive ratios from; anything else is dropped as identity noise.
func ParseStatRows(records [][]string, keyColumn string) ([]dataset.SourceRow, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	header := records[0]
	keyIdx := -1
	for i, col := range header {
		if col == keyColumn {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return nil, fmt.Errorf("key column %q not found in CSV header", keyColumn)
	}

	rows := make([]dataset.SourceRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("CSV row has %d cells, header has %d", len(record), len(header))
		}

		row := dataset.SourceRow{
			Team:    strings.TrimSpace(record[keyIdx]),
			Numeric: make(map[string]float64),
			Text:    make(map[string]string),
		}
		for i, cell := range record {
			if i == keyIdx {
				continue
			}
			cell = strings.TrimSpace(cell)
			if v, err := strconv.ParseFloat(strings.TrimSuffix(cell, "%"), 64); err == nil {
				row.Numeric[header[i]] = v
			} else if winLossPattern.MatchString(cell) {
				row.Text[header[i]] = cell
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close releases the underlying HTTP client.
func (c *StatsClient) Close() error {
	return c.client.Close()
}
