// internal/adapter/sheets/client.go

package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"trendpulse/internal/domain/trend"
)

// DefaultKeysTab is the tab holding access-key rows
const DefaultKeysTab = "ApiKeys"

// ValuesAPI is the part of the spreadsheet values service the client uses
type ValuesAPI interface {
	// BatchGet reads several ranges, returning one row set per range in order
	BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([][][]interface{}, error)

	// Get reads a single range
	Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)

	// Append adds one row after the last row of the range
	Append(ctx context.Context, spreadsheetID, rng string, row []interface{}) error
}

// Connector builds a ValuesAPI from service-account credentials
type Connector func(ctx context.Context, credentials []byte, scope string) (ValuesAPI, error)

// Config holds spreadsheet access configuration
type Config struct {
	CredentialsJSON string
	SheetID         string
	KeysTab         string
}

// Client reads trend and access-key rows from a spreadsheet
type Client struct {
	cfg     Config
	connect Connector
	logger  zerolog.Logger
	now     func() time.Time
}

// NewClient creates a new spreadsheet client
func NewClient(cfg Config, connect Connector, logger zerolog.Logger) *Client {
	if cfg.KeysTab == "" {
		cfg.KeysTab = DefaultKeysTab
	}
	cfg.SheetID = unquote(strings.TrimSpace(cfg.SheetID))

	return &Client{
		cfg:     cfg,
		connect: connect,
		logger:  logger.With().Str("component", "sheets").Logger(),
		now:     time.Now,
	}
}

// serviceAccount is the subset of a service-account document we check
type serviceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

// credentials returns the raw credential document when the client is
// configured well enough to attempt a network call
func (c *Client) credentials() ([]byte, bool) {
	raw := []byte(c.cfg.CredentialsJSON)
	if len(raw) == 0 || c.cfg.SheetID == "" {
		return nil, false
	}

	var sa serviceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		c.logger.Error().Err(err).Msg("Failed to parse service account credentials")
		return nil, false
	}
	if sa.ProjectID == "" {
		return nil, false
	}

	return raw, true
}

// trendRanges returns the cohort ranges in Generations order
func trendRanges() []string {
	ranges := make([]string, 0, len(trend.Generations))
	for _, gen := range trend.Generations {
		ranges = append(ranges, gen+"!A2:G")
	}
	return ranges
}

// FetchTrends reads every cohort tab. It never returns an error: missing
// configuration yields an empty dataset, a failed call an empty dataset
// carrying the error flag.
func (c *Client) FetchTrends(ctx context.Context) trend.Dataset {
	creds, ok := c.credentials()
	if !ok {
		c.logger.Warn().Msg("Missing Google Sheets credentials or sheet ID")
		return trend.EmptyDataset(c.now(), "")
	}

	api, err := c.connect(ctx, creds, ReadonlyScope)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error connecting to sheets service")
		return trend.EmptyDataset(c.now(), trend.FetchError)
	}

	valueRanges, err := api.BatchGet(ctx, c.cfg.SheetID, trendRanges())
	if err != nil {
		c.logger.Error().Err(err).Msg("Error fetching sheets data")
		return trend.EmptyDataset(c.now(), trend.FetchError)
	}

	dataset := trend.EmptyDataset(c.now(), "")
	for i, rows := range valueRanges {
		if i >= len(trend.Generations) {
			break
		}
		dataset.Generations[trend.Generations[i]] = MapTrendRows(rows)
	}

	return dataset
}

// FetchAPIKeys reads the access-key tab and returns the active keys
func (c *Client) FetchAPIKeys(ctx context.Context) ([]string, error) {
	creds, ok := c.credentials()
	if !ok {
		return nil, trend.ErrNotConfigured
	}

	api, err := c.connect(ctx, creds, ReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sheets service: %w", err)
	}

	rows, err := api.Get(ctx, c.cfg.SheetID, c.cfg.KeysTab+"!A2:D")
	if err != nil {
		return nil, fmt.Errorf("error fetching api keys: %w", err)
	}

	return ActiveKeys(MapKeyRows(rows)), nil
}

// AppendAPIKey adds an access-key row to the key tab
func (c *Client) AppendAPIKey(ctx context.Context, key trend.APIKey) error {
	creds, ok := c.credentials()
	if !ok {
		return trend.ErrNotConfigured
	}

	api, err := c.connect(ctx, creds, ReadWriteScope)
	if err != nil {
		return fmt.Errorf("error connecting to sheets service: %w", err)
	}

	active := "FALSE"
	if key.Active {
		active = "TRUE"
	}

	row := []interface{}{key.Key, key.AppName, key.OwnerEmail, active}
	if err := api.Append(ctx, c.cfg.SheetID, c.cfg.KeysTab+"!A:D", row); err != nil {
		return fmt.Errorf("error appending api key: %w", err)
	}

	return nil
}

// MapTrendRows converts positional rows into items, newest row first.
// Columns: date, trend, source, url, raw text, score, metric.
func MapTrendRows(rows [][]interface{}) []trend.Item {
	items := make([]trend.Item, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		items = append(items, trend.Item{
			Date:    cell(row, 0),
			Trend:   cell(row, 1),
			Source:  cell(row, 2),
			URL:     cell(row, 3),
			RawText: cell(row, 4),
			Score:   parseScore(cell(row, 5)),
			Metric:  cell(row, 6),
		})
	}
	return items
}

// MapKeyRows converts positional rows into key records.
// Columns: key, app name, owner email, active.
func MapKeyRows(rows [][]interface{}) []trend.APIKey {
	keys := make([]trend.APIKey, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, trend.APIKey{
			Key:        cell(row, 0),
			AppName:    cell(row, 1),
			OwnerEmail: cell(row, 2),
			Active:     strings.ToUpper(cell(row, 3)) == "TRUE",
		})
	}
	return keys
}

// ActiveKeys returns the non-empty keys of active records
func ActiveKeys(records []trend.APIKey) []string {
	keys := make([]string, 0, len(records))
	for _, r := range records {
		if r.Key != "" && r.Active {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}

func parseScore(s string) int {
	score, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return score
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
