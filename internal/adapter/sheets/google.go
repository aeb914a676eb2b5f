// internal/adapter/sheets/google.go

package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Scopes requested from the service account
const (
	ReadonlyScope  = gsheets.SpreadsheetsReadonlyScope
	ReadWriteScope = gsheets.SpreadsheetsScope
)

// googleValues implements ValuesAPI over the Sheets v4 API
type googleValues struct {
	values *gsheets.SpreadsheetsValuesService
}

// Connect authenticates with a service-account document and returns a
// ValuesAPI backed by the Google Sheets service
func Connect(ctx context.Context, credentials []byte, scope string) (ValuesAPI, error) {
	jwt, err := google.JWTConfigFromJSON(credentials, scope)
	if err != nil {
		return nil, fmt.Errorf("error parsing service account: %w", err)
	}

	srv, err := gsheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("error creating sheets service: %w", err)
	}

	return &googleValues{values: srv.Spreadsheets.Values}, nil
}

// BatchGet reads several ranges in one call
func (g *googleValues) BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([][][]interface{}, error) {
	resp, err := g.values.BatchGet(spreadsheetID).Ranges(ranges...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error executing batch get: %w", err)
	}

	result := make([][][]interface{}, 0, len(resp.ValueRanges))
	for _, vr := range resp.ValueRanges {
		if vr == nil {
			result = append(result, nil)
			continue
		}
		result = append(result, vr.Values)
	}

	return result, nil
}

// Get reads a single range
func (g *googleValues) Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	resp, err := g.values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error executing get: %w", err)
	}
	return resp.Values, nil
}

// Append inserts a row below the existing data of the range
func (g *googleValues) Append(ctx context.Context, spreadsheetID, rng string, row []interface{}) error {
	body := &gsheets.ValueRange{Values: [][]interface{}{row}}

	_, err := g.values.Append(spreadsheetID, rng, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("error executing append: %w", err)
	}
	return nil
}
