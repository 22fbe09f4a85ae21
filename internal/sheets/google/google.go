package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"drivelog/internal/core"
	ports "drivelog/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// DefaultSheetName is used when GOOGLE_SHEET_NAME is not set.
const DefaultSheetName = "DailyRecords"

// Client keeps the journal in one tab of a spreadsheet, header in row 1.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheet         string
}

var _ ports.TableStore = (*Client)(nil)

// Credentials locate a service account key. JSON wins over File.
type Credentials struct {
	JSON string
	File string
}

// CredentialsFromEnv reads GOOGLE_SERVICE_ACCOUNT_JSON, then
// GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS.
func CredentialsFromEnv() Credentials {
	file := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	if strings.TrimSpace(file) == "" {
		file = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	return Credentials{JSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"), File: file}
}

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Optional: GOOGLE_SHEET_NAME (default "DailyRecords").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	return New(ctx, spreadsheetID, os.Getenv("GOOGLE_SHEET_NAME"), CredentialsFromEnv())
}

// New creates a client bound to one tab of the given spreadsheet.
func New(ctx context.Context, spreadsheetID, sheet string, creds Credentials) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	svc, err := newSheetsService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheet: sheetName(sheet)}, nil
}

// WithSheet returns a client sharing the same service but bound to another tab.
func (c *Client) WithSheet(sheet string) *Client {
	return &Client{svc: c.svc, spreadsheetID: c.spreadsheetID, sheet: sheetName(sheet)}
}

func (c *Client) Sheet() string { return c.sheet }

func sheetName(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return DefaultSheetName
	}
	return s
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, creds Credentials) (*gsheet.Service, error) {
	credentialsJSON, err := creds.load(ctx)
	if err != nil {
		return nil, err
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c Credentials) load(ctx context.Context) ([]byte, error) {
	inline := strings.TrimSpace(c.JSON)
	file := strings.TrimSpace(c.File)
	switch {
	case inline != "":
		slog.DebugContext(ctx, "Using inline service account credentials")
		return []byte(inline), nil
	case file != "":
		slog.DebugContext(ctx, "Reading service account credentials", "path", file)
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
}

// Load implements sheets.TableReader. An empty tab is an empty table.
func (c *Client) Load(ctx context.Context) (core.Table, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:%s", c.sheet, lastColumn())
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	t, err := core.DecodeTable(toRows(resp.Values))
	if err != nil {
		return nil, fmt.Errorf("decode sheet %s: %w", c.sheet, err)
	}
	return t, nil
}

// Persist implements sheets.TableWriter. The header and records are written
// from A1 first and any rows left over from a longer previous table are
// cleared afterwards, so an interrupted write never leaves the tab empty.
func (c *Client) Persist(ctx context.Context, t core.Table) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	values := toValues(core.EncodeTable(t))
	last := lastColumn()

	rng := fmt.Sprintf("%s!A1:%s%d", c.sheet, last, len(values))
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", rng, err)
	}

	tail := fmt.Sprintf("%s!A%d:%s", c.sheet, len(values)+1, last)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, tail, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", tail, err)
	}

	slog.DebugContext(ctx, "Journal written to sheet", "sheet", c.sheet, "records", len(t))
	return nil
}
