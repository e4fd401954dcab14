package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/mwalther/sheetsync/internal/google"
	"github.com/mwalther/sheetsync/internal/pipeline"
)

// Client wraps the Google Sheets API service.
type Client struct {
	svc     *sheets.Service
	account string
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccount creates a new Sheets client with OAuth2 authentication
// for a specific account.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// SheetProperties resolves a sheet by title within a spreadsheet.
func (c *Client) SheetProperties(ctx context.Context, spreadsheetID, title string) (*sheets.SheetProperties, error) {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets(properties(sheetId,title,gridProperties))").
		Context(ctx).
		Do()
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("spreadsheet %s: %w", spreadsheetID, pipeline.ErrSpreadsheetNotFound)
		}
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return s.Properties, nil
		}
	}
	return nil, fmt.Errorf("spreadsheet %s, sheet %q: %w", spreadsheetID, title, pipeline.ErrSheetNotFound)
}

// FirstSheetTitle returns the title of the first sheet in a spreadsheet.
func (c *Client) FirstSheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets(properties(title,index))").
		Context(ctx).
		Do()
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("spreadsheet %s: %w", spreadsheetID, pipeline.ErrSpreadsheetNotFound)
		}
		return "", fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no sheets: %w", spreadsheetID, pipeline.ErrSheetNotFound)
	}
	return ss.Sheets[0].Properties.Title, nil
}

// FirstSheetValues reads all values from the first sheet of a spreadsheet.
func (c *Client) FirstSheetValues(ctx context.Context, spreadsheetID string) ([][]any, error) {
	title, err := c.FirstSheetTitle(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}
	return c.ReadRange(ctx, spreadsheetID, QuoteSheet(title))
}

// ReadRange reads all values from an A1-style range.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, a1 string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("spreadsheet %s: %w", spreadsheetID, pipeline.ErrSpreadsheetNotFound)
		}
		return nil, fmt.Errorf("failed to read range %s from %s: %w", a1, spreadsheetID, err)
	}
	return resp.Values, nil
}

// ClearRange clears cell contents (not formatting or notes) in an A1-style range.
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, a1 string) error {
	_, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, a1, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear range %s in %s: %w", a1, spreadsheetID, err)
	}
	return nil
}

// WriteRange writes values into an A1-style range without input parsing.
func (c *Client) WriteRange(ctx context.Context, spreadsheetID, a1 string, values [][]any) error {
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, a1, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write range %s in %s: %w", a1, spreadsheetID, err)
	}
	return nil
}

// SetNote attaches a note to the top-left cell (A1) of a sheet.
func (c *Client) SetNote(ctx context.Context, spreadsheetID string, sheetID int64, note string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    0,
						EndRowIndex:      1,
						StartColumnIndex: 0,
						EndColumnIndex:   1,
					},
					Cell:   &sheets.CellData{Note: note},
					Fields: "note",
				},
			},
		},
	}

	_, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to set note on sheet %d in %s: %w", sheetID, spreadsheetID, err)
	}
	return nil
}

// isNotFound reports whether err is a Google API 404. The Sheets API also
// answers 404 for IDs the caller has no access to.
func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == 404
}
