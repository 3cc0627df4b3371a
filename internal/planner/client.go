package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
)

// API is the server side of the flow as seen from the planner. The fixed
// wire shapes live in the leave domain package; this interface carries them
// unchanged.
type API interface {
	CalendarData(ctx context.Context, userID string, year int) (leave.CalendarData, error)
	Validate(ctx context.Context, req leave.BulkValidateRequest) (leave.BulkValidateResponse, error)
	Store(ctx context.Context, req leave.BulkStoreRequest) (leave.BulkStoreResponse, error)
}

// Client talks to the leave API over HTTP. No client-side timeout is set;
// the transport's defaults apply.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{},
	}
}

// LeaveTypes fetches the active leave types for the dialog's dropdown. It
// sits outside the API interface because the flow itself never calls it;
// the host fetches it once when building the form.
func (c *Client) LeaveTypes(ctx context.Context) ([]leave.LeaveTypeOption, error) {
	var envelope struct {
		Success bool                    `json:"success"`
		Data    []leave.LeaveTypeOption `json:"data"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/leaves/bulk/leave-types", nil, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		if envelope.Error != nil {
			return nil, fmt.Errorf("%s", envelope.Error.Message)
		}
		return nil, fmt.Errorf("leave types request failed")
	}
	return envelope.Data, nil
}

// CalendarData implements API.
func (c *Client) CalendarData(ctx context.Context, userID string, year int) (leave.CalendarData, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("year", strconv.Itoa(year))

	var envelope struct {
		Success bool               `json:"success"`
		Data    leave.CalendarData `json:"data"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/leaves/bulk/calendar-data?"+q.Encode(), nil, &envelope); err != nil {
		return leave.CalendarData{}, err
	}
	if !envelope.Success {
		if envelope.Error != nil {
			return leave.CalendarData{}, fmt.Errorf("%s", envelope.Error.Message)
		}
		return leave.CalendarData{}, fmt.Errorf("calendar data request failed")
	}
	return envelope.Data, nil
}

// Validate implements API.
func (c *Client) Validate(ctx context.Context, req leave.BulkValidateRequest) (leave.BulkValidateResponse, error) {
	var resp leave.BulkValidateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/leaves/bulk/validate", req, &resp); err != nil {
		return leave.BulkValidateResponse{}, err
	}
	return resp, nil
}

// Store implements API.
func (c *Client) Store(ctx context.Context, req leave.BulkStoreRequest) (leave.BulkStoreResponse, error) {
	var resp leave.BulkStoreResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/leaves/bulk/store", req, &resp); err != nil {
		return leave.BulkStoreResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s", serverMessage(raw, resp.StatusCode))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// serverMessage extracts the server's own wording so failures are surfaced
// to the user verbatim.
func serverMessage(raw []byte, statusCode int) string {
	var envelope struct {
		Message string `json:"message"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != nil && envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}
