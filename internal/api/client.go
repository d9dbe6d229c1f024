package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prasetya/ujian/internal/exam"
	"github.com/prasetya/ujian/internal/pack"
	"github.com/prasetya/ujian/internal/store"
)

// Client talks to a remote `ujian serve` instance. It satisfies the same
// boundaries the local backends do (pack.Source, store.Submitter,
// store.Finder), so the TUI does not care which side of the wire it is on.
type Client struct {
	base string
	hc   *http.Client
}

var (
	_ pack.Source     = (*Client)(nil)
	_ store.Submitter = (*Client)(nil)
	_ store.Finder    = (*Client)(nil)
)

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Load fetches the question package for testCode.
func (c *Client) Load(ctx context.Context, testCode string) (*pack.Package, error) {
	u := fmt.Sprintf("%s/api/questions?testCode=%s", c.base, url.QueryEscape(testCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &store.StoreError{Op: "fetch questions", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var pkg pack.Package
		if err := json.NewDecoder(resp.Body).Decode(&pkg); err != nil {
			return nil, fmt.Errorf("decode question package: %w", err)
		}
		return &pkg, nil
	case http.StatusNotFound:
		return nil, pack.ErrPackageNotFound
	default:
		return nil, remoteError("fetch questions", resp)
	}
}

// SaveSubmission posts the submission to the server, which appends it and
// its derived result.
func (c *Client) SaveSubmission(ctx context.Context, sub exam.SubmissionRecord) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/submit-test", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return &store.StoreError{Op: "submit test", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return &exam.ValidationError{Field: "submission", Reason: remoteMessage(resp)}
	default:
		return remoteError("submit test", resp)
	}
}

// FindResult fetches the first-match result for the pair.
func (c *Client) FindResult(ctx context.Context, testCode, userID string) (exam.ResultRecord, error) {
	u := fmt.Sprintf("%s/api/results?testCode=%s&userId=%s",
		c.base, url.QueryEscape(testCode), url.QueryEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return exam.ResultRecord{}, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return exam.ResultRecord{}, &store.StoreError{Op: "fetch result", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var rec exam.ResultRecord
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			return exam.ResultRecord{}, fmt.Errorf("decode result: %w", err)
		}
		return rec, nil
	case http.StatusNotFound:
		return exam.ResultRecord{}, store.ErrResultNotFound
	default:
		return exam.ResultRecord{}, remoteError("fetch result", resp)
	}
}

// remoteMessage extracts the server's error message, falling back to the
// HTTP status.
func remoteMessage(resp *http.Response) string {
	var er errorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != "" {
		return er.Error
	}
	return resp.Status
}

func remoteError(op string, resp *http.Response) error {
	return &store.StoreError{Op: op, Err: fmt.Errorf("server said: %s", remoteMessage(resp))}
}
