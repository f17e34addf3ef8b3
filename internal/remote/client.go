// Package remote implements the best-effort sync collaborator: submitting
// logged activities to a shared endpoint and fetching its leaderboard.
// Local state is authoritative; everything here may fail without
// consequence beyond a diagnostic log.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Activity is the wire shape of one submitted entry.
type Activity struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Points    int    `json:"points"`
	Timestamp int64  `json:"timestamp"`
}

// Standing is one row of the remote leaderboard.
type Standing struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SubmitActivity posts one activity. Callers do not rely on a return value
// beyond logging; there is no retry here.
func (c *Client) SubmitActivity(ctx context.Context, a Activity) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/activities", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit activity: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("submit activity: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// FetchLeaderboard returns the remote standings for the trailing window.
// Any failure yields an error; callers render an empty board instead.
func (c *Client) FetchLeaderboard(ctx context.Context, windowDays int) ([]Standing, error) {
	url := c.endpoint + "/leaderboard?days=" + strconv.Itoa(windowDays)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch leaderboard: unexpected status %d", resp.StatusCode)
	}
	var standings []Standing
	if err := json.NewDecoder(resp.Body).Decode(&standings); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return standings, nil
}
