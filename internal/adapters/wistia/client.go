package wistia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"wistiamirror/internal/domain"
)

type wistiaHTTPClient struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewHTTPClient returns a client that calls the Wistia media API with the
// given base URL and bearer token.
func NewHTTPClient(client *http.Client, baseURL, token string) domain.WistiaClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &wistiaHTTPClient{client: client, baseURL: baseURL, token: token}
}

func (c *wistiaHTTPClient) ListVideos(ctx context.Context) ([]domain.WistiaVideoListItem, error) {
	var videos []domain.WistiaVideoListItem
	url := fmt.Sprintf("%s/medias.json", c.baseURL)
	if err := c.do(ctx, http.MethodGet, url, nil, &videos); err != nil {
		return nil, fmt.Errorf("failed to fetch videos from wistia: %w", err)
	}
	return videos, nil
}

func (c *wistiaHTTPClient) GetVideoDetail(ctx context.Context, hashedID string) (domain.WistiaVideoDetail, error) {
	var detail domain.WistiaVideoDetail
	url := fmt.Sprintf("%s/medias/%s.json", c.baseURL, hashedID)
	if err := c.do(ctx, http.MethodGet, url, nil, &detail); err != nil {
		return domain.WistiaVideoDetail{}, fmt.Errorf("failed to fetch details for video %s from wistia: %w", hashedID, err)
	}
	return detail, nil
}

func (c *wistiaHTTPClient) GetVideoStats(ctx context.Context, hashedID string) (domain.WistiaVideoStats, error) {
	// The stats payload nests plays under a "stats" object; plays defaults
	// to 0 when the object is absent.
	var payload struct {
		Stats domain.WistiaVideoStats `json:"stats"`
	}
	url := fmt.Sprintf("%s/medias/%s/stats.json", c.baseURL, hashedID)
	if err := c.do(ctx, http.MethodGet, url, nil, &payload); err != nil {
		return domain.WistiaVideoStats{}, fmt.Errorf("failed to fetch stats for video %s from wistia: %w", hashedID, err)
	}
	return payload.Stats, nil
}

func (c *wistiaHTTPClient) ReplaceTags(ctx context.Context, hashedID string, tagNames []string) error {
	if tagNames == nil {
		tagNames = []string{}
	}
	// Wistia only supports full replacement of the tag list.
	body := map[string][]string{"tags": tagNames}
	url := fmt.Sprintf("%s/medias/%s.json", c.baseURL, hashedID)
	if err := c.do(ctx, http.MethodPut, url, body, nil); err != nil {
		return fmt.Errorf("failed to update tags for video %s on wistia: %w", hashedID, err)
	}
	return nil
}

// do issues one authenticated request and decodes the response into out when
// out is non-nil. Non-2xx statuses are returned as errors.
func (c *wistiaHTTPClient) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("wistia api returned status: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode wistia response: %w", err)
	}
	return nil
}
