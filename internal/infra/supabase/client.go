// Package supabase talks to the hosted PostgREST and storage endpoints.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrInvalidURL = errors.New("supabase: invalid url")

// StatusError is a non-2xx PostgREST response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("supabase status %d: %s", e.Status, e.Body)
}

type Client struct {
	BaseURL string
	Key     string
	HTTP    *http.Client
}

func New(baseURL, serviceRoleKey string) (*Client, error) {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, ErrInvalidURL
	}
	return &Client{
		BaseURL: base,
		Key:     serviceRoleKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Select runs GET /rest/v1/<table>?<query> and decodes the rows into out.
func (c *Client) Select(ctx context.Context, table string, query url.Values, out any) error {
	urlStr := c.BaseURL + "/rest/v1/" + table + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return err
	}
	return c.do(req, out, http.StatusOK)
}

// Insert posts one row and decodes the returned representation into out.
func (c *Client) Insert(ctx context.Context, table string, row any, out any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return err
	}
	urlStr := c.BaseURL + "/rest/v1/" + table
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if out != nil {
		req.Header.Set("Prefer", "return=representation")
	} else {
		req.Header.Set("Prefer", "return=minimal")
	}
	return c.do(req, out, http.StatusCreated, http.StatusOK, http.StatusNoContent)
}

// Health checks that PostgREST answers with the configured key.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/rest/v1/", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil, http.StatusOK)
}

// PublicObjectURL is the public download URL of an object in a public bucket.
func (c *Client) PublicObjectURL(bucket, objectName string) string {
	return PublicObjectURL(c.BaseURL, bucket, objectName)
}

func PublicObjectURL(baseURL, bucket, objectName string) string {
	return strings.TrimRight(baseURL, "/") + "/storage/v1/object/public/" + bucket + "/" + strings.TrimLeft(objectName, "/")
}

func (c *Client) do(req *http.Request, out any, ok ...int) error {
	req.Header.Set("apikey", c.Key)
	req.Header.Set("Authorization", "Bearer "+c.Key)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !accepted(resp.StatusCode, ok) {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func accepted(status int, ok []int) bool {
	for _, s := range ok {
		if s == status {
			return true
		}
	}
	return false
}
