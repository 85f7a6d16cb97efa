package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/debuglog"
)

const (
	articleSearchPath = "/articles/search_by_similarity"
	chunkSearchPath   = "/article_chunks/search_by_similarity"
)

// Client talks to the similarity search API. Every call is a fresh round
// trip: no retries, no caching.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		userAgent: cfg.API.UserAgent,
		http: &http.Client{
			Timeout: cfg.API.Timeout,
		},
	}
}

// BaseURL reports the API root the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) SearchArticles(ctx context.Context, query string, page, pageSize int) (*Page[ScoredArticle], error) {
	if err := checkPaging(page, pageSize); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	var out Page[ScoredArticle]
	if err := c.getJSON(ctx, articleSearchPath, params, &out); err != nil {
		return nil, err
	}
	if err := out.validate(); err != nil {
		return nil, decodeError(err)
	}
	return &out, nil
}

func (c *Client) SearchArticleChunks(ctx context.Context, query string, articleID int64, page, pageSize int) (*Page[ScoredChunk], error) {
	if err := checkPaging(page, pageSize); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("article_id", strconv.FormatInt(articleID, 10))
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	var out Page[ScoredChunk]
	if err := c.getJSON(ctx, chunkSearchPath, params, &out); err != nil {
		return nil, err
	}
	if err := out.validate(); err != nil {
		return nil, decodeError(err)
	}
	return &out, nil
}

// FetchArticleRawText fetches the full stored text of an article.
//
// Deprecated: superseded by SearchArticleChunks; kept for backends that
// still serve the raw text endpoint.
func (c *Client) FetchArticleRawText(ctx context.Context, articleID int64) (string, error) {
	var out articleTextResponse
	path := fmt.Sprintf("/articles/%d/s3", articleID)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log := debuglog.WithFields(map[string]any{"request_id": reqID, "path": path})
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warnf("GET failed after %s: %v", time.Since(start), err)
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()
	log.Debugf("GET %d in %s", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &RequestFailedError{Status: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return decodeError(err)
	}
	return nil
}

func checkPaging(page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidArgument, page)
	}
	if pageSize < 1 {
		return fmt.Errorf("%w: page_size must be >= 1, got %d", ErrInvalidArgument, pageSize)
	}
	return nil
}
