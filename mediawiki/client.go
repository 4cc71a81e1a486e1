// Package mediawiki is a minimal client for the MediaWiki action API:
// page enumeration (action=query), rendered-content retrieval
// (action=parse) and redirect metadata (prop=info), with typed responses
// and coded errors. Every outbound call waits on the shared throttle
// before it is issued.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/use-agent/wikigrab/config"
	"github.com/use-agent/wikigrab/models"
	"github.com/use-agent/wikigrab/throttle"
)

// Client issues MediaWiki API requests against one resolved endpoint.
type Client struct {
	source    Source
	httpc     *http.Client
	throttle  *throttle.Throttle
	userAgent string
	maxBody   int64
}

// NewClient resolves the wiki endpoint and builds a Client around it.
func NewClient(cfg config.WikiConfig, th *throttle.Throttle) (*Client, error) {
	src, err := ResolveSource(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 10 * 1024 * 1024
	}
	return &Client{
		source:    src,
		httpc:     &http.Client{Timeout: cfg.Timeout},
		throttle:  th,
		userAgent: cfg.UserAgent,
		maxBody:   maxBody,
	}, nil
}

// Source returns the resolved wiki source.
func (c *Client) Source() Source { return c.source }

// Query performs one action=query call with the given parameters.
func (c *Client) Query(ctx context.Context, params url.Values) (*QueryResponse, error) {
	var env queryEnvelope
	if err := c.call(ctx, "query", params, &env); err != nil {
		return nil, err
	}
	if env.Error != nil {
		return nil, apiErrorOf(env.Error)
	}
	if env.Query == nil && env.Continue == nil {
		return nil, models.NewWikiError(models.ErrCodeMalformed, "query response carries neither query nor continue", nil)
	}
	resp := &QueryResponse{Continue: env.Continue}
	if env.Query != nil {
		resp.AllPages = env.Query.AllPages
		resp.CategoryMembers = env.Query.CategoryMembers
		resp.Pages = env.Query.Pages
	}
	return resp, nil
}

// Parse retrieves the rendered HTML of one page via action=parse.
func (c *Client) Parse(ctx context.Context, title string) (*ParseResponse, error) {
	params := url.Values{}
	params.Set("page", title)
	params.Set("prop", "text|displaytitle")

	var env parseEnvelope
	if err := c.call(ctx, "parse", params, &env); err != nil {
		return nil, err
	}
	if env.Error != nil {
		return nil, apiErrorOf(env.Error)
	}
	if env.Parse == nil {
		return nil, models.NewWikiError(models.ErrCodeMalformed, "parse response carries no parse object", nil)
	}
	return &ParseResponse{
		Title:  env.Parse.Title,
		PageID: env.Parse.PageID,
		HTML:   env.Parse.Text,
	}, nil
}

// PageInfo fetches redirect and existence metadata for one title.
func (c *Client) PageInfo(ctx context.Context, title string) (*PageInfo, error) {
	params := url.Values{}
	params.Set("titles", title)
	params.Set("prop", "info")

	resp, err := c.Query(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Pages) == 0 {
		return nil, models.NewWikiError(models.ErrCodeMalformed, fmt.Sprintf("info response carries no page for %q", title), nil)
	}
	return &resp.Pages[0], nil
}

// call issues one throttled GET against the endpoint and decodes the JSON
// body into out. format=json and formatversion=2 are always forced.
func (c *Client) call(ctx context.Context, action string, params url.Values, out any) error {
	if err := c.throttle.Wait(ctx); err != nil {
		return models.NewWikiError(models.ErrCodeTransport, "throttle wait interrupted", err)
	}

	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("action", action)
	q.Set("format", "json")
	q.Set("formatversion", "2")

	reqURL := c.source.Endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.NewWikiError(models.ErrCodeTransport, "build request", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("api call", "action", action, "url", reqURL)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return models.NewWikiError(models.ErrCodeTransport, fmt.Sprintf("%s request failed", action), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.NewWikiError(models.ErrCodeTransport, fmt.Sprintf("%s returned HTTP %d", action, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return models.NewWikiError(models.ErrCodeTransport, "read response body", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return models.NewWikiError(models.ErrCodeMalformed, fmt.Sprintf("%s response is not valid JSON", action), err)
	}
	return nil
}

// apiErrorOf maps the remote structured error into a coded WikiError,
// preserving the remote error code in the message.
func apiErrorOf(e *apiError) error {
	return models.NewWikiError(models.ErrCodeAPI, fmt.Sprintf("%s: %s", e.Code, e.Info), nil)
}
