// Package gateway wraps the back-office HTTP endpoints. Each method performs exactly one
// request and returns either a decoded payload or an *Error.
package gateway

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

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type Options struct {
	BaseURL string
	// Token, when set, is sent as a bearer token on every request.
	Token string
	// Timeout of zero means requests may wait forever.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

type Client struct {
	base *url.URL
	hc   *http.Client
	log  *log.Logger
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("gateway: missing base url")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("gateway: unsupported scheme %q", base.Scheme)
	}
	base.Path = strings.TrimRight(base.Path, "/")

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if tok := strings.TrimSpace(opts.Token); tok != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}))
	}
	if opts.Timeout > 0 {
		cp := *hc
		cp.Timeout = opts.Timeout
		hc = &cp
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{base: base, hc: hc, log: logger.WithPrefix("gateway")}, nil
}

// BaseURL returns the server root requests are sent to.
func (c *Client) BaseURL() string { return c.base.String() }

// errorBody is the shape the server uses for failures.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one exchange. body is JSON-encoded when non-nil; a 2xx answer is decoded into out.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Op: op, Message: err.Error(), Err: err}
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("request failed", "op", op, "id", reqID, "err", err)
		return &Error{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}
	c.log.Debug("response", "op", op, "id", reqID, "status", resp.StatusCode, "took", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := httpStatusMessage(resp.StatusCode)
		var eb errorBody
		if json.Unmarshal(b, &eb) == nil && strings.TrimSpace(eb.Error) != "" {
			msg = eb.Error
		}
		return &Error{Kind: KindHTTP, Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Status: resp.StatusCode, Message: fmt.Sprintf("%s: malformed response: %v", op, err), Err: err}
	}
	return nil
}
