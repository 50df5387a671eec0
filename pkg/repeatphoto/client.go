package repeatphoto

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"srer/pkg/errors"
	"srer/pkg/logger"
	"srer/pkg/ratelimit"
)

const (
	DefaultPageTimeout     = 60 * time.Second
	DefaultDownloadTimeout = 120 * time.Second
)

// Client fetches station pages and image binaries. It never retries.
type Client struct {
	http            *resty.Client
	httpClient      *http.Client
	userAgent       string
	limiter         ratelimit.Limiter
	logger          logger.Logger
	pageTimeout     time.Duration
	downloadTimeout time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger used for request logging
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// WithLimiter paces every request through l
func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithTimeouts overrides the page and download timeouts; zero keeps the default
func WithTimeouts(page, download time.Duration) Option {
	return func(c *Client) {
		if page > 0 {
			c.pageTimeout = page
		}
		if download > 0 {
			c.downloadTimeout = download
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient builds the resty client on top of hc
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client with default timeouts and no pacing
func NewClient(opts ...Option) *Client {
	c := &Client{
		limiter:         ratelimit.Unlimited{},
		pageTimeout:     DefaultPageTimeout,
		downloadTimeout: DefaultDownloadTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.GetLogger()
	}

	if c.httpClient != nil {
		c.http = resty.NewWithClient(c.httpClient)
	} else {
		c.http = resty.New()
	}
	if c.userAgent != "" {
		c.http.SetHeader("User-Agent", c.userAgent)
	}

	c.http.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		logger.LogRequest(c.logger, res.Request.Method, res.Request.URL, res.StatusCode(), res.Time())
		return nil
	})

	return c
}

// FetchPage returns the body of the station page at url
func (c *Client) FetchPage(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url, c.pageTimeout, "text/html,application/xhtml+xml")
}

// FetchImage returns the image binary at url
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url, c.downloadTimeout, "image/*,*/*;q=0.8")
}

func (c *Client) get(ctx context.Context, url string, timeout time.Duration, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", accept).
		Get(url)
	if err != nil {
		c.logger.WithError(err).WarnWithFields("HTTP request failed", map[string]interface{}{
			"url": url,
		})
		return nil, errors.Network(url, err)
	}

	if !errors.IsSuccessStatus(res.StatusCode()) {
		return nil, errors.HTTPStatus(url, res.StatusCode())
	}

	return res.Body(), nil
}
