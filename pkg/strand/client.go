package strand

import (
	"fmt"
	"sync"

	"github.com/strandplatform/strand-go/pkg/auth"
	pkghttp "github.com/strandplatform/strand-go/pkg/http"
	"github.com/strandplatform/strand-go/pkg/log"
)

type (
	Option func(*Client)

	// Client dispatches authenticated requests against one app of the
	// platform, managing the session lifecycle around every call.
	Client struct {
		config Config
		http   pkghttp.Client
		tokens *auth.Store
		logger log.Logger

		refreshMu       sync.Mutex
		refreshInFlight *refreshCall
	}
)

func NewClient(config Config, tokens *auth.Store, opts ...Option) (*Client, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, fmt.Errorf("token store is required")
	}

	client := &Client{
		config: config,
		tokens: tokens,
		logger: log.NewStub(),
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.http == nil {
		client.http = pkghttp.NewClient()
	}
	client.http = client.http.With(
		pkghttp.WithClientDestination("strand", config.BaseURL),
	)

	return client, nil
}

func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the transport, keeping whatever logging, metrics
// and request-ID options the given client carries. The base URL is still
// taken from the config.
func WithHTTPClient(httpClient pkghttp.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// TokenStore exposes the session store, mainly so embedders can seed or
// inspect credentials.
func (c *Client) TokenStore() *auth.Store {
	return c.tokens
}
