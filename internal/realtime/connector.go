package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	errMissingURL = errors.New("realtime: socket url is required")

	// ErrNotAuthenticated indicates an attempt to open the channel before a
	// session exists. This is a wiring bug in the caller, not a user-facing
	// condition.
	ErrNotAuthenticated = errors.New("realtime: no session token")
)

// TokenSource supplies the bearer token for the websocket handshake.
type TokenSource interface {
	Token() string
}

// ConnectorConfig describes the dependencies of the connector.
type ConnectorConfig struct {
	URL    string
	Tokens TokenSource
	Logger *zap.Logger
	Dialer *websocket.Dialer
}

// Connector is the session-scoped handle to the realtime channel. The
// owning command wiring creates one connector per authenticated session and
// passes it to whatever needs the channel; Connect is idempotent and never
// opens a second connection. Reconnection after loss is deliberately not
// attempted; the channel's Done signal tells the owner the session's push
// feed is gone.
type Connector struct {
	url      string
	tokens   TokenSource
	logger   *zap.Logger
	dialer   *websocket.Dialer
	clientID string

	once    sync.Once
	channel *Channel
	err     error
}

// NewConnector constructs a connector for one session.
func NewConnector(cfg ConnectorConfig) (*Connector, error) {
	if cfg.URL == "" {
		return nil, errMissingURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &Connector{
		url:      cfg.URL,
		tokens:   cfg.Tokens,
		logger:   logger,
		dialer:   dialer,
		clientID: uuid.NewString(),
	}, nil
}

// Connect opens the channel on first call and returns the same channel on
// every later call. A missing session token fails before any dial happens.
func (c *Connector) Connect(ctx context.Context) (*Channel, error) {
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	c.once.Do(func() {
		c.channel, c.err = c.dial(ctx, token)
	})
	return c.channel, c.err
}

func (c *Connector) dial(ctx context.Context, token string) (*Channel, error) {
	endpoint, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("realtime: parse socket url: %w", err)
	}
	query := endpoint.Query()
	query.Set("client_id", c.clientID)
	endpoint.RawQuery = query.Encode()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := c.dialer.DialContext(ctx, endpoint.String(), header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("realtime: dial %s: %w", c.url, err)
	}

	c.logger.Debug("realtime channel dialed", zap.String("client_id", c.clientID))
	return newChannel(conn, c.logger), nil
}
