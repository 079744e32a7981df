package remote

import (
	"net/http"
	"time"

	"github.com/birreros/porra/pkg/logger"
)

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithSecret sets the shared secret sent on every request.
func WithSecret(secret string) ClientOption {
	return func(c *Client) {
		c.secret = secret
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// PusherOption applies a configuration option to the Pusher.
type PusherOption func(*Pusher)

// WithPushInterval sets the minimum spacing between pushes.
func WithPushInterval(d time.Duration) PusherOption {
	return func(p *Pusher) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithPusherLogger sets the logger used by the push loop.
func WithPusherLogger(log logger.Logger) PusherOption {
	return func(p *Pusher) {
		if log != nil {
			p.logger = log
		}
	}
}
