// Package backend fetches user profiles from the remote user service.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eventure/rankd/internal/domain/model"
	"github.com/eventure/rankd/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// ProfileFetcher abstracts the user service for the application layer.
type ProfileFetcher interface {
	// FetchProfile resolves a user id into ranking preferences.
	// Returns ErrUserNotFound for unknown users and ErrUnavailable when
	// the user service cannot be reached.
	FetchProfile(ctx context.Context, userID int) (model.UserProfile, error)
}

// Client implements ProfileFetcher over the user service's JSON API.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the user service base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout bounds each profile fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a user service client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: "http://localhost:5152",
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// profileResponse mirrors the user service's JSON shape. maxDistance may
// be a tier name or a raw numeric override, so it is decoded lazily.
type profileResponse struct {
	Preferences string          `json:"preferences"`
	Dislikes    string          `json:"dislikes"`
	PriceRange  string          `json:"priceRange"`
	MaxDistance json.RawMessage `json:"maxDistance"`
}

// FetchProfile resolves a user id into ranking preferences.
func (c *Client) FetchProfile(ctx context.Context, userID int) (model.UserProfile, error) {
	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("build profile request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.Warn(ctx, "user service unreachable",
				logger.String("url", url),
				logger.Error(err),
			)
		}
		return model.UserProfile{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.UserProfile{}, fmt.Errorf("%w: user %d", ErrUserNotFound, userID)
	case resp.StatusCode != http.StatusOK:
		return model.UserProfile{}, fmt.Errorf("%w: user service returned %d", ErrBadResponse, resp.StatusCode)
	}

	var body profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.UserProfile{}, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}

	profile, err := model.NewUserProfile(body.Preferences, body.Dislikes, body.PriceRange, "")
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}

	if len(body.MaxDistance) > 0 {
		var tier string
		var override float64
		if err := json.Unmarshal(body.MaxDistance, &tier); err == nil {
			profile.DistanceTier = tier
		} else if err := json.Unmarshal(body.MaxDistance, &override); err == nil {
			profile.MaxDistanceKm = override
		} else {
			return model.UserProfile{}, fmt.Errorf("%w: maxDistance is neither tier nor number", ErrBadResponse)
		}
	}
	return profile, nil
}
