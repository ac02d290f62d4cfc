package hypixel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"skyfisher-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("lib/hypixel")

const (
	defaultBaseURL       = "https://api.hypixel.net"
	defaultMojangBaseURL = "https://api.mojang.com"
	defaultTimeout       = time.Second * 30
)

// RawProfile is one skyblock profile exactly as the upstream api
// returned it. its schema varies across profile ages and is treated
// as untrusted everywhere.
type RawProfile = json.RawMessage

type ClientOptions struct {
	BaseURL       string
	MojangBaseURL string
	// APIKey is attached to every hypixel request as the `key` query
	// parameter. an empty key is legal, requests just run in the
	// anonymous rate-limit tier.
	APIKey  string
	Timeout time.Duration
	Retry   *RetryPolicy
}

type Client struct {
	http   *resty.Client
	mojang *resty.Client
	retry  RetryPolicy
	apiKey string
}

// NewClient builds a client over a shared connection pool. the pool
// must be released with Close when the client is no longer needed.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.MojangBaseURL == "" {
		opts.MojangBaseURL = defaultMojangBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	retry := DefaultRetryPolicy()
	if opts.Retry != nil {
		retry = *opts.Retry
	}

	// 2 requests max per second, 120 req/min per hypixel docs.
	// max burst >= 2 just means that no requests will be dropped
	limiter := rate.NewLimiter(2, 2)

	return &Client{
		http:   newResty(opts.BaseURL, opts.Timeout, limiter, "hypixel-http"),
		mojang: newResty(opts.MojangBaseURL, opts.Timeout, limiter, "mojang-http"),
		retry:  retry,
		apiKey: opts.APIKey,
	}
}

func newResty(baseURL string, timeout time.Duration, limiter *rate.Limiter, tracerName string) *resty.Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("user-agent", "skyfisher-backend")
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})
	telemetry.InstrumentResty(client, tracerName)
	return client
}

// Close releases the underlying connection pools.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
	c.mojang.GetClient().CloseIdleConnections()
}

// get runs a request under the retry policy. transport-level failures
// are retried with deterministic exponential backoff, checking for
// cancellation between attempts; anything that produced an http
// response is returned as-is for classification.
func (c *Client) get(ctx context.Context, client *resty.Client, path string, query map[string]string) (*resty.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			timer := time.NewTimer(c.retry.delay(attempt - 1))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		res, err := client.R().
			SetContext(ctx).
			SetQueryParams(query).
			Get(path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		return res, nil
	}

	return nil, &UpstreamError{
		Reason: fmt.Sprintf("giving up after %d attempts: %s", c.retry.MaxAttempts, lastErr),
	}
}

// classify maps an http response onto the error taxonomy. a 2xx
// response can still fail logically via the `success` envelope flag.
func classify(res *resty.Response) error {
	switch {
	case res.StatusCode() == 404:
		return ErrNotFound
	case res.StatusCode() == 429:
		return ErrRateLimited
	case res.StatusCode() >= 400:
		return &UpstreamError{StatusCode: res.StatusCode()}
	}

	body := gjson.ParseBytes(res.Body())
	if success := body.Get("success"); success.Exists() && !success.Bool() {
		return &UpstreamError{
			StatusCode: res.StatusCode(),
			Reason:     body.Get("cause").String(),
		}
	}
	return nil
}

func (c *Client) withKey(query map[string]string) map[string]string {
	if c.apiKey != "" {
		query["key"] = c.apiKey
	}
	return query
}

// ResolvePlayerID resolves an in-game name to the player's hyphenated
// uuid via the mojang api.
func (c *Client) ResolvePlayerID(ctx context.Context, name string) (string, error) {
	ctx, span := tracer.Start(ctx, "ResolvePlayerID")
	defer span.End()
	span.SetAttributes(attribute.String("player.name", name))

	res, err := c.get(ctx, c.mojang, "/users/profiles/minecraft/"+url.PathEscape(name), map[string]string{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	// mojang answers 204 for unknown names on some api versions
	if res.StatusCode() == 204 {
		return "", fmt.Errorf("player name %q: %w", name, ErrNotFound)
	}
	if err := classify(res); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if err == ErrNotFound {
			return "", fmt.Errorf("player name %q: %w", name, ErrNotFound)
		}
		return "", err
	}

	raw := gjson.GetBytes(res.Body(), "id").String()
	if len(raw) != 32 {
		err := &UpstreamError{StatusCode: res.StatusCode(), Reason: "malformed uuid in name resolution response"}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return hyphenate(raw), nil
}

// FetchProfiles fetches every skyblock profile attached to the player.
func (c *Client) FetchProfiles(ctx context.Context, playerID string) ([]RawProfile, error) {
	ctx, span := tracer.Start(ctx, "FetchProfiles")
	defer span.End()
	span.SetAttributes(attribute.String("player.id", playerID))

	res, err := c.get(ctx, c.http, "/v2/skyblock/profiles", c.withKey(map[string]string{
		"uuid": strings.ReplaceAll(playerID, "-", ""),
	}))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := classify(res); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	list := gjson.GetBytes(res.Body(), "profiles")
	if !list.IsArray() || len(list.Array()) == 0 {
		return nil, fmt.Errorf("player has no skyblock profiles: %w", ErrNotFound)
	}

	profiles := make([]RawProfile, 0, len(list.Array()))
	for _, p := range list.Array() {
		profiles = append(profiles, RawProfile(p.Raw))
	}
	span.SetAttributes(attribute.Int("profile.count", len(profiles)))
	return profiles, nil
}

// FetchPlayerMeta fetches player-level data that is not scoped to any
// one profile (achievements, first login, etc.).
func (c *Client) FetchPlayerMeta(ctx context.Context, playerID string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "FetchPlayerMeta")
	defer span.End()
	span.SetAttributes(attribute.String("player.id", playerID))

	res, err := c.get(ctx, c.http, "/v2/player", c.withKey(map[string]string{
		"uuid": strings.ReplaceAll(playerID, "-", ""),
	}))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := classify(res); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if player := gjson.GetBytes(res.Body(), "player"); player.Exists() {
		return json.RawMessage(player.Raw), nil
	}
	return json.RawMessage(res.Body()), nil
}

func hyphenate(id string) string {
	return strings.Join([]string{
		id[0:8], id[8:12], id[12:16], id[16:20], id[20:],
	}, "-")
}
