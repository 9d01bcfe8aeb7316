package civitai

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"civitaid/internal/config"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultBaseURL = "https://civitai.com"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 32 << 20
)

// Config encapsulates all tunables for Client construction.
type Config struct {
	BaseURL string
	APIKey  string
	Proxy   string
	// Certificate verification stays off unless VerifyTLS is set.
	VerifyTLS bool
	Timeout   time.Duration
	// RequestsPerSecond <= 0 disables client side rate limiting.
	RequestsPerSecond float64
	// MaxImagesPerVersion caps image searches; 0 means no limit parameter.
	MaxImagesPerVersion int
	// BaseModels maps a base model tag to the LoRA "sd version" label.
	BaseModels map[string]string
}

// ConfigFrom extracts the client settings from the application config.
func ConfigFrom(c config.Config) Config {
	return Config{
		BaseURL:             c.Civitai.BaseURL,
		APIKey:              c.Civitai.APIKey,
		Proxy:               c.Civitai.Proxy,
		VerifyTLS:           c.Civitai.VerifyTLS,
		Timeout:             time.Duration(c.Civitai.TimeoutSeconds) * time.Second,
		RequestsPerSecond:   c.Civitai.RequestsPerSecond,
		MaxImagesPerVersion: c.ShortcutMaxDownloadImagePerVersion,
		BaseModels:          c.BaseModels,
	}
}

// Client talks to the Civitai REST API. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	cfg  Config
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// New builds a Client. The logger receives one debug line per failed lookup.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: !cfg.VerifyTLS}
	if cfg.Proxy != "" {
		pu, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("proxy url: %w", err)
		}
		tr.Proxy = http.ProxyURL(pu)
	}
	var rt http.RoundTripper = tr
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		rt = &rateLimitedTransport{base: tr, limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)}
	}
	return &Client{
		cfg:  cfg,
		base: base,
		http: &http.Client{Transport: rt, Timeout: cfg.Timeout},
		log:  log,
	}, nil
}

// rateLimitedTransport waits for the limiter before every request.
type rateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// ModelPageURL is the human facing page of a model.
func (c *Client) ModelPageURL(modelID int64) string {
	return c.endpoint(fmt.Sprintf("/models/%d", modelID), nil)
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// newRequest builds a GET with the API key attached.
func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	return req, nil
}

// getJSON fetches rawURL and decodes the body into dest. Every failure is
// returned as *Error and logged at debug level with its kind.
func (c *Client) getJSON(ctx context.Context, endpoint, ref, rawURL string, dest any) error {
	start := time.Now()
	err := c.fetchJSON(ctx, endpoint, ref, rawURL, dest)
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, KindOf(err).String()).Inc()
		c.log.Debug().Str("endpoint", endpoint).Str("ref", ref).Str("kind", KindOf(err).String()).Err(err).Msg("civitai lookup failed")
		return err
	}
	requestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

func (c *Client) fetchJSON(ctx context.Context, endpoint, ref, rawURL string, dest any) error {
	fail := func(kind Kind, status int, err error) error {
		return &Error{Kind: kind, Endpoint: endpoint, Ref: ref, Status: status, Err: err}
	}
	req, err := c.newRequest(ctx, rawURL)
	if err != nil {
		return fail(KindRejected, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	// connection errors, timeouts and cancellation alike
	resp, err := c.http.Do(req)
	if err != nil {
		return fail(KindTransient, 0, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(KindTransient, resp.StatusCode, err)
	}
	if kind := statusKind(resp.StatusCode); kind != 0 {
		return fail(kind, resp.StatusCode, nil)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fail(KindMalformed, resp.StatusCode, err)
	}
	return nil
}

// statusKind classifies a non-200 status; it returns 0 for 200.
func statusKind(code int) Kind {
	switch {
	case code == http.StatusOK:
		return 0
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return KindTransient
	default:
		return KindRejected
	}
}
