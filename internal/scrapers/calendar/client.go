package calendar

import (
	"context"
	"math"
	"time"

	"catalog-backend/internal/components/assert"
	"catalog-backend/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type ClientOptions struct {
	// Timeout of a single request, defaults to 30 seconds.
	Timeout time.Duration
	// RequestsPerSecond limits outgoing requests, 0 disables the limit.
	RequestsPerSecond float64
	// CloudflareBypass wraps the transport so requests look like they came
	// from a browser.
	CloudflareBypass bool
}

// Client is a Fetcher backed by resty.
type Client struct {
	http *resty.Client
}

func NewClient(opts ClientOptions, tel telemetry.API) *Client {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("calendar", tel)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New()
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetTimeout(timeout)

	if opts.RequestsPerSecond > 0 {
		// max burst >= rps just means that no requests will be dropped
		burst := int(math.Ceil(opts.RequestsPerSecond))
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)

	return &Client{http: httpClient}
}

// Fetch gets the page at url, any status outside of 2xx is returned as a
// *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	if !res.IsSuccess() {
		return "", &FetchError{
			URL:        url,
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
		}
	}
	return string(res.Body()), nil
}
