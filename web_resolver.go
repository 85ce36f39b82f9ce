package ddns

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

// maxBodySize bounds how much of a provider response is read.
const maxBodySize = 64 << 10

var (
	errBadResponse   = errors.New("bad response from IP lookup server")
	errNotDottedQuad = errors.New("result is not a dotted quad IP")
)

// WebResolver constructs a resolver which uses external web services to look up the public IP address.
//
// Providers are polled one at a time in a fresh random order on each call,
// so no single service absorbs all of the load.
// The first provider whose response passes its own Validate check
// and whose extracted value is a dotted-quad wins.
// There is no consensus check between providers.
//
// Every request is bounded by a short timeout (see Config.Timeout),
// and a failed provider is never retried within the same call.
// If every provider fails, the error wraps ErrNoUsableProvider.
func WebResolver(providers ...AddressProvider) Resolver {
	p := make([]AddressProvider, len(providers))
	copy(p, providers)
	return &webResolver{
		providers: p,
		timeout:   DefaultConfig().Timeout,
		logger:    discard,
	}
}

type webResolver struct {
	httpClient *http.Client
	providers  []AddressProvider
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *Metrics
}

func (wr *webResolver) SetLogger(l *slog.Logger)         { wr.logger = l }
func (wr *webResolver) SetHTTPClient(hc *http.Client)    { wr.httpClient = hc }
func (wr *webResolver) SetMetrics(m *Metrics)            { wr.metrics = m }
func (wr *webResolver) SetTimeout(timeout time.Duration) { wr.timeout = timeout }

// Resolve implements ddns.Resolver.
func (wr *webResolver) Resolve(ctx context.Context) (string, error) {
	if len(wr.providers) == 0 {
		return "", fmt.Errorf("%w: no address providers were configured", ErrNoUsableProvider)
	}

	order := make([]AddressProvider, len(wr.providers))
	copy(order, wr.providers)
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var errs []error
	for _, p := range order {
		wr.logger.Info("polling address provider", slog.String("url", p.URL))
		addr, err := wr.lookup(ctx, p)
		wr.metrics.observeAttempt(p.URL, attemptResult(err))
		if err != nil {
			wr.logger.Warn("address provider failed", slog.String("url", p.URL), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", p.URL, err))
			continue
		}
		return addr, nil
	}
	return "", fmt.Errorf("%w: %w", ErrNoUsableProvider, errors.Join(errs...))
}

func (wr *webResolver) lookup(ctx context.Context, p AddressProvider) (string, error) {
	timeout := wr.timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	httpclient := wr.httpClient
	if httpclient == nil {
		httpclient = http.DefaultClient
	}

	resp, err := httpclient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("http request returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}
	if !p.Validate(body) {
		return "", errBadResponse
	}
	addr := strings.TrimSpace(p.Extract(body))
	if !IsDottedQuad(addr) {
		return "", fmt.Errorf("%w: %q", errNotDottedQuad, addr)
	}
	return addr, nil
}

func attemptResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errBadResponse):
		return "bad_response"
	case errors.Is(err, errNotDottedQuad):
		return "not_dotted_quad"
	default:
		return "transport_error"
	}
}
