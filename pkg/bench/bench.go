package bench

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

var (
	ErrMissingURL      = errors.New("bench: target URL is required")
	ErrInvalidRequests = errors.New("bench: request count must be positive")
)

type Options struct {
	URL      string
	Requests int
	// Rate is the number of requests started per second. Zero starts all at once.
	Rate    int
	Timeout time.Duration
}

func NewOptions() *Options {
	return &Options{
		URL:      "http://127.0.0.1:8000/",
		Requests: 10,
		Rate:     0,
		Timeout:  30 * time.Second,
	}
}

func Run(ctx context.Context, opts *Options) (*Report, error) {

	if len(opts.URL) == 0 {
		return nil, ErrMissingURL
	}

	if opts.Requests <= 0 {
		return nil, ErrInvalidRequests
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: opts.Requests,
		},
	}
	defer client.CloseIdleConnections()

	var limiter ratelimit.Limiter
	if opts.Rate > 0 {
		limiter = ratelimit.New(opts.Rate, ratelimit.WithoutSlack)
	}

	log.WithFields(log.Fields{
		"url":      opts.URL,
		"requests": opts.Requests,
		"rate":     opts.Rate,
	}).Info("Starting benchmark")

	report := &Report{
		URL:      opts.URL,
		Requests: opts.Requests,
		Results:  make([]Result, opts.Requests),
	}

	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < opts.Requests; i++ {

		if limiter != nil {
			limiter.Take()
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			report.Results[i] = send(ctx, client, opts.URL, i, start)
		}(i)
	}

	wg.Wait()

	report.Elapsed = time.Since(start)

	return report, nil
}

func send(ctx context.Context, client *http.Client, url string, index int, origin time.Time) (result Result) {

	result.Index = index
	result.Start = time.Since(origin)

	defer func() {
		result.Latency = time.Since(origin) - result.Start
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = err.Error()
	}

	result.Status = resp.StatusCode
	result.Body = string(body)

	return result
}
