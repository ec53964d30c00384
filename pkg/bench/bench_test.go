package bench

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHelloServer(delay time.Duration) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.Write([]byte("hello"))
	}))
}

func TestRun(t *testing.T) {

	srv := newHelloServer(20 * time.Millisecond)
	defer srv.Close()

	opts := NewOptions()
	opts.URL = srv.URL
	opts.Requests = 5

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Succeeded())
	assert.GreaterOrEqual(t, report.MaxLatency(), 20*time.Millisecond)
	for i, r := range report.Results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, "hello", r.Body)
		assert.Empty(t, r.Error)
	}

	data, err := report.JSON()
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Results, 5)
}

func TestRunPaced(t *testing.T) {

	srv := newHelloServer(0)
	defer srv.Close()

	opts := NewOptions()
	opts.URL = srv.URL
	opts.Requests = 3
	opts.Rate = 20

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	// 20 per second leaves 50ms between starts
	assert.GreaterOrEqual(t, report.Results[2].Start, 90*time.Millisecond)
	assert.Equal(t, 3, report.Succeeded())
}

func TestRunRecordsFailures(t *testing.T) {

	srv := newHelloServer(500 * time.Millisecond)
	defer srv.Close()

	opts := NewOptions()
	opts.URL = srv.URL
	opts.Requests = 2
	opts.Timeout = 50 * time.Millisecond

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Succeeded())
	for _, r := range report.Results {
		assert.NotEmpty(t, r.Error)
	}
}

func TestRunInvalidOptions(t *testing.T) {

	_, err := Run(context.Background(), &Options{Requests: 1})
	assert.ErrorIs(t, err, ErrMissingURL)

	_, err = Run(context.Background(), &Options{URL: "http://127.0.0.1:8000/"})
	assert.ErrorIs(t, err, ErrInvalidRequests)
}
