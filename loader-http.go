package usghole

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPLoader reads blacklist entries from a server via HTTP(S).
type HTTPLoader struct {
	url string
	opt HTTPLoaderOptions
}

var _ Loader = &HTTPLoader{}

// HTTPLoaderOptions holds options for HTTP blacklist loaders.
type HTTPLoaderOptions struct {
	// Maximum time for the complete retrieval of one list. Defaults
	// to httpTimeout if 0.
	Timeout time.Duration
}

const httpTimeout = 5 * time.Minute

func NewHTTPLoader(url string, opt HTTPLoaderOptions) *HTTPLoader {
	if opt.Timeout == 0 {
		opt.Timeout = httpTimeout
	}
	return &HTTPLoader{url, opt}
}

func (l *HTTPLoader) Load() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.opt.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", l.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("got unexpected status code %d from %s", resp.StatusCode, l.url)
	}

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func (l *HTTPLoader) String() string {
	return l.url
}
