package yahoo

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/investo/date"
	"github.com/sirupsen/logrus"
)

// diskCache implements a simple disk cache for HTTP responses.
//
// Entries are keyed by day, so that the cache expires every day.
type diskCache struct {
	base http.RoundTripper
	dir  string
	log  *logrus.Entry
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first, then performs the request and caches successful
// responses.
func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("yahoo-%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		c.log.WithField("url", req.URL.Path).Debug("cache hit")
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{"method": req.Method, "host": req.URL.Host, "path": req.URL.Path, "status": resp.Status}).Debug("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.log.WithError(err).Warn("cache write error (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response to disk. The response body remains readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// newCachingClient returns an http.Client that caches responses in dir for
// the day. An empty dir disables the cache.
func newCachingClient(dir string, log *logrus.Entry) *http.Client {
	client := new(http.Client)
	if dir == "" {
		return client
	}
	client.Transport = &diskCache{base: http.DefaultTransport, dir: dir, log: log}
	return client
}
