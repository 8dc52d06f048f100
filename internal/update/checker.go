package update

import (
	"net/http"
	"regexp"
	"time"

	"github.com/adamancini/foxport/internal/types"
)

// releasePathPattern extracts the release number from a Mozilla CDN URL such
// as .../pub/firefox/releases/120.0.1/win64/en-US/Firefox%20Setup%20120.0.1.exe.
var releasePathPattern = regexp.MustCompile(`/releases/(\d+\.\d+[0-9A-Za-z.]*)/`)

// Checker resolves the latest available version per channel by following the
// download.mozilla.org bouncer redirect and reading the release number out
// of the final URL.
type Checker struct {
	urls   map[types.Channel]string
	client *http.Client
}

// NewChecker creates a checker for the given per-channel bouncer URLs.
func NewChecker(urls map[types.Channel]string) *Checker {
	return &Checker{
		urls: urls,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WithClient sets a custom HTTP client (for testing or custom timeouts).
func (c *Checker) WithClient(client *http.Client) *Checker {
	if client != nil {
		c.client = client
	}
	return c
}

// Resolve follows the channel's bouncer redirect and returns the release
// version plus the final installer URL. ok is false when the remote cannot
// be reached or the redirect target carries no release number; callers treat
// that as an absence signal, never as an error.
func (c *Checker) Resolve(ch types.Channel) (version, finalURL string, ok bool) {
	url := c.urls[ch]
	if url == "" {
		return "", "", false
	}

	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return "", "", false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", false
	}

	final := resp.Request.URL.String()
	m := releasePathPattern.FindStringSubmatch(final)
	if m == nil {
		// Nightly builds resolve to date-stamped paths without a release
		// number; there is nothing to compare against.
		return "", "", false
	}

	return m[1], final, true
}

// RemoteVersion returns the latest version for the channel, or ok=false as
// an explicit absence signal.
func (c *Checker) RemoteVersion(ch types.Channel) (version string, ok bool) {
	version, _, ok = c.Resolve(ch)
	return version, ok
}
