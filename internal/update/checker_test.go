package update

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adamancini/foxport/internal/types"
)

// newBouncer simulates the download.mozilla.org bouncer: a request to /
// redirects to a CDN-style release path.
func newBouncer(t *testing.T, releasePath string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/bounce", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, releasePath, http.StatusFound)
	})
	mux.HandleFunc("/pub/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestResolve(t *testing.T) {
	srv := newBouncer(t, "/pub/firefox/releases/120.0.1/win64/en-US/Firefox%20Setup%20120.0.1.exe")

	checker := NewChecker(map[types.Channel]string{
		types.ChannelStable: srv.URL + "/bounce",
	}).WithClient(srv.Client())

	version, finalURL, ok := checker.Resolve(types.ChannelStable)
	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if version != "120.0.1" {
		t.Errorf("Resolve() version = %q, want 120.0.1", version)
	}
	if finalURL == "" {
		t.Error("Resolve() finalURL is empty")
	}
}

func TestRemoteVersionBeta(t *testing.T) {
	srv := newBouncer(t, "/pub/firefox/releases/128.0b9/win64/en-US/Firefox%20Setup%20128.0b9.exe")

	checker := NewChecker(map[types.Channel]string{
		types.ChannelBeta: srv.URL + "/bounce",
	}).WithClient(srv.Client())

	version, ok := checker.RemoteVersion(types.ChannelBeta)
	if !ok {
		t.Fatal("RemoteVersion() ok = false, want true")
	}
	if version != "128.0b9" {
		t.Errorf("RemoteVersion() = %q, want 128.0b9", version)
	}
}

func TestRemoteVersionNoReleaseInPath(t *testing.T) {
	// Nightly-style redirect without a /releases/<version>/ component.
	srv := newBouncer(t, "/pub/firefox/nightly/latest-mozilla-central/firefox-143.0a1.en-US.win64.installer.exe")

	checker := NewChecker(map[types.Channel]string{
		types.ChannelNightly: srv.URL + "/bounce",
	}).WithClient(srv.Client())

	if _, ok := checker.RemoteVersion(types.ChannelNightly); ok {
		t.Error("RemoteVersion() ok = true for path without release number")
	}
}

func TestRemoteVersionServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	checker := NewChecker(map[types.Channel]string{
		types.ChannelStable: url + "/bounce",
	})

	if _, ok := checker.RemoteVersion(types.ChannelStable); ok {
		t.Error("RemoteVersion() ok = true for unreachable server")
	}
}

func TestRemoteVersionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	checker := NewChecker(map[types.Channel]string{
		types.ChannelStable: srv.URL,
	}).WithClient(srv.Client())

	if _, ok := checker.RemoteVersion(types.ChannelStable); ok {
		t.Error("RemoteVersion() ok = true for 503 response")
	}
}

func TestRemoteVersionUnconfiguredChannel(t *testing.T) {
	checker := NewChecker(map[types.Channel]string{})

	if _, ok := checker.RemoteVersion(types.ChannelStable); ok {
		t.Error("RemoteVersion() ok = true for channel without URL")
	}
}
