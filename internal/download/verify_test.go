package download

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

func TestSumsLocation(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantSums  string
		wantEntry string
		wantOK    bool
	}{
		{
			name:      "stable installer",
			url:       "https://download-installer.cdn.mozilla.net/pub/firefox/releases/120.0.1/win64/en-US/Firefox%20Setup%20120.0.1.exe",
			wantSums:  "https://download-installer.cdn.mozilla.net/pub/firefox/releases/120.0.1/SHA512SUMS",
			wantEntry: "win64/en-US/Firefox Setup 120.0.1.exe",
			wantOK:    true,
		},
		{
			name:   "nightly path without releases",
			url:    "https://example.com/pub/firefox/nightly/latest/firefox.exe",
			wantOK: false,
		},
		{
			name:   "release dir itself",
			url:    "https://example.com/pub/firefox/releases/120.0.1",
			wantOK: false,
		},
		{
			name:   "unparsable url",
			url:    "://bad",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sums, sig, entry, ok := SumsLocation(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("SumsLocation() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if sums != tt.wantSums {
				t.Errorf("SumsLocation() sums = %q, want %q", sums, tt.wantSums)
			}
			if sig != tt.wantSums+".asc" {
				t.Errorf("SumsLocation() sig = %q, want %q", sig, tt.wantSums+".asc")
			}
			if entry != tt.wantEntry {
				t.Errorf("SumsLocation() entry = %q, want %q", entry, tt.wantEntry)
			}
		})
	}
}

// writeInstaller writes content to a temp file and returns its path plus the
// manifest line naming it as entryName.
func writeInstaller(t *testing.T, entryName, content string) (path, manifestLine string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), "installer.exe")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write installer: %v", err)
	}

	sum := sha512.Sum512([]byte(content))
	return path, hex.EncodeToString(sum[:]) + "  " + entryName + "\n"
}

func TestVerifyFileDigestOnly(t *testing.T) {
	file, line := writeInstaller(t, "win64/en-US/Firefox Setup 120.0.exe", "payload")
	manifest := "deadbeef  some/other/file.exe\n" + line

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(manifest))
	}))
	t.Cleanup(srv.Close)

	v := NewVerifier().WithClient(srv.Client())
	err := v.VerifyFile(context.Background(), file, "win64/en-US/Firefox Setup 120.0.exe", srv.URL, srv.URL+".asc")
	if err != nil {
		t.Errorf("VerifyFile() error = %v", err)
	}
}

func TestVerifyFileDigestMismatch(t *testing.T) {
	file, _ := writeInstaller(t, "a.exe", "payload")
	manifest := hex.EncodeToString(bytes.Repeat([]byte{0xab}, 64)) + "  a.exe\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(manifest))
	}))
	t.Cleanup(srv.Close)

	v := NewVerifier().WithClient(srv.Client())
	err := v.VerifyFile(context.Background(), file, "a.exe", srv.URL, srv.URL+".asc")
	if !errors.Is(err, ErrDigestMismatch) {
		t.Errorf("VerifyFile() error = %v, want ErrDigestMismatch", err)
	}
}

func TestVerifyFileMissingEntry(t *testing.T) {
	file, _ := writeInstaller(t, "a.exe", "payload")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("deadbeef  unrelated.exe\n"))
	}))
	t.Cleanup(srv.Close)

	v := NewVerifier().WithClient(srv.Client())
	err := v.VerifyFile(context.Background(), file, "a.exe", srv.URL, srv.URL+".asc")
	if !errors.Is(err, ErrNoChecksumEntry) {
		t.Errorf("VerifyFile() error = %v, want ErrNoChecksumEntry", err)
	}
}

// newSigningKey generates a throwaway key and returns the armored public key
// along with a signing function for manifests.
func newSigningKey(t *testing.T) (armoredPub string, sign func([]byte) []byte) {
	t.Helper()

	entity, err := openpgp.NewEntity("Release Engineering", "", "release@example.com", nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	var pub bytes.Buffer
	aw, err := armor.Encode(&pub, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("armor encode: %v", err)
	}
	if err := entity.Serialize(aw); err != nil {
		t.Fatalf("serialize public key: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close armor: %v", err)
	}

	sign = func(data []byte) []byte {
		var sig bytes.Buffer
		if err := openpgp.ArmoredDetachSign(&sig, entity, bytes.NewReader(data), nil); err != nil {
			t.Fatalf("sign manifest: %v", err)
		}
		return sig.Bytes()
	}

	return pub.String(), sign
}

func TestVerifyFileWithSignature(t *testing.T) {
	file, line := writeInstaller(t, "a.exe", "payload")
	manifest := []byte(line)

	armoredPub, sign := newSigningKey(t)
	signature := sign(manifest)

	mux := http.NewServeMux()
	mux.HandleFunc("/SHA512SUMS", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(manifest)
	})
	mux.HandleFunc("/SHA512SUMS.asc", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(signature)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	v, err := NewVerifier().WithClient(srv.Client()).WithArmoredKey(bytes.NewReader([]byte(armoredPub)))
	if err != nil {
		t.Fatalf("WithArmoredKey() error = %v", err)
	}
	if !v.HasKeyring() {
		t.Fatal("HasKeyring() = false after loading key")
	}

	err = v.VerifyFile(context.Background(), file, "a.exe", srv.URL+"/SHA512SUMS", srv.URL+"/SHA512SUMS.asc")
	if err != nil {
		t.Errorf("VerifyFile() error = %v", err)
	}
}

func TestVerifyFileBadSignature(t *testing.T) {
	file, line := writeInstaller(t, "a.exe", "payload")
	manifest := []byte(line)

	armoredPub, sign := newSigningKey(t)
	// Signature over different content must be rejected.
	signature := sign([]byte("tampered manifest\n"))

	mux := http.NewServeMux()
	mux.HandleFunc("/SHA512SUMS", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(manifest)
	})
	mux.HandleFunc("/SHA512SUMS.asc", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(signature)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	v, err := NewVerifier().WithClient(srv.Client()).WithArmoredKey(bytes.NewReader([]byte(armoredPub)))
	if err != nil {
		t.Fatalf("WithArmoredKey() error = %v", err)
	}

	err = v.VerifyFile(context.Background(), file, "a.exe", srv.URL+"/SHA512SUMS", srv.URL+"/SHA512SUMS.asc")
	if err == nil {
		t.Error("VerifyFile() expected error for bad signature")
	}
}
