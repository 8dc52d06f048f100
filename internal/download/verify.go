package download

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Sentinel errors callers branch on.
var (
	ErrNoChecksumEntry = errors.New("no checksum entry for file")
	ErrDigestMismatch  = errors.New("digest mismatch")
)

// Verifier checks downloaded installers against a release's SHA512SUMS
// manifest and, when a signing key is available, the manifest's detached
// PGP signature.
type Verifier struct {
	client  *http.Client
	keyring openpgp.EntityList
}

// NewVerifier creates a digest-only verifier.
func NewVerifier() *Verifier {
	return &Verifier{client: http.DefaultClient}
}

// WithClient sets a custom HTTP client.
func (v *Verifier) WithClient(client *http.Client) *Verifier {
	if client != nil {
		v.client = client
	}
	return v
}

// WithArmoredKey loads an armored public key; once set, VerifyFile also
// checks the manifest signature.
func (v *Verifier) WithArmoredKey(armored io.Reader) (*Verifier, error) {
	keyring, err := openpgp.ReadArmoredKeyRing(armored)
	if err != nil {
		return nil, fmt.Errorf("read signing key: %w", err)
	}
	v.keyring = keyring
	return v, nil
}

// HasKeyring reports whether signature verification is active.
func (v *Verifier) HasKeyring() bool {
	return len(v.keyring) > 0
}

// SumsLocation derives the SHA512SUMS manifest URL, its signature URL, and
// the manifest entry name for an installer URL within a release directory.
// ok is false for URLs without a /releases/<version>/ component (nightly).
func SumsLocation(installerURL string) (sumsURL, sigURL, entryName string, ok bool) {
	u, err := url.Parse(installerURL)
	if err != nil {
		return "", "", "", false
	}

	const marker = "/releases/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return "", "", "", false
	}
	rest := u.Path[idx+len(marker):]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return "", "", "", false
	}

	releaseRoot := u.Path[:idx+len(marker)+slash]
	entryName = strings.TrimPrefix(rest[slash+1:], "/")
	if entryName == "" {
		return "", "", "", false
	}

	base := *u
	base.RawQuery = ""
	base.Fragment = ""

	base.Path = releaseRoot + "/SHA512SUMS"
	sumsURL = base.String()
	base.Path = releaseRoot + "/SHA512SUMS.asc"
	sigURL = base.String()

	return sumsURL, sigURL, entryName, true
}

// VerifyFile checks file against the manifest at sumsURL. With a keyring
// loaded, the manifest's detached signature at sigURL is verified first; a
// manifest that fails signature verification is never trusted for digests.
func (v *Verifier) VerifyFile(ctx context.Context, file, entryName, sumsURL, sigURL string) error {
	sums, err := v.fetch(ctx, sumsURL)
	if err != nil {
		return fmt.Errorf("fetch checksum manifest: %w", err)
	}

	if v.HasKeyring() {
		sig, err := v.fetch(ctx, sigURL)
		if err != nil {
			return fmt.Errorf("fetch manifest signature: %w", err)
		}
		if err := v.checkSignature(sums, sig); err != nil {
			return err
		}
	}

	want, err := digestFor(sums, entryName)
	if err != nil {
		return err
	}

	got, err := fileDigest(file)
	if err != nil {
		return err
	}

	if !strings.EqualFold(want, got) {
		return fmt.Errorf("%w: %s", ErrDigestMismatch, entryName)
	}

	return nil
}

func (v *Verifier) checkSignature(sums, sig []byte) error {
	_, err := openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(sums), bytes.NewReader(sig), nil)
	if err == nil {
		return nil
	}
	// Some mirrors serve the signature unarmored.
	if _, binErr := openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(sums), bytes.NewReader(sig), nil); binErr == nil {
		return nil
	}
	return fmt.Errorf("manifest signature verification failed: %w", err)
}

func (v *Verifier) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, rawURL)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 16<<20))
}

// digestFor finds the SHA-512 hex digest for entryName in manifest content.
// Lines have the form "<hex>  <path>".
func digestFor(sums []byte, entryName string) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(sums))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.SplitN(strings.TrimSpace(scanner.Text()), " ", 2)
		if len(fields) != 2 {
			continue
		}
		if strings.TrimSpace(fields[1]) == entryName {
			return fields[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	return "", fmt.Errorf("%w: %s", ErrNoChecksumEntry, entryName)
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for digest: %w", err)
	}
	defer f.Close()

	h := sha512.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
