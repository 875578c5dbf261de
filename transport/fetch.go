// Package transport speaks the client half of the Git smart HTTP
// protocol: the ref advertisement GET and the upload-pack POST, both
// fixed-shape, no capability negotiation, no authentication.
package transport

import (
	"bytes"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ErrHTTP is returned when a request completes but the server responds
// with a non-2xx status.
var ErrHTTP = errors.New("transport: unexpected HTTP status")

const userAgent = "gitlit/1.0"

// A Fetcher retrieves the two responses a clone needs from a remote
// repository URL: the ref advertisement and the packed response to a
// want-request.
type Fetcher interface {
	Refs(url string) ([]byte, error)
	UploadPack(url string, body []byte) ([]byte, error)
}

// HTTPFetcher is the Fetcher backed by net/http. Its zero value is
// ready to use; Client defaults to http.DefaultClient's settings
// (including redirect-following) if left nil.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

// Refs requests the git-upload-pack ref advertisement for the
// repository at url.
func (f *HTTPFetcher) Refs(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url+".git/info/refs?service=git-upload-pack", nil)
	if err != nil {
		return nil, errors.Wrap(err, "transport: build refs request")
	}
	req.Header.Set("User-Agent", userAgent)
	return f.do(req)
}

// UploadPack posts a want-request body to the repository at url and
// returns the raw, still side-band-framed response.
func (f *HTTPFetcher) UploadPack(url string, body []byte) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, url+".git/git-upload-pack", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "transport: build upload-pack request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-git-upload-pack-request")
	return f.do(req)
}

func (f *HTTPFetcher) do(req *http.Request) ([]byte, error) {
	resp, err := f.client().Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: %s %s", req.Method, req.URL)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Wrapf(ErrHTTP, "%s %s: status %d", req.Method, req.URL, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: read body of %s", req.URL)
	}
	return data, nil
}
