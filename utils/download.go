package utils

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// DownloadFile downloads uri into a temporary file which keeps the
// extension of the URL path, so that the format can be detected from its
// name. The caller removes the file.
func DownloadFile(ctx context.Context, uri string) (*os.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to download %s", uri)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unable to download %s: status %s", uri, res.Status)
	}

	ext := ""
	if u, err := url.Parse(uri); err == nil {
		ext = strings.ToLower(path.Ext(u.Path))
		if ext == ".zst" {
			ext = strings.ToLower(path.Ext(strings.TrimSuffix(u.Path, path.Ext(u.Path)))) + ext
		}
	}
	tmpfile, err := os.CreateTemp("", "tambour-*"+ext)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create temporary file")
	}
	if _, err := io.Copy(tmpfile, res.Body); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return nil, errors.Wrap(err, "unable to copy the response body")
	}
	if _, err := tmpfile.Seek(0, io.SeekStart); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return nil, err
	}
	return tmpfile, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
