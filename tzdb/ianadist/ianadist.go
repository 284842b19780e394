// Package ianadist fetches and unpacks releases of the IANA time zone
// database.
//
// Releases come from the [IANA data server]. Callers should keep the ETag
// returned by [Client.Latest] and pass it back on the next call so that an
// unchanged release is not transferred again.
//
// [IANA data server]: https://www.iana.org/time-zones
package ianadist

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// TZDataFiles maps data file names, such as "europe", to their contents.
// Every value starts with the line prefix "# tzdb data for".
type TZDataFiles map[string][]byte

// Release is an unpacked tzdata archive.
type Release struct {
	// Version is the release name, such as "2024b".
	Version string
	// DataFiles holds the zone source files of the release.
	DataFiles TZDataFiles
	// LeapSecondsFile is the content of the leapseconds file, if any.
	LeapSecondsFile []byte
}

// DefaultClient is used by the package-level Latest and Download.
var DefaultClient = &Client{}

// Client downloads releases. The zero value uses http.DefaultClient.
type Client struct {
	// HTTPClient replaces http.DefaultClient, for example to set timeouts
	// or to serve canned responses in tests.
	HTTPClient *http.Client
	// Logger receives one debug record per request. Nil means slog.Default().
	Logger *slog.Logger
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

const (
	baseURL             = "https://data.iana.org/time-zones/"
	latestDataPath      = "tzdata-latest.tar.gz"
	dataFileMagicHeader = "# tzdb data for"
	leapSecondsFilename = "leapseconds"
	versionFilename     = "version"
	emptyEtag           = ""
)

// ReadArchive unpacks a gzip-compressed tar archive in the layout of
// https://data.iana.org/time-zones/releases/. Files that do not start with
// the data file header are skipped.
func ReadArchive(r io.Reader) (*Release, error) {
	gunzip, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read gzip: %w", err)
	}
	tr := tar.NewReader(gunzip)

	result := Release{DataFiles: make(TZDataFiles)}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		switch header.Name {
		case leapSecondsFilename:
			if result.LeapSecondsFile, err = io.ReadAll(tr); err != nil {
				return nil, fmt.Errorf("read leap seconds file: %w", err)
			}
			continue
		case versionFilename:
			b, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("read version file: %w", err)
			}
			if result.Version = string(bytes.TrimSpace(b)); result.Version == "" {
				return nil, fmt.Errorf("empty version file")
			}
			continue
		}

		if header.Size < int64(len(dataFileMagicHeader)) {
			continue
		}
		data := make([]byte, header.Size)
		if _, err := io.ReadFull(tr, data[:len(dataFileMagicHeader)]); err != nil {
			return nil, fmt.Errorf("read magic string %q: %w", header.Name, err)
		}
		if string(data[:len(dataFileMagicHeader)]) != dataFileMagicHeader {
			continue
		}
		if _, err := io.ReadFull(tr, data[len(dataFileMagicHeader):]); err != nil {
			return nil, fmt.Errorf("read rest of file %q: %w", header.Name, err)
		}
		result.DataFiles[header.Name] = data
	}

	if len(result.DataFiles) == 0 {
		return nil, fmt.Errorf("no data files found")
	}
	if result.Version == "" {
		return nil, fmt.Errorf("no version found")
	}
	return &result, nil
}

// Latest calls DefaultClient.Latest.
func Latest(ctx context.Context, etag string) (*Release, string, error) {
	return DefaultClient.Latest(ctx, etag)
}

// Latest downloads and unpacks the latest release.
//
// If the server answers 304 Not Modified for etag, Latest returns a nil
// Release, the same etag and a nil error. On error the returned ETag is
// empty.
func (c *Client) Latest(ctx context.Context, etag string) (*Release, string, error) {
	body, newEtag, err := c.Download(ctx, latestDataPath, etag)
	if err != nil {
		return nil, emptyEtag, err
	}
	if body == nil {
		return nil, etag, nil
	}
	defer func() {
		// Drain so that the connection can be reused.
		_, _ = io.Copy(io.Discard, body)
		_ = body.Close()
	}()

	release, err := ReadArchive(body)
	if err != nil {
		return nil, emptyEtag, err
	}
	return release, newEtag, nil
}

// Download calls DefaultClient.Download.
func Download(ctx context.Context, path, etag string) (io.ReadCloser, string, error) {
	return DefaultClient.Download(ctx, path, etag)
}

// Download fetches path relative to the IANA time zone directory.
//
// A non-nil body must be drained and closed by the caller. If the server
// answers 304 Not Modified for etag, the body is nil and the same etag is
// returned. Other non-200 statuses are errors.
func (c *Client) Download(ctx context.Context, path, etag string) (io.ReadCloser, string, error) {
	u, err := url.JoinPath(baseURL, path)
	if err != nil {
		return nil, emptyEtag, fmt.Errorf("join URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, emptyEtag, fmt.Errorf("create request for %q: %w", u, err)
	}
	if etag != emptyEtag {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, emptyEtag, fmt.Errorf("GET %q: %w", u, err)
	}
	c.logger().Debug("tzdata download", "url", u, "status", resp.StatusCode, "etag", resp.Header.Get("etag"))
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusNotModified {
			return nil, etag, nil
		}
		return nil, emptyEtag, fmt.Errorf("response for %q: unexpected status: %s", u, resp.Status)
	}
	return resp.Body, resp.Header.Get("etag"), nil
}
