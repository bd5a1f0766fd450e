package prscalc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// OpenRaw opens a local path, an http(s) URL, or a gs:// object and returns
// its bytes exactly as stored. A non-nil client is required for gs:// paths.
func OpenRaw(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(path, "gs://"):
		if client == nil {
			return nil, pfx.Err(fmt.Errorf("%s: a storage client is required for gs:// paths", path))
		}

		// Detect the bucket and the path to the actual file
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, pfx.Err(fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts))
		}

		rdr, err := client.Bucket(pathParts[0]).Object(pathParts[1]).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}
		return rdr, nil

	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, pfx.Err(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, pfx.Err(err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, pfx.Err(fmt.Errorf("%s: unexpected status %s", path, resp.Status))
		}
		return resp.Body, nil
	}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

// Open is OpenRaw followed by transparent decompression.
func Open(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	rc, err := OpenRaw(ctx, path, client)
	if err != nil {
		return nil, err
	}

	out, err := MaybeDecompress(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}

	return out, nil
}

// ReadAll opens path, optionally decompressing it, and returns its full
// contents.
func ReadAll(ctx context.Context, path string, client *storage.Client, decompress bool) ([]byte, error) {
	open := OpenRaw
	if decompress {
		open = Open
	}

	rc, err := open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return b, nil
}

// ExpandHome expands ~ to its proper path, where appropriate. If the current
// user cannot be determined, the path is returned unchanged.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return path
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path
}

// NeedsStorageClient reports whether any of the paths refer to Google Storage.
func NeedsStorageClient(paths ...string) bool {
	for _, p := range paths {
		if strings.HasPrefix(p, "gs://") {
			return true
		}
	}

	return false
}
