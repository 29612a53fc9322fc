package nanoqc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// IsGoogleStoragePath reports whether path points into a Google Storage
// bucket.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// AnyGoogleStoragePath reports whether any of paths needs a storage client.
func AnyGoogleStoragePath(paths ...string) bool {
	for _, p := range paths {
		if IsGoogleStoragePath(p) {
			return true
		}
	}

	return false
}

// SplitGoogleStoragePath returns the bucket and object name of a gs:// path.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// MaybeOpenFromGoogleStorage opens path from Google Storage if it has a gs://
// prefix, and from the local filesystem otherwise. Local paths starting with ~/
// are expanded. The caller must Close the result.
func MaybeOpenFromGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: a google storage client is required to read gs:// paths", path)
		}

		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		// Open the bucket with default credentials
		handle := client.Bucket(bucketName).Object(pathName)

		rdr, err := handle.NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return rdr, nil
	}

	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	return os.Open(path)
}

// OpenMaybeCompressed opens path like MaybeOpenFromGoogleStorage and
// transparently decompresses it if it carries a known compression signature.
func OpenMaybeCompressed(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	f, err := MaybeOpenFromGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, err
	}

	rc, err := MaybeDecompressReadCloser(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return rc, nil
}
