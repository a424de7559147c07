// Package storage keeps product image binaries in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore is the binary side of image management. Metadata lives in the
// product_images table.
type ObjectStore interface {
	// Put uploads an object and returns its public URL.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	// KeyFromURL recovers the object key from a public URL produced by Put.
	KeyFromURL(url string) (string, bool)
}

// ObjectKey builds "{productId}/{unixMillis}_{filename}". Directory parts of
// filename are dropped.
func ObjectKey(productID uuid.UUID, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return fmt.Sprintf("%s/%d_%s", productID, now.UnixMilli(), name)
}

// publicURL joins base and key with exactly one slash.
func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func keyFromURL(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if base == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
