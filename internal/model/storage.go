package model

import "context"

// MediaHost stores images and serves them from a public URL.
type MediaHost interface {
	// Upload stores the image payload and returns its canonical public URL.
	Upload(ctx context.Context, payload string) (string, error)
	// Destroy removes the image identified by its public id
	// (the URL file name without extension).
	Destroy(ctx context.Context, publicID string) error
	// Owns reports whether url points at an object served by this host.
	Owns(url string) bool
}
