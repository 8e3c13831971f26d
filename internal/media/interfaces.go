// Package media stores uploaded image files in an external media host and
// hands back durable URLs. Two backends are provided: an S3-compatible
// object store and a hosted HTTP upload gateway.
package media

//go:generate mockgen -source=interfaces.go -destination=../mock/uploader_mock.go -package=mock

import "context"

// Uploader is the contract between the session manager and the media host:
// accept a local file reference, return a durable URL or fail.
type Uploader interface {
	// Upload stores the file at localPath and returns the URL under which
	// the stored object is served.
	Upload(ctx context.Context, localPath string) (string, error)
}
