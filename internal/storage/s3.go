// Package storage wraps the object store used for listing photos.  Images
// are written once (no overwrite) and served through a public CDN base URL
// that supports on-the-fly resizing via query parameters; that server-side
// path is independent of the upload-time optimizer.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStore uploads, exposes and removes listing photos in an S3 bucket.
type ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewImageStore builds an ImageStore from the default AWS credential chain.
// baseURL is the public CDN prefix used to build image URLs (for example a
// CloudFront distribution in front of the bucket).
func NewImageStore(ctx context.Context, bucket, region, baseURL string) (*ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &ImageStore{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes an object and returns its storage path.  IfNoneMatch("*")
// makes the write fail instead of silently replacing an existing object.
func (s *ImageStore) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(path),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
		IfNoneMatch:  aws.String("*"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return path, nil
}

// PublicURL returns the CDN URL for a stored object.
func (s *ImageStore) PublicURL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

// ResizedURL returns the CDN URL with width/height/quality parameters for
// the storage CDN's on-the-fly resizer.  Zero values are omitted.
func (s *ImageStore) ResizedURL(path string, width, height, quality int) string {
	v := url.Values{}
	if width > 0 {
		v.Set("width", fmt.Sprint(width))
	}
	if height > 0 {
		v.Set("height", fmt.Sprint(height))
	}
	if quality > 0 {
		v.Set("quality", fmt.Sprint(quality))
	}
	u := s.PublicURL(path)
	if enc := v.Encode(); enc != "" {
		return u + "?" + enc
	}
	return u
}

// Remove deletes stored objects.  Used when an image is detached from a
// listing and when a listing is hard-deleted; failures are reported but the
// database delete is not rolled back (cleanup is best-effort, not
// transactional).
func (s *ImageStore) Remove(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(p),
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return firstErr
}

// PathFromURL converts a public URL back to its bucket path, stripping the
// base URL and any resize parameters.  Returns empty when the URL does not
// belong to this store.
func (s *ImageStore) PathFromURL(raw string) string {
	if !strings.HasPrefix(raw, s.baseURL+"/") {
		return ""
	}
	p := strings.TrimPrefix(raw, s.baseURL+"/")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}
