// Package cos stores post images in Tencent Cloud Object Storage and maps
// between object keys and the public URLs kept in the posts table.
package cos

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"

	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/logger"
)

type Storage struct {
	client        *cos.Client
	bucketURL     *url.URL
	publicBaseURL *url.URL
}

func New(cfg *config.Cos) (*Storage, error) {
	if cfg.SecretID == "" || cfg.SecretKey == "" || cfg.BucketName == "" || cfg.AppID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("incomplete cos config: SecretID, SecretKey, BucketName, AppID and Region are required")
	}

	bucketURL, err := url.Parse(fmt.Sprintf("https://%s-%s.cos.%s.myqcloud.com", cfg.BucketName, cfg.AppID, cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bucket url: %w", err)
	}

	// Objects are served from the bucket host unless a CDN or custom
	// domain is configured.
	publicBaseURL := bucketURL
	if cfg.BaseURL != "" {
		publicBaseURL, err = url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cos base url %q: %w", cfg.BaseURL, err)
		}
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		},
	})

	logger.Log.Info("cos storage initialized", "bucket", cfg.BucketName, "region", cfg.Region, "public_base_url", publicBaseURL.String())

	return &Storage{
		client:        client,
		bucketURL:     bucketURL,
		publicBaseURL: publicBaseURL,
	}, nil
}

// Upload writes the object and returns its public URL.
func (s *Storage) Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	opts := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	}

	resp, err := s.client.Object.Put(ctx, objectKey, reader, opts)
	if err != nil {
		return "", fmt.Errorf("failed to upload object %q: %w", objectKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to upload object %q: status %d: %s", objectKey, resp.StatusCode, body)
	}

	return s.publicObjectURL(objectKey), nil
}

// DeleteByURL removes the object a public URL points at. An empty URL is a
// no-op; a URL outside our bucket is rejected.
func (s *Storage) DeleteByURL(ctx context.Context, publicURL string) error {
	if publicURL == "" {
		return nil
	}

	objectKey, err := s.ObjectKeyFromURL(publicURL)
	if err != nil {
		return err
	}

	resp, err := s.client.Object.Delete(ctx, objectKey)
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", objectKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to delete object %q: status %d: %s", objectKey, resp.StatusCode, body)
	}
	return nil
}

// ObjectKeyFromURL recovers the object key from a public URL produced by
// Upload.
func (s *Storage) ObjectKeyFromURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse object url %q: %w", publicURL, err)
	}
	if u.Host != s.publicBaseURL.Host {
		return "", fmt.Errorf("url %q does not belong to this bucket", publicURL)
	}

	key := strings.TrimPrefix(u.Path, s.publicBaseURL.Path)
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", fmt.Errorf("url %q has no object key", publicURL)
	}

	unescaped, err := url.PathUnescape(key)
	if err != nil {
		return "", fmt.Errorf("failed to unescape object key %q: %w", key, err)
	}
	return unescaped, nil
}

func (s *Storage) publicObjectURL(objectKey string) string {
	basePath := s.publicBaseURL.Path
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}

	objectURL := *s.publicBaseURL
	objectURL.Path = basePath + strings.TrimPrefix(objectKey, "/")
	return objectURL.String()
}
