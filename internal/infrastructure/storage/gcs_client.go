package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"immomarket/pkg/errors"
	"immomarket/pkg/logger"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// UploadImage stores a listing image under properties/ and returns its public
// URL. Object names combine a millisecond timestamp with a random suffix so
// concurrent uploads from the same client never collide.
func (c *CloudStorageClient) UploadImage(ctx context.Context, file io.Reader, contentType string) (string, error) {
	objectName := fmt.Sprintf("properties/%d_%d%s",
		time.Now().UnixMilli(), rand.Intn(1000000), extensionFor(contentType))

	obj := c.client.Bucket(c.bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		return "", errors.Internal("Failed to upload image", err)
	}

	if err := wc.Close(); err != nil {
		return "", errors.Internal("Failed to upload image", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", errors.Internal("Failed to publish image", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName), nil
}

// DeleteImage removes a previously uploaded image. Deletes are best effort:
// a missing or foreign object is logged and ignored so listing cleanup never
// blocks on storage.
func (c *CloudStorageClient) DeleteImage(ctx context.Context, imageURL string) {
	objectName, ok := c.objectNameFromURL(imageURL)
	if !ok {
		logger.Warn("Skipping delete of unrecognized image URL: %s", imageURL)
		return
	}

	if err := c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx); err != nil {
		logger.Warn("Failed to delete image %s: %v", objectName, err)
	}
}

func (c *CloudStorageClient) DeleteImages(ctx context.Context, imageURLs []string) {
	for _, url := range imageURLs {
		c.DeleteImage(ctx, url)
	}
}

func (c *CloudStorageClient) objectNameFromURL(imageURL string) (string, bool) {
	const prefix = "https://storage.googleapis.com/"
	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}

	path := imageURL[len(prefix):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] != c.bucketName {
		return "", false
	}

	return parts[1], true
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
