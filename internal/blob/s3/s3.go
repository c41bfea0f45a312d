// Package s3 implements the blob.Storage contract on top of an S3 bucket.
// Objects are written with public-read visibility; the archive serves images
// directly by URL.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Oxyrus/keepsake/internal/blob"
)

// Client is an S3-backed blob store for a single bucket.
type Client struct {
	api     *s3.Client
	bucket  string
	baseURL string
}

// New loads the ambient AWS configuration and returns a client bound to the
// given bucket and region.
func New(ctx context.Context, bucket, region string) (*Client, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3: bucket must not be empty")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	return &Client{
		api:     s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", bucket, region),
	}, nil
}

// Store uploads data under key with public-read visibility and returns the
// durable object URL.
func (c *Client) Store(ctx context.Context, data []byte, contentType, key string) (string, error) {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3: put object %q: %w", key, err)
	}

	return c.baseURL + key, nil
}

// Delete removes the object the URL points at. Deleting a key that does not
// exist succeeds; S3 treats the operation as a no-op and so do we.
func (c *Client) Delete(ctx context.Context, url string) error {
	key, err := c.keyFromURL(url)
	if err != nil {
		return err
	}

	_, err = c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3: delete object %q: %w", key, err)
	}

	return nil
}

// Exists reports whether an object is stored under key.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("s3: head object %q: %w", key, err)
	}

	return true, nil
}

func (c *Client) keyFromURL(url string) (string, error) {
	key, ok := strings.CutPrefix(url, c.baseURL)
	if !ok || key == "" {
		return "", fmt.Errorf("s3: url %q is not in bucket %s", url, c.bucket)
	}
	return key, nil
}

var _ blob.Storage = (*Client)(nil)
