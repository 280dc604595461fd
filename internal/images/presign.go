// Package images issues presigned URLs for listing photos on an
// S3-compatible object store. Clients upload directly; the reconciliation
// layer only ever stores the resulting object keys.
package images

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignValidity = 15 * time.Minute

// Options holds the object-storage settings.
type Options struct {
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// Presigner issues presigned PUT and GET URLs for listing photos.
type Presigner struct {
	opts Options
}

// NewPresigner constructs a Presigner with the given storage settings.
func NewPresigner(opts Options) *Presigner {
	return &Presigner{opts: opts}
}

// storageKey produces a date-partitioned object key for a new photo.
func storageKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("listings/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (p *Presigner) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(p.opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.opts.AccessKey, p.opts.SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if p.opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(p.opts.BaseEndpoint)
		}
	})

	return s3.NewPresignClient(client), nil
}

// PutURL returns a fresh object key and a presigned PUT URL for uploading
// one photo.
func (p *Presigner) PutURL(ctx context.Context) (string, string, error) {
	presignClient, err := p.presignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := p.opts.Bucket
	key := storageKey()

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetURL returns a presigned GET URL for an already-stored photo key.
func (p *Presigner) GetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := p.presignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := p.opts.Bucket

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
