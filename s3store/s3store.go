/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3store keeps small objects in an Amazon S3 bucket. It backs both
 * the upstream response cache (HTTPCache) and the S3 preferences store.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ErrNotFound is returned by Get when the object does not exist.
var ErrNotFound = errors.New("s3store: object not found")

// API is the subset of the S3 client used by Bucket.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Bucket reads and writes objects in a single S3 bucket.
type Bucket struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is initialized in Init() from the default Config, but callers
	// can override it (tests use an in-memory API).
	Client API

	name string

	// gzip indicates whether objects are gzipped in Put and gunzipped in
	// Get. Object keys get a ".gz" suffix when set.
	gzip bool
}

// New returns a Bucket for the named S3 bucket. Callers should invoke Init()
// before use unless they supply their own Client.
func New(name string, gzipIn bool) *Bucket {
	return &Bucket{
		name: name,
		gzip: gzipIn,
	}
}

func (b *Bucket) Name() string {
	return b.name
}

// Init loads the default AWS configuration sources:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
// and verifies the bucket is reachable.
func (b *Bucket) Init(ctx context.Context) error {
	var err error
	b.Config, err = config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(b.Config)

	// Permission check: verify bucket exists and is accessible
	if _, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.name),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w", b.name, err)
	}

	// Permission check: verify ability to list objects (read/list permissions)
	if _, err = client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(b.name),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w", b.name, err)
	}

	b.Client = client
	return nil
}

func (b *Bucket) objectKey(key string) string {
	if b.gzip {
		return key + ".gz"
	}
	return key
}

// Get returns the object stored under key, or ErrNotFound.
func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.objectKey(key)),
	}

	resp, err := b.Client.GetObject(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3store.get: failed to get object %v/%v: %w",
			b.name, *input.Key, err)
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if b.gzip {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("s3store.get: failed to open compressed object %v/%v: %w",
				b.name, *input.Key, err)
		}
		defer zr.Close()
		rdr = zr
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("s3store.get: failed to read object %v/%v: %w",
			b.name, *input.Key, err)
	}

	return data, nil
}

// Put stores data under key, replacing any previous object.
func (b *Bucket) Put(ctx context.Context, key string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.objectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if b.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("s3store.put: failed to gzip data for %v/%v: %w",
				b.name, *input.Key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("s3store.put: failed to close gzip writer for %v/%v: %w",
				b.name, *input.Key, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := b.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3store.put: put failed for %v/%v: %w", b.name,
			*input.Key, err)
	}

	return nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.objectKey(key)),
	}

	if _, err := b.Client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("s3store.delete: delete failed for %v/%v: %w", b.name,
			*input.Key, err)
	}

	return nil
}
