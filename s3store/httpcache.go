/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
)

const cachePathPrefix = "webcache"

// HTTPCache implements httpcache.Cache on top of a Bucket. Upstream tournament
// responses are stored under an md5 of the request cache key.
type HTTPCache struct {
	bucket    *Bucket
	logErrors bool

	// httpcache.Cache has no context parameter
	ctx context.Context
}

func NewHTTPCache(ctx context.Context, bucket *Bucket, logErrors bool) *HTTPCache {
	return &HTTPCache{
		bucket:    bucket,
		logErrors: logErrors,
		ctx:       ctx,
	}
}

func (c *HTTPCache) Get(key string) ([]byte, bool) {
	data, err := c.bucket.Get(c.ctx, c.objectKey(key))
	if err != nil {
		// not found just indicates a cache miss
		if c.logErrors && !errors.Is(err, ErrNotFound) {
			log.Printf("s3store.cache: %v", err)
		}
		return []byte{}, false
	}

	return data, true
}

func (c *HTTPCache) Set(key string, data []byte) {
	if err := c.bucket.Put(c.ctx, c.objectKey(key), data); err != nil && c.logErrors {
		log.Printf("s3store.cache: %v", err)
	}
}

func (c *HTTPCache) Delete(key string) {
	if err := c.bucket.Delete(c.ctx, c.objectKey(key)); err != nil && c.logErrors {
		log.Printf("s3store.cache: %v", err)
	}
}

func (c *HTTPCache) objectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return fmt.Sprintf("%v/%v", cachePathPrefix, hex.EncodeToString(h.Sum(nil)))
}
