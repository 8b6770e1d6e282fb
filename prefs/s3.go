/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/Al-Wasmo/sec-chessbreak-board/s3store"
)

const s3PathPrefix = "prefs"

// S3 stores each preference as a tiny object holding the decimal value.
type S3 struct {
	bucket *s3store.Bucket
}

func NewS3(bucket *s3store.Bucket) *S3 {
	return &S3{bucket: bucket}
}

func (s *S3) objectKey(key string) string {
	return s3PathPrefix + "/" + key
}

func (s *S3) Get(ctx context.Context, key string, def int) int {
	data, err := s.bucket.Get(ctx, s.objectKey(key))
	if errors.Is(err, s3store.ErrNotFound) {
		return def
	} else if err != nil {
		log.Printf("prefs.s3: failed to get %v: %v", key, err)
		return def
	}

	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		log.Printf("prefs.s3: ignoring malformed %v=%q", key, data)
		return def
	}
	return v
}

func (s *S3) Set(ctx context.Context, key string, value int) error {
	if err := s.bucket.Put(ctx, s.objectKey(key), []byte(strconv.Itoa(value))); err != nil {
		return fmt.Errorf("prefs.s3: unable to set %v: %w", key, err)
	}
	return nil
}
