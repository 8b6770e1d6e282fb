/* Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/gregjones/httpcache/test"
)

func newMemoryBucket(gzip bool) *Bucket {
	b := New("unit-test-bucket", gzip)
	b.Client = NewMemoryAPI()
	return b
}

func TestBucketRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, gz := range []bool{false, true} {
		t.Run(fmt.Sprintf("gzip=%v", gz), func(t *testing.T) {
			b := newMemoryBucket(gz)

			if _, err := b.Get(ctx, "prefs/leagueIndex"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound before Put, got %v", err)
			}
			want := []byte("1")
			if err := b.Put(ctx, "prefs/leagueIndex", want); err != nil {
				t.Fatalf("Put returned error: %v", err)
			}
			got, err := b.Get(ctx, "prefs/leagueIndex")
			if err != nil {
				t.Fatalf("Get returned error: %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("got %q; want %q", got, want)
			}
			if err := b.Delete(ctx, "prefs/leagueIndex"); err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}
			if _, err := b.Get(ctx, "prefs/leagueIndex"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after Delete, got %v", err)
			}
		})
	}
}

func TestBucketGzipStoresCompressed(t *testing.T) {
	ctx := context.Background()
	api := NewMemoryAPI()
	b := New("unit-test-bucket", true)
	b.Client = api

	payload := bytes.Repeat([]byte("AlphaSec vs smail "), 64)
	if err := b.Put(ctx, "k", payload); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	raw := New("unit-test-bucket", false)
	raw.Client = api
	stored, err := raw.Get(ctx, "k.gz")
	if err != nil {
		t.Fatalf("raw Get returned error: %v", err)
	}
	if len(stored) >= len(payload) {
		t.Errorf("expected compressed object, got %d >= %d bytes", len(stored),
			len(payload))
	}
}

func TestHTTPCacheMemory(t *testing.T) {
	cache := NewHTTPCache(context.Background(), newMemoryBucket(false), true)
	test.Cache(t, cache)
}

func TestHTTPCacheMemoryWithGzip(t *testing.T) {
	cache := NewHTTPCache(context.Background(), newMemoryBucket(true), true)
	test.Cache(t, cache)
}

func TestHTTPCacheS3(t *testing.T) {
	bucketName := os.Getenv("BOARD_TEST_BUCKET")
	if bucketName == "" {
		t.Skip("Skipping test because BOARD_TEST_BUCKET is not set")
	}
	ctx := context.Background()
	b := New(bucketName, true)
	if err := b.Init(ctx); err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			bucketName, err))
	}

	test.Cache(t, NewHTTPCache(ctx, b, true))
}
