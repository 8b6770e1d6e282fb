/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/s3store"
	"github.com/gregjones/httpcache"
)

// NewCachedHttpClient returns an http.Client that caches upstream responses
// for maxAge. With a bucket name the cache lives in S3 so that every replica
// shares it; if the bucket is empty or cannot be initialized it falls back to
// an in-memory cache instead of no cache.
func NewCachedHttpClient(ctx context.Context, bucketName string,
	maxAge time.Duration) *http.Client {

	var cache httpcache.Cache
	if bucketName != "" {
		bucket := s3store.New(bucketName, false)
		err := bucket.Init(ctx)
		if err == nil {
			cache = s3store.NewHTTPCache(ctx, bucket, true)
		} else {
			log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to memory cache", err)
		}
	}
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	return NewClient(cache, maxAge, http.DefaultTransport)
}

// NewClient wraps base with cache, overriding origin cache headers so that
// every successful response is fresh for maxAge.
func NewClient(cache httpcache.Cache, maxAge time.Duration,
	base http.RoundTripper) *http.Client {

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: base,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", internal.UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			if resp.StatusCode != http.StatusOK {
				return nil
			}
			// Strip any cache-busting headers from origin
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			// Enforce the provided TTL
			resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	rt := t.wrappedRT
	if rt == nil {
		rt = http.DefaultTransport
	}
	resp, err := rt.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
