/* Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3store

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MemoryAPI is an in-process stand-in for S3, keyed by bucket and object key.
// It lets packages exercise Bucket without AWS credentials.
type MemoryAPI struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryAPI() *MemoryAPI {
	return &MemoryAPI{objects: make(map[string][]byte)}
}

func memKey(bucket, key *string) string {
	return aws.ToString(bucket) + "/" + aws.ToString(key)
}

func (m *MemoryAPI) GetObject(ctx context.Context, in *s3.GetObjectInput,
	optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {

	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[memKey(in.Bucket, in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}

	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(bytes.Clone(data))),
	}, nil
}

func (m *MemoryAPI) PutObject(ctx context.Context, in *s3.PutObjectInput,
	optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[memKey(in.Bucket, in.Key)] = data

	return &s3.PutObjectOutput{}, nil
}

func (m *MemoryAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
	optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, memKey(in.Bucket, in.Key))

	return &s3.DeleteObjectOutput{}, nil
}

// Len reports how many objects are stored.
func (m *MemoryAPI) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
