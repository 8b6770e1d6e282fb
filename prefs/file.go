/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// File keeps preferences in a small JSON document on local disk. It is what
// the CLI uses by default.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) load() (map[string]int, error) {
	values := make(map[string]int)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	} else if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unable to parse %v: %w", f.path, err)
	}

	return values, nil
}

func (f *File) Get(ctx context.Context, key string, def int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		log.Printf("prefs.file: failed to read %v: %v", key, err)
		return def
	}
	if v, ok := values[key]; ok {
		return v
	}
	return def
}

func (f *File) Set(ctx context.Context, key string, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		// an unreadable file is replaced wholesale
		log.Printf("prefs.file: discarding unreadable %v: %v", f.path, err)
		values = make(map[string]int)
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs.file: unable to encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("prefs.file: unable to create %v: %w",
			filepath.Dir(f.path), err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("prefs.file: unable to write %v: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("prefs.file: unable to replace %v: %w", f.path, err)
	}

	return nil
}
