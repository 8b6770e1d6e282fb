/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package prefs persists the two selection preferences of a board viewer:
// the selected league index and the selected round index.
package prefs

import (
	"context"
	"sync"
)

const (
	LeagueIndexKey = "leagueIndex"
	RoundIndexKey  = "roundIndex"
)

// Store is a durable map of small integers. Get returns def when the key is
// absent or cannot be read.
type Store interface {
	Get(ctx context.Context, key string, def int) int
	Set(ctx context.Context, key string, value int) error
}

// Key scopes name to a viewer namespace. An empty namespace leaves name as is.
func Key(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + ":" + name
}

// Memory is a process-local Store.
type Memory struct {
	mu     sync.Mutex
	values map[string]int
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]int)}
}

func (m *Memory) Get(ctx context.Context, key string, def int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

func (m *Memory) Set(ctx context.Context, key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
