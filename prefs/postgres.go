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
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preference is one persisted key/value row.
type Preference struct {
	Key       string `gorm:"primaryKey"`
	Value     int
	UpdatedAt time.Time
}

// Postgres keeps preferences in a gorm-managed table.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres opens dsn and migrates the preferences table.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("prefs.postgres: open: %w", err)
	}
	return NewGorm(db)
}

// NewGorm wraps an already opened database.
func NewGorm(db *gorm.DB) (*Postgres, error) {
	if err := db.AutoMigrate(&Preference{}); err != nil {
		return nil, fmt.Errorf("prefs.postgres: migrate: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(ctx context.Context, key string, def int) int {
	var row Preference
	err := p.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def
	} else if err != nil {
		log.Printf("prefs.postgres: failed to get %v: %v", key, err)
		return def
	}
	return row.Value
}

func (p *Postgres) Set(ctx context.Context, key string, value int) error {
	row := Preference{Key: key, Value: value, UpdatedAt: time.Now()}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("prefs.postgres: unable to set %v: %w", key, err)
	}
	return nil
}
