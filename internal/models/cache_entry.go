package models

import "time"

// CacheEntry is a cached value in the reserved cache table. An entry whose
// ExpiresAt is in the past must never be served.
type CacheEntry struct {
	Key       string    `gorm:"primaryKey;size:256"`
	Value     []byte    `gorm:"type:blob"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
