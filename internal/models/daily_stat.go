package models

// DailyStat is an aggregate view counter for one day. Page is empty for the
// site-wide total. Increments must be atomic server-side; concurrent tracking
// requests may touch the same row.
type DailyStat struct {
	Date  string `gorm:"primaryKey;size:10"`  // YYYY-MM-DD
	Page  string `gorm:"primaryKey;size:255"` // "" for the whole site
	Views int64  `gorm:"default:0"`
}
