package models

import "gorm.io/datatypes"

// AnalyticsEvent is one tracked visitor interaction.
type AnalyticsEvent struct {
	BaseModel

	Page      string            `gorm:"type:varchar(255);index" json:"page"`
	Event     string            `gorm:"type:varchar(100)" json:"event,omitempty"`
	Data      datatypes.JSONMap `json:"data,omitempty"`
	IP        string            `gorm:"type:varchar(45)" json:"-"`
	UserAgent string            `gorm:"type:varchar(512)" json:"user_agent,omitempty"`
	Country   string            `gorm:"type:varchar(64);index" json:"country,omitempty"`
	City      string            `gorm:"type:varchar(128)" json:"city,omitempty"`
	Referrer  string            `gorm:"type:varchar(512)" json:"referrer,omitempty"`
}
