package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project is a portfolio project entry.
type Project struct {
	BaseModel

	Title        string                       `gorm:"type:varchar(100);not null" json:"title"`
	Description  string                       `gorm:"type:text" json:"description"`
	Technologies datatypes.JSONSlice[string]  `json:"technologies"`
	Category     string                       `gorm:"type:varchar(50);index" json:"category,omitempty"`
	Client       string                       `gorm:"type:varchar(100)" json:"client,omitempty"`
	LiveURL      string                       `gorm:"type:varchar(255)" json:"live_url,omitempty"`
	GithubURL    string                       `gorm:"type:varchar(255)" json:"github_url,omitempty"`
	ImageURL     string                       `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Featured     bool                         `gorm:"default:false;index" json:"featured"`
	IsDeployed   bool                         `gorm:"default:false" json:"is_deployed"`
	StartDate    *time.Time                   `json:"start_date,omitempty"`
	Clicks       int64                        `gorm:"default:0" json:"clicks"`
}
