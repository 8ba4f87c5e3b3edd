package models

import "time"

// Achievement records a hackathon win, certification, or award.
type Achievement struct {
	BaseModel

	Title        string     `gorm:"type:varchar(200);not null" json:"title"`
	Type         string     `gorm:"type:varchar(50);index" json:"type"` // hackathon, certification, award
	Organization string     `gorm:"type:varchar(100)" json:"organization,omitempty"`
	Prize        string     `gorm:"type:varchar(100)" json:"prize,omitempty"`
	Date         *time.Time `gorm:"index" json:"date,omitempty"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
}
