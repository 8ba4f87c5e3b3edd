package models

import (
	"gorm.io/datatypes"
)

// BlogPost is a published or draft article.
type BlogPost struct {
	BaseModel

	Title    string                      `gorm:"type:varchar(200);not null" json:"title"`
	Slug     string                      `gorm:"type:varchar(255);index" json:"slug"`
	Content  string                      `gorm:"type:text;not null" json:"content"`
	Excerpt  string                      `gorm:"type:varchar(320)" json:"excerpt"`
	Category string                      `gorm:"type:varchar(50);index" json:"category"`
	Tags     datatypes.JSONSlice[string] `json:"tags,omitempty"`

	SEOTitle       string `gorm:"type:varchar(200)" json:"seo_title,omitempty"`
	SEODescription string `gorm:"type:varchar(320)" json:"seo_description,omitempty"`

	Published bool  `gorm:"default:false;index" json:"published"`
	Views     int64 `gorm:"default:0" json:"views"`
	Likes     int64 `gorm:"default:0" json:"likes"`
}
