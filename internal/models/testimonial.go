package models

// Testimonial is visitor-submitted feedback, hidden until approved.
type Testimonial struct {
	BaseModel

	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Company  string `gorm:"type:varchar(100)" json:"company,omitempty"`
	Role     string `gorm:"type:varchar(100)" json:"role,omitempty"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Rating   int    `gorm:"default:5" json:"rating"`
	Approved bool   `gorm:"default:false;index" json:"approved"`
}
