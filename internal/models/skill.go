package models

// Skill is a single skill shown on the portfolio, ordered by Order.
type Skill struct {
	BaseModel

	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Category string `gorm:"type:varchar(50)" json:"category,omitempty"`
	Level    int    `gorm:"default:0" json:"level"`
	Order    int    `gorm:"column:sort_order;default:0" json:"order"`
	Icon     string `gorm:"type:varchar(100)" json:"icon,omitempty"`
}
