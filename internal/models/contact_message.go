package models

// Contact status values.
const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ContactMessage is a contact form submission.
type ContactMessage struct {
	BaseModel

	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Email     string `gorm:"type:varchar(255);not null" json:"email"`
	Message   string `gorm:"type:text;not null" json:"message"`
	IP        string `gorm:"type:varchar(45)" json:"-"`
	Status    string `gorm:"type:varchar(20);default:new;index" json:"status"`
	Sentiment string `gorm:"type:varchar(20);index" json:"sentiment,omitempty"`
}
