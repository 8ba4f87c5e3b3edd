package models

// Comment is a visitor comment on a blog post. The post reference is a plain
// identifier field; no foreign key is enforced and callers resolve it with a
// second query.
type Comment struct {
	BaseModel

	BlogPostID string `gorm:"type:uuid;index;not null" json:"blog_post_id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	Email      string `gorm:"type:varchar(255);not null" json:"-"`
	Comment    string `gorm:"type:text;not null" json:"comment"`
	Approved   bool   `gorm:"default:false;index" json:"approved"`
}
