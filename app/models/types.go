package models

// Post represents a blog post stored in the blog_post table.
type Post struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"type:varchar(250);uniqueIndex;not null" json:"title"`
	Subtitle string `gorm:"type:varchar(250);not null" json:"subtitle"`
	Date     string `gorm:"type:varchar(250);not null" json:"date"`
	Body     string `gorm:"type:text;not null" json:"body"`
	Author   string `gorm:"type:varchar(250);not null" json:"author"`
	ImageURL string `gorm:"column:img_url;type:varchar(250);not null" json:"img_url"`
}

// TableName keeps the table name stable across drivers.
func (Post) TableName() string {
	return "blog_post"
}

// PostForm holds the user-editable fields of a post as submitted by the
// new-post and edit-post forms.
type PostForm struct {
	Title    string `validate:"required,max=250"`
	Subtitle string `validate:"required,max=250"`
	Author   string `validate:"required,max=250"`
	ImageURL string `validate:"required,url,max=250"`
	Body     string `validate:"required"`
}
