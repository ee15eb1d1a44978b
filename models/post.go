package models

import "time"

// Post types
const (
	PostTypeText    = "text"
	PostTypePhoto   = "photo"
	PostTypeVideo   = "video"
	PostTypeArticle = "article"
)

type Post struct {
	PostID       uint      `gorm:"primaryKey;column:post_id" json:"post_id"`
	UserID       uint      `gorm:"column:user_id" json:"user_id"`
	Content      string    `gorm:"column:content" json:"content"`
	PostType     string    `gorm:"column:post_type;default:text" json:"post_type"`
	ImagePath    *string   `gorm:"column:image_path" json:"image_path,omitempty"`
	VideoPath    *string   `gorm:"column:video_path" json:"video_path,omitempty"`
	ArticleTitle *string   `gorm:"column:article_title" json:"article_title,omitempty"`
	CreateAt     time.Time `gorm:"column:create_at" json:"create_at"`

	Author User `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

// HasMedia reports whether the post carries an image or video; content
// may be empty only when it does.
func (p *Post) HasMedia() bool {
	return (p.ImagePath != nil && *p.ImagePath != "") || (p.VideoPath != nil && *p.VideoPath != "")
}

func (Post) TableName() string {
	return "posts"
}

type PostCreateRequest struct {
	Content      string  `json:"content"`
	PostType     string  `json:"post_type" binding:"omitempty,oneof=text photo video article"`
	ImagePath    *string `json:"image_path"`
	VideoPath    *string `json:"video_path"`
	ArticleTitle *string `json:"article_title"`
}
