package models

import "time"

// Post is a mirrored external post. IDStr is the source's identifier and
// the natural key for upserts; ID is assigned locally.
type Post struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	IDStr      string    `gorm:"type:varchar(64);not null;uniqueIndex;column:id_str" json:"id_str"`
	Text       string    `gorm:"type:text;column:text" json:"text"`
	CreatedAtX time.Time `gorm:"not null;column:created_at_x" json:"created_at_x"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// PostCategory is the post-to-category link table
type PostCategory struct {
	PostID     int64 `gorm:"primaryKey;column:post_id"`
	CategoryID int64 `gorm:"primaryKey;column:category_id"`
}

// TableName specifies the table name for PostCategory
func (PostCategory) TableName() string {
	return "post_categories"
}
