package model

import "time"

// ==================== Review 评价 ====================

// Review 图书评价
// (book_id, user_id) 唯一：同一用户对同一本书重复提交是覆盖（last write wins），
// 不保留历史版本。只有作者本人可以删除。
type Review struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BookID int64 `gorm:"not null;uniqueIndex:idx_review_book_user" json:"book_id"`
	UserID int64 `gorm:"not null;uniqueIndex:idx_review_book_user" json:"user_id"`

	// 评分 1-5
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:1000" json:"comment"`

	User *User `gorm:"foreignKey:UserID" json:"user"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
