package model

import (
	"time"

	"gorm.io/gorm"
)

// DefaultBookImage 图书缺省封面，接口返回时 image 永远不为空
const DefaultBookImage = "/default-book.jpg"

// ==================== Book 图书 ====================

// Book 图书
type Book struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Author      string `gorm:"size:255" json:"author"`
	Description string `gorm:"type:text" json:"description"`
	Year        int    `json:"year"`

	// 库存数量
	Quantity int `gorm:"default:0" json:"quantity"`

	// 价格（最小货币单位，整数存储）
	Price int64 `gorm:"not null" json:"price"`

	PublisherID *int64 `gorm:"index" json:"publisher_id"`
	Image       string `gorm:"size:255" json:"image"`

	// 关联
	Publisher  *Publisher `gorm:"foreignKey:PublisherID" json:"publisher"`
	Categories []Category `gorm:"many2many:book_categories" json:"categories"`
	Tags       []Tag      `gorm:"many2many:book_tags" json:"tags"`
}

func (Book) TableName() string {
	return "books"
}

// FillDefaultImage 补齐缺省封面
func (b *Book) FillDefaultImage() {
	if b.Image == "" {
		b.Image = DefaultBookImage
	}
}

// ==================== Category 分类 ====================

// Category 图书分类
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Books []Book `gorm:"many2many:book_categories" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// ==================== Tag 标签 ====================

// Tag 图书标签
type Tag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`

	Books []Book `gorm:"many2many:book_tags" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// ==================== Publisher 出版社 ====================

// Publisher 出版社
type Publisher struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

func (Publisher) TableName() string {
	return "publishers"
}
