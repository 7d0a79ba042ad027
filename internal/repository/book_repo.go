package repository

import (
	"context"
	"strings"

	"bookstore_api/internal/model"

	"gorm.io/gorm"
)

// ==================== BookRepository 图书仓库 ====================

// BookRepository 图书仓库接口
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, book *model.Book) error

	// Delete 删除图书及其全部引用
	// order_items 对 books 是 RESTRICT 语义，不能依赖数据库级联，
	// 必须在同一事务内显式清理：分类/标签关联、购物车行、订单明细、评价，最后删图书。
	// 任何一步失败整体回滚，不允许出现删一半的状态。
	Delete(ctx context.Context, id int64) error

	// GetOrCreatePublisher 按名称取出版社，不存在则创建（名称先 trim）
	GetOrCreatePublisher(ctx context.Context, name string) (*model.Publisher, error)
	// GetOrCreateCategories 批量 get-or-create 分类
	GetOrCreateCategories(ctx context.Context, names []string) ([]model.Category, error)
	// GetOrCreateTags 批量 get-or-create 标签
	GetOrCreateTags(ctx context.Context, names []string) ([]model.Tag, error)

	// ReplaceCategories 全量替换图书的分类集合（sync 语义：不在列表里的移除，缺的补上）
	ReplaceCategories(ctx context.Context, book *model.Book, categories []model.Category) error
	// ReplaceTags 全量替换图书的标签集合
	ReplaceTags(ctx context.Context, book *model.Book, tags []model.Tag) error
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓库
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// withRelations 统一预加载出版社、分类、标签
func (r *bookRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Publisher").Preload("Categories").Preload("Tags")
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Omit("Categories", "Tags", "Publisher").Create(book).Error
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetByIDWithRelations(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	err := r.withRelations(r.db.WithContext(ctx)).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	err := r.withRelations(r.db.WithContext(ctx)).Order("id ASC").Find(&books).Error
	return books, err
}

func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Omit("Categories", "Tags", "Publisher").Save(book).Error
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book := model.Book{ID: id}

		// 清掉多对多关联（中间表行）
		if err := tx.Model(&book).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&book).Association("Tags").Clear(); err != nil {
			return err
		}

		// 清掉引用该图书的购物车行、订单明细、评价
		if err := tx.Where("book_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Book{}, id).Error
	})
}

func (r *bookRepository) GetOrCreatePublisher(ctx context.Context, name string) (*model.Publisher, error) {
	publisher := model.Publisher{Name: strings.TrimSpace(name)}
	err := r.db.WithContext(ctx).
		Where("name = ?", publisher.Name).
		FirstOrCreate(&publisher).Error
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (r *bookRepository) GetOrCreateCategories(ctx context.Context, names []string) ([]model.Category, error) {
	categories := make([]model.Category, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category := model.Category{Name: name}
		err := r.db.WithContext(ctx).
			Where("name = ?", name).
			FirstOrCreate(&category).Error
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *bookRepository) GetOrCreateTags(ctx context.Context, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag := model.Tag{Name: name}
		err := r.db.WithContext(ctx).
			Where("name = ?", name).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *bookRepository) ReplaceCategories(ctx context.Context, book *model.Book, categories []model.Category) error {
	return r.db.WithContext(ctx).Model(book).Association("Categories").Replace(categories)
}

func (r *bookRepository) ReplaceTags(ctx context.Context, book *model.Book, tags []model.Tag) error {
	return r.db.WithContext(ctx).Model(book).Association("Tags").Replace(tags)
}
