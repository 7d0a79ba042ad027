package service

import (
	"context"
	"strings"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"go.uber.org/zap"
)

// ==================== BookService 图书服务 ====================

// BookService 图书服务
type BookService struct {
	bookRepo repository.BookRepository
}

// NewBookService 创建图书服务
func NewBookService(bookRepo repository.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// ==================== 查询 ====================

// ListBooks 图书列表，关联全量预加载，封面兜底
func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		books[i].FillDefaultImage()
	}
	return books, nil
}

// GetBook 图书详情
func (s *BookService) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.bookRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	book.FillDefaultImage()
	return book, nil
}

// ==================== 维护（管理员） ====================

// CreateBook 新建图书
// 出版社/分类/标签都按 trim 后名称 get-or-create，分类和标签随后全量同步
func (s *BookService) CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*model.Book, error) {
	book := &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Year:        req.Year,
		Quantity:    req.Quantity,
		Price:       *req.Price,
		Image:       req.Image,
	}

	if strings.TrimSpace(req.Publisher) != "" {
		publisher, err := s.bookRepo.GetOrCreatePublisher(ctx, req.Publisher)
		if err != nil {
			return nil, err
		}
		book.PublisherID = &publisher.ID
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	if err := s.syncAssociations(ctx, book, req.Categories, req.Tags); err != nil {
		return nil, err
	}

	zap.L().Info("book created", zap.Int64("book_id", book.ID), zap.String("title", book.Title))
	return s.GetBook(ctx, book.ID)
}

// UpdateBook 更新图书，未提交的字段保持原值
func (s *BookService) UpdateBook(ctx context.Context, id int64, req *dto.UpdateBookRequest) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Year != nil {
		book.Year = *req.Year
	}
	if req.Quantity != nil {
		book.Quantity = *req.Quantity
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.Image != nil {
		book.Image = *req.Image
	}
	if req.Publisher != nil && strings.TrimSpace(*req.Publisher) != "" {
		publisher, err := s.bookRepo.GetOrCreatePublisher(ctx, *req.Publisher)
		if err != nil {
			return nil, err
		}
		book.PublisherID = &publisher.ID
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	if err := s.syncAssociations(ctx, book, req.Categories, req.Tags); err != nil {
		return nil, err
	}

	return s.GetBook(ctx, book.ID)
}

// DeleteBook 删除图书及全部引用（单事务，见 BookRepository.Delete）
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if _, err := s.bookRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}
	zap.L().Info("book deleted", zap.Int64("book_id", id))
	return nil
}

// ==================== 内部 ====================

// syncAssociations 按 sync 语义同步分类和标签
// nil 表示本次请求没有提交该字段、保持现状；空数组表示清空
func (s *BookService) syncAssociations(ctx context.Context, book *model.Book, categories, tags []string) error {
	if categories != nil {
		list, err := s.bookRepo.GetOrCreateCategories(ctx, categories)
		if err != nil {
			return err
		}
		if err := s.bookRepo.ReplaceCategories(ctx, book, list); err != nil {
			return err
		}
	}
	if tags != nil {
		list, err := s.bookRepo.GetOrCreateTags(ctx, tags)
		if err != nil {
			return err
		}
		if err := s.bookRepo.ReplaceTags(ctx, book, list); err != nil {
			return err
		}
	}
	return nil
}
