package service

import (
	"context"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/repository"
)

// CategoryService 自营分类管理
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create 新建分类
func (s *CategoryService) Create(ctx context.Context, req *dto.CreateCategoryReq) (*model.Category, error) {
	category := &model.Category{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID 查单个分类 (含商品)
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// List 分类列表
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Update 按非 nil 字段部分更新
func (s *CategoryService) Update(ctx context.Context, id int64, req *dto.UpdateCategoryReq) (*model.Category, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Slug != nil {
		fields["slug"] = *req.Slug
	}

	if len(fields) > 0 {
		if err := s.categoryRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.categoryRepo.GetByID(ctx, id)
}

// Delete 删除分类
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
