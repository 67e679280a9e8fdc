package service

import (
	"context"

	"github.com/lib/pq"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/repository"
)

// ==================== 自营商品服务 ====================

// ProductService 自营商品目录的增删改查
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create 新建商品
func (s *ProductService) Create(ctx context.Context, req *dto.CreateProductReq) (*model.Product, error) {
	product := &model.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		SKU:         req.SKU,
		CategoryID:  req.CategoryID,
		Images:      pq.StringArray(req.Images),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID 查单个商品 (含变体和分类)
func (s *ProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// List 商品列表，categoryID 非 nil 时按分类过滤
func (s *ProductService) List(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	return s.productRepo.List(ctx, categoryID)
}

// Update 按非 nil 字段部分更新
func (s *ProductService) Update(ctx context.Context, id int64, req *dto.UpdateProductReq) (*model.Product, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}
	if req.Images != nil {
		fields["images"] = pq.StringArray(req.Images)
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.productRepo.GetByID(ctx, id)
}

// Delete 删除商品及其变体
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

// ==================== 变体 ====================

// CreateVariant 给商品添加变体
func (s *ProductService) CreateVariant(ctx context.Context, productID int64, req *dto.CreateVariantReq) (*model.ProductVariant, error) {
	// 商品必须存在
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	variant := &model.ProductVariant{
		ProductID: productID,
		SKU:       req.SKU,
		Size:      req.Size,
		Color:     req.Color,
		Stock:     req.Stock,
		Price:     req.Price,
	}
	if err := s.productRepo.CreateVariant(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// ListVariants 商品的变体列表
func (s *ProductService) ListVariants(ctx context.Context, productID int64) ([]model.ProductVariant, error) {
	return s.productRepo.ListVariantsByProductID(ctx, productID)
}
