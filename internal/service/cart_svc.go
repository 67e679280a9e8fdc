package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/repository"
)

// ErrCartItemForbidden 购物车行不属于当前用户
var ErrCartItemForbidden = errors.New("cart item does not belong to user")

// CartLine 购物车行及其关联商品信息
type CartLine struct {
	model.CartItem
	Product *model.Product        `json:"product"`
	Variant *model.ProductVariant `json:"variant"`
}

// CartService 购物车管理
// 同一 用户+商品+变体 只保留一行，重复加购累加数量
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// AddToCart 加购：已有同一行则数量自增，否则新建
func (s *CartService) AddToCart(ctx context.Context, userID string, req *dto.AddToCartReq) (*model.CartItem, error) {
	existing, err := s.cartRepo.FindLine(ctx, userID, req.ProductID, req.VariantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := s.cartRepo.IncrementQuantity(ctx, existing.ID, req.Quantity); err != nil {
			return nil, err
		}
		return s.cartRepo.GetByID(ctx, existing.ID)
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetCartItems 取用户购物车，逐行带上商品和变体快照
func (s *CartService) GetCartItems(ctx context.Context, userID string) ([]CartLine, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		line := CartLine{CartItem: item}

		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		line.Product = product

		if item.VariantID != nil {
			variant, err := s.productRepo.GetVariantByID(ctx, *item.VariantID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			line.Variant = variant
		}

		lines = append(lines, line)
	}
	return lines, nil
}

// UpdateCartItem 改数量；数量 <= 0 视为删除该行
func (s *CartService) UpdateCartItem(ctx context.Context, userID string, itemID int64, quantity int) (*model.CartItem, error) {
	item, err := s.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrCartItemForbidden
	}

	if quantity <= 0 {
		if err := s.cartRepo.Delete(ctx, itemID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.cartRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByID(ctx, itemID)
}

// RemoveFromCart 删除购物车行
func (s *CartService) RemoveFromCart(ctx context.Context, userID string, itemID int64) error {
	item, err := s.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return ErrCartItemForbidden
	}
	return s.cartRepo.Delete(ctx, itemID)
}

// ClearCart 清空用户购物车
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.cartRepo.DeleteByUser(ctx, userID)
}
