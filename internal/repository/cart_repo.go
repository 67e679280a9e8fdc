package repository

import (
	"context"

	"gorm.io/gorm"

	"loja_backend_v1/internal/model"
)

// CartRepository 购物车仓储接口
type CartRepository interface {
	Create(ctx context.Context, item *model.CartItem) error
	GetByID(ctx context.Context, id int64) (*model.CartItem, error)
	// FindLine 按 用户+商品+变体 查既有行，variantID 为 nil 时匹配 NULL
	FindLine(ctx context.Context, userID string, productID int64, variantID *int64) (*model.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]model.CartItem, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	IncrementQuantity(ctx context.Context, id int64, delta int) error
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID string) error
}

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) GetByID(ctx context.Context, id int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) FindLine(ctx context.Context, userID string, productID int64, variantID *int64) (*model.CartItem, error) {
	var item model.CartItem
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}
	err := query.First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) ListByUser(ctx context.Context, userID string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&items).Error
	return items, err
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *cartRepo) IncrementQuantity(ctx context.Context, id int64, delta int) error {
	return r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *cartRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CartItem{}, id).Error
}

func (r *cartRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
