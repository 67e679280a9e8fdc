package model

import (
	"github.com/lib/pq"
)

// Product 自营商品
type Product struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	SKU         string  `gorm:"size:100;index" json:"sku"`

	CategoryID *int64    `gorm:"index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// 图片地址列表 (Postgres Array)
	Images pq.StringArray `gorm:"type:text[]" json:"images"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductVariant 商品变体
type ProductVariant struct {
	BaseModel
	ProductID int64    `gorm:"index;not null" json:"productId"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SKU   string `gorm:"size:100;index" json:"sku"`
	Size  string `gorm:"size:50" json:"size"`
	Color string `gorm:"size:50" json:"color"`
	// 库存不允许为负，下单扣减时在服务层兜底
	Stock int      `gorm:"default:0" json:"stock"`
	Price *float64 `json:"price"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
