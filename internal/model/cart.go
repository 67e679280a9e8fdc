package model

// CartItem 购物车行，按 用户+商品+变体 唯一
// 重复加购时在既有行上累加数量，而不是插入新行
type CartItem struct {
	BaseModel
	UserID    string `gorm:"size:36;index:idx_cart_line;not null" json:"userId"`
	ProductID int64  `gorm:"index:idx_cart_line;not null" json:"productId"`
	VariantID *int64 `gorm:"index:idx_cart_line" json:"variantId"`
	Quantity  int    `gorm:"not null;default:1" json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
