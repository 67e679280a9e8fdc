package model

// ==================== 订单状态常量 ====================

const (
	OrderStatusPending   = "pending"   // 待处理
	OrderStatusPaid      = "paid"      // 已支付
	OrderStatusShipped   = "shipped"   // 已发货
	OrderStatusDelivered = "delivered" // 已签收
	OrderStatusCanceled  = "canceled"  // 已取消
)

// ==================== Order 订单主表 ====================

// Order 订单
type Order struct {
	BaseModel
	UserID string `gorm:"size:36;index;not null" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Total  float64 `gorm:"not null" json:"total"`
	Status string  `gorm:"size:32;index;default:pending" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单行
type OrderItem struct {
	BaseModel
	OrderID   int64  `gorm:"index;not null" json:"orderId"`
	Order     *Order `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ProductID int64  `gorm:"not null" json:"productId"`
	VariantID *int64 `json:"variantId"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	// 下单时的单价快照
	Price float64 `gorm:"not null" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
