package dto

// ==================== 商品 CRUD ====================

// CreateProductReq 创建商品请求
type CreateProductReq struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	SKU         string   `json:"sku"`
	CategoryID  *int64   `json:"categoryId"`
	Images      []string `json:"images"`
}

// UpdateProductReq 更新商品请求，nil 字段不改动
type UpdateProductReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *int64   `json:"categoryId"`
	Images      []string `json:"images"`
}

// CreateVariantReq 创建变体请求
type CreateVariantReq struct {
	SKU   string   `json:"sku" binding:"required"`
	Size  string   `json:"size"`
	Color string   `json:"color"`
	Stock int      `json:"stock"`
	Price *float64 `json:"price"`
}

// ==================== 分类 CRUD ====================

// CreateCategoryReq 创建分类请求
type CreateCategoryReq struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// UpdateCategoryReq 更新分类请求
type UpdateCategoryReq struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// ==================== 购物车 ====================

// AddToCartReq 加购请求
type AddToCartReq struct {
	ProductID int64  `json:"productId" binding:"required"`
	VariantID *int64 `json:"variantId"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemReq 更新购物车行请求
type UpdateCartItemReq struct {
	Quantity int `json:"quantity"`
}

// ==================== 订单 ====================

// OrderItemReq 下单行
type OrderItemReq struct {
	ProductID int64   `json:"productId" binding:"required"`
	VariantID *int64  `json:"variantId"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"required"`
}

// CreateOrderReq 下单请求
type CreateOrderReq struct {
	Items []OrderItemReq `json:"items" binding:"required,min=1,dive"`
	Total float64        `json:"total" binding:"required"`
}

// UpdateOrderStatusReq 订单状态变更请求
type UpdateOrderStatusReq struct {
	Status string `json:"status" binding:"required"`
}
