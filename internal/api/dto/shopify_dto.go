package dto

// ==================== 归一化商品 ====================

// ProductImage 商品图片
type ProductImage struct {
	URL     string  `json:"url"`
	AltText *string `json:"altText"`
}

// CategoryRef 商品所属分类
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Variant 归一化变体
type Variant struct {
	ID             int64    `json:"id"`
	ProductID      int64    `json:"productId"`
	SKU            string   `json:"sku"`
	Size           *string  `json:"size"`
	Color          *string  `json:"color"`
	Stock          int      `json:"stock"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice"`
	Image          *string  `json:"image"`
	Available      bool     `json:"available"`
}

// Product 归一化商品
type Product struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Price           float64        `json:"price"`
	CompareAtPrice  *float64       `json:"compareAtPrice"`
	SKU             string         `json:"sku"`
	CategoryID      *int64         `json:"categoryId"`
	Images          []ProductImage `json:"images"`
	Metafield01Foto *string        `json:"metafield01Foto"`
	Metafield02Foto *string        `json:"metafield02Foto"`
	Metafield03Foto *string        `json:"metafield03Foto"`
	TabelaMedida    *string        `json:"tabelaMedida"`
	BulletPoints    *string        `json:"bulletPoints"`
	Variants        []Variant      `json:"variants"`
	Category        *CategoryRef   `json:"category,omitempty"`
}

// PageInfo 分页信息
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// ProductListResp 商品列表响应
type ProductListResp struct {
	Products []Product `json:"products"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// ==================== 集合 ====================

// Collection 归一化集合
type Collection struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CollectionListResp 集合列表响应
type CollectionListResp struct {
	Collections []Collection `json:"collections"`
}

// StoryCollection stories 集合 (metafield stories = "sim")
type StoryCollection struct {
	ID    int64   `json:"id"`
	Gid   string  `json:"gid"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Image *string `json:"image"`
}

// StoryCollectionListResp stories 集合列表响应
type StoryCollectionListResp struct {
	Collections []StoryCollection `json:"collections"`
}

// ==================== 店铺 metafield ====================

// ShopMetafieldsResp 店铺级 metafield 响应
type ShopMetafieldsResp struct {
	BannerHomeMobile *string `json:"bannerHomeMobile"`
}

// ==================== Checkout ====================

// CheckoutLine 结账行
type CheckoutLine struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
}

// CheckoutReq 结账请求
type CheckoutReq struct {
	Lines []CheckoutLine `json:"lines"`
}

// CheckoutResp 结账响应
type CheckoutResp struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// ==================== 评价 (metaobject) ====================

// MetaobjectReview 从 metaobject 归一化出的商品评价
type MetaobjectReview struct {
	ID            string  `json:"id"`
	Handle        string  `json:"handle"`
	Author        *string `json:"author"`
	Title         *string `json:"title"`
	Comment       *string `json:"comment"`
	Stars         *int    `json:"stars"`
	Date          *string `json:"date"`
	PhotoURL      *string `json:"photoUrl"`
	ProductID     *int64  `json:"productId"`
	ProductGid    *string `json:"productGid"`
	ProductTitle  *string `json:"productTitle"`
	ProductHandle *string `json:"productHandle"`
}

// MetaobjectReviewListResp 评价列表响应
type MetaobjectReviewListResp struct {
	SourceMetaobjectType string             `json:"sourceMetaobjectType"`
	Total                int                `json:"total"`
	Reviews              []MetaobjectReview `json:"reviews"`
}

// ==================== Clip ====================

// Clip 归一化的推广短视频
type Clip struct {
	ID                string   `json:"id"`
	Handle            string   `json:"handle"`
	Title             string   `json:"title"`
	Subtitle          *string  `json:"subtitle"`
	VideoURL          string   `json:"videoUrl"`
	ThumbURL          *string  `json:"thumbUrl"`
	Likes             int      `json:"likes"`
	IsActive          bool     `json:"isActive"`
	SortOrder         int      `json:"sortOrder"`
	CtaLabel          string   `json:"ctaLabel"`
	CtaType           string   `json:"ctaType"`
	CtaTarget         *string  `json:"ctaTarget"`
	ProductID         *int64   `json:"productId"`
	ProductGid        *string  `json:"productGid"`
	ProductVariantGid *string  `json:"productVariantGid"`
	CollectionGid     *string  `json:"collectionGid"`
	Color             *string  `json:"color"`
	VariantLabel      *string  `json:"variantLabel"`
	Price             *float64 `json:"price"`
	OriginalPrice     *float64 `json:"originalPrice"`
	StartAt           *string  `json:"startAt"`
	EndAt             *string  `json:"endAt"`
	InWindow          bool     `json:"inWindow"`
}

// ClipListResp clips 响应
type ClipListResp struct {
	SourceMetafieldID    string `json:"sourceMetafieldId"`
	SourceMetafieldGid   string `json:"sourceMetafieldGid"`
	SourceMetaobjectType string `json:"sourceMetaobjectType"`
	Total                int    `json:"total"`
	Clips                []Clip `json:"clips"`
}
