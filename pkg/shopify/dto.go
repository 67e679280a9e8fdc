package shopify

// ==================== 通用结构 ====================

// PageInfo 分页游标信息
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// Money Storefront API 金额 (十进制字符串)
type Money struct {
	Amount string `json:"amount"`
}

// Image 图片节点
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// VideoSource 视频的一种编码产物
type VideoSource struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// ==================== Metaobject ====================

// FieldReference metafield/metaobject 字段的多态引用
// 可能是 Product / Collection / ProductVariant / MediaImage / GenericFile / Video
// 按约定的优先级读取，不做形状嗅探
type FieldReference struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`

	// MediaImage
	Image *Image `json:"image"`

	// GenericFile
	URL string `json:"url"`

	// Video
	Sources      []VideoSource `json:"sources"`
	PreviewImage *Image        `json:"previewImage"`

	// ProductVariant -> 所属商品
	Product *struct {
		ID string `json:"id"`
	} `json:"product"`
}

// MetaobjectField metaobject 的一个命名字段
type MetaobjectField struct {
	Key       string          `json:"key"`
	Value     string          `json:"value"`
	Type      string          `json:"type"`
	Reference *FieldReference `json:"reference"`
}

// MetaobjectNode 平台定义的结构化记录
type MetaobjectNode struct {
	ID     string            `json:"id"`
	Handle string            `json:"handle"`
	Type   string            `json:"type"`
	Fields []MetaobjectField `json:"fields"`
}

// ==================== Product ====================

// Metafield 资源上的类型化附加属性
type Metafield struct {
	Key       string          `json:"key"`
	Value     string          `json:"value"`
	Type      string          `json:"type"`
	Reference *FieldReference `json:"reference"`
}

// SelectedOption 变体选中的规格项
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantNode 商品变体节点
type VariantNode struct {
	ID                string           `json:"id"`
	SKU               string           `json:"sku"`
	Title             string           `json:"title"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable *int             `json:"quantityAvailable"`
	Price             Money            `json:"price"`
	CompareAtPrice    *Money           `json:"compareAtPrice"`
	Image             *Image           `json:"image"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
}

// CollectionNode 集合节点
type CollectionNode struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Handle     string      `json:"handle"`
	Image      *Image      `json:"image"`
	Metafields []Metafield `json:"metafields"`
}

// ProductNode 商品节点 (Storefront 原始形状)
type ProductNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Handle      string `json:"handle"`
	Images      struct {
		Nodes []Image `json:"nodes"`
	} `json:"images"`
	PriceRange struct {
		MinVariantPrice Money `json:"minVariantPrice"`
	} `json:"priceRange"`
	Metafields []Metafield `json:"metafields"`
	Variants   struct {
		Nodes []VariantNode `json:"nodes"`
	} `json:"variants"`
	Collections struct {
		Nodes []CollectionNode `json:"nodes"`
	} `json:"collections"`
}

// ==================== 查询响应 ====================

type ProductsData struct {
	Products struct {
		PageInfo PageInfo      `json:"pageInfo"`
		Nodes    []ProductNode `json:"nodes"`
	} `json:"products"`
}

type ProductData struct {
	Product *ProductNode `json:"product"`
}

type CollectionsData struct {
	Collections struct {
		Nodes []CollectionNode `json:"nodes"`
	} `json:"collections"`
}

type CollectionProductsData struct {
	Collection *struct {
		Products struct {
			PageInfo PageInfo      `json:"pageInfo"`
			Nodes    []ProductNode `json:"nodes"`
		} `json:"products"`
	} `json:"collection"`
}

type MetaobjectsData struct {
	Metaobjects struct {
		Nodes []MetaobjectNode `json:"nodes"`
	} `json:"metaobjects"`
}

// MetafieldReferencesData 按 metafield 引用列表取 metaobject
type MetafieldReferencesData struct {
	Node *struct {
		ID         string `json:"id"`
		References *struct {
			Nodes []MetaobjectNode `json:"nodes"`
		} `json:"references"`
	} `json:"node"`
}

type ShopMetafieldsData struct {
	Shop *struct {
		Metafields []Metafield `json:"metafields"`
	} `json:"shop"`
}

type CartCreateData struct {
	CartCreate struct {
		Cart *struct {
			CheckoutURL string `json:"checkoutUrl"`
		} `json:"cart"`
		UserErrors []struct {
			Field   []string `json:"field"`
			Message string   `json:"message"`
		} `json:"userErrors"`
	} `json:"cartCreate"`
}

// ResolvedNode nodes(ids:) 批量解析出的节点，字段按类型部分填充
type ResolvedNode struct {
	ID           string        `json:"id"`
	Sources      []VideoSource `json:"sources"`
	PreviewImage *Image        `json:"previewImage"`
	Image        *Image        `json:"image"`
	URL          string        `json:"url"`

	// ProductVariant
	Title           string           `json:"title"`
	Price           *Money           `json:"price"`
	CompareAtPrice  *Money           `json:"compareAtPrice"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Product         *struct {
		ID string `json:"id"`
	} `json:"product"`

	// Product
	PriceRange *struct {
		MinVariantPrice Money `json:"minVariantPrice"`
	} `json:"priceRange"`
	Variants *struct {
		Nodes []struct {
			CompareAtPrice *Money `json:"compareAtPrice"`
		} `json:"nodes"`
	} `json:"variants"`
}

// NodesData nodes 查询响应，未命中的 id 对应 null
type NodesData struct {
	Nodes []*ResolvedNode `json:"nodes"`
}
