package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/pkg/shopify"
	"loja_backend_v1/pkg/utils"
)

// ==================== 错误定义 ====================

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("product not found")

// CheckoutValidationError 结账输入校验失败 (Storefront userErrors)
type CheckoutValidationError struct {
	Message string
}

func (e *CheckoutValidationError) Error() string {
	return e.Message
}

// ==================== 查询参数 ====================

// ProductQuery 商品列表查询参数
type ProductQuery struct {
	First   int
	After   string
	Query   string
	SortKey string
	Reverse bool
}

// cacheEligible 任一筛选/分页/排序参数存在时绕过缓存
func (q *ProductQuery) cacheEligible() bool {
	return q.After == "" && q.Query == "" && q.SortKey == "" && !q.Reverse
}

// ==================== GraphQL 查询 ====================

const productsQuery = `
query Products($first: Int!, $after: String, $query: String, $sortKey: ProductSortKeys, $reverse: Boolean) {
  products(first: $first, after: $after, query: $query, sortKey: $sortKey, reverse: $reverse) {
    pageInfo { hasNextPage endCursor }
    nodes {
      id
      title
      description
      handle
      images(first: 10) { nodes { url altText } }
      priceRange { minVariantPrice { amount } }
      metafields(identifiers: [
        {namespace: "custom", key: "01_foto"},
        {namespace: "custom", key: "02_foto"},
        {namespace: "custom", key: "03_foto"},
        {namespace: "custom", key: "tabelamedida"},
        {namespace: "custom", key: "bulletsMobile"}
      ]) {
        key
        value
        reference {
          ... on MediaImage { image { url } }
          ... on GenericFile { url }
        }
      }
      variants(first: 100) {
        nodes {
          id
          sku
          title
          availableForSale
          quantityAvailable
          price { amount }
          compareAtPrice { amount }
          image { url altText }
          selectedOptions { name value }
        }
      }
      collections(first: 1) { nodes { id title handle } }
    }
  }
}`

const productByIDQuery = `
query Product($id: ID!) {
  product(id: $id) {
    id
    title
    description
    handle
    images(first: 10) { nodes { url altText } }
    priceRange { minVariantPrice { amount } }
    metafields(identifiers: [
      {namespace: "custom", key: "01_foto"},
      {namespace: "custom", key: "02_foto"},
      {namespace: "custom", key: "03_foto"},
      {namespace: "custom", key: "tabelamedida"},
      {namespace: "custom", key: "bulletsMobile"}
    ]) {
      key
      value
      reference {
        ... on MediaImage { image { url } }
        ... on GenericFile { url }
      }
    }
    variants(first: 100) {
      nodes {
        id
        sku
        title
        availableForSale
        quantityAvailable
        price { amount }
        compareAtPrice { amount }
        image { url altText }
        selectedOptions { name value }
      }
    }
    collections(first: 5) { nodes { id title handle } }
  }
}`

const collectionsQuery = `
query Collections($first: Int!) {
  collections(first: $first) {
    nodes { id title handle }
  }
}`

const storiesCollectionsQuery = `
query StoriesCollections($first: Int!) {
  collections(first: $first) {
    nodes {
      id
      title
      handle
      image { url altText }
      metafields(identifiers: [{namespace: "custom", key: "stories"}]) {
        key
        value
      }
    }
  }
}`

const collectionProductsQuery = `
query CollectionProducts($collectionId: ID!, $first: Int!, $after: String, $sortKey: ProductCollectionSortKeys, $reverse: Boolean) {
  collection(id: $collectionId) {
    products(first: $first, after: $after, sortKey: $sortKey, reverse: $reverse) {
      pageInfo { hasNextPage endCursor }
      nodes {
        id
        title
        description
        handle
        images(first: 10) { nodes { url altText } }
        priceRange { minVariantPrice { amount } }
        metafields(identifiers: [
          {namespace: "custom", key: "01_foto"},
          {namespace: "custom", key: "02_foto"},
          {namespace: "custom", key: "03_foto"},
          {namespace: "custom", key: "tabelamedida"},
          {namespace: "custom", key: "bulletsMobile"}
        ]) {
          key
          value
          reference {
            ... on MediaImage { image { url } }
            ... on GenericFile { url }
          }
        }
        variants(first: 100) {
          nodes {
            id
            sku
            title
            availableForSale
            quantityAvailable
            price { amount }
            compareAtPrice { amount }
            image { url altText }
            selectedOptions { name value }
          }
        }
      }
    }
  }
}`

const cartCreateMutation = `
mutation CartCreate($lines: [CartLineInput!]!) {
  cartCreate(input: { lines: $lines }) {
    cart { checkoutUrl }
    userErrors { field message }
  }
}`

const shopMetafieldsQuery = `
query ShopMetafields {
  shop {
    metafields(identifiers: [
      {namespace: "custom", key: "bannerHomeMobile"}
    ]) {
      key
      value
      type
    }
  }
}`

const productReviewsQuery = `
query ProductReviews($type: String!, $first: Int!) {
  metaobjects(type: $type, first: $first) {
    nodes {
      id
      handle
      type
      fields {
        key
        value
        type
        reference {
          ... on Product { id title handle }
          ... on MediaImage { image { url altText } }
          ... on GenericFile { url }
        }
      }
    }
  }
}`

// ==================== 服务定义 ====================

// ShopifyOptions 店铺数据服务配置
type ShopifyOptions struct {
	ReviewsMetaobjectType string // 默认 avaliacoesproduto
	ClipsReferenceListID  string // 默认 186305708310
	ClipsMetaobjectType   string // 默认 lista_de_referencias
}

func (o *ShopifyOptions) withDefaults() ShopifyOptions {
	out := ShopifyOptions{}
	if o != nil {
		out = *o
	}
	if out.ReviewsMetaobjectType == "" {
		out.ReviewsMetaobjectType = "avaliacoesproduto"
	}
	if out.ClipsReferenceListID == "" {
		out.ClipsReferenceListID = "186305708310"
	}
	if out.ClipsMetaobjectType == "" {
		out.ClipsMetaobjectType = "lista_de_referencias"
	}
	return out
}

// ShopifyService Storefront 数据聚合服务
type ShopifyService struct {
	client *shopify.Client
	cache  utils.QueryCache
	opts   ShopifyOptions
}

// NewShopifyService 创建服务
func NewShopifyService(client *shopify.Client, cache utils.QueryCache, opts *ShopifyOptions) *ShopifyService {
	return &ShopifyService{
		client: client,
		cache:  cache,
		opts:   opts.withDefaults(),
	}
}

// ==================== 商品 ====================

// GetProducts 商品列表，无筛选参数时走 5 分钟缓存
func (s *ShopifyService) GetProducts(ctx context.Context, query ProductQuery) (*dto.ProductListResp, error) {
	if query.First <= 0 {
		query.First = 20
	}

	result, err := s.cache.GetOrFetch(utils.CacheSlotProducts, query.cacheEligible(), func() (interface{}, error) {
		variables := map[string]interface{}{"first": query.First}
		if query.After != "" {
			variables["after"] = query.After
		}
		if query.Query != "" {
			variables["query"] = query.Query
		}
		if query.SortKey != "" {
			variables["sortKey"] = query.SortKey
		}
		if query.Reverse {
			variables["reverse"] = true
		}

		var data shopify.ProductsData
		if err := s.client.Execute(ctx, productsQuery, variables, &data); err != nil {
			return nil, err
		}

		products := make([]dto.Product, 0, len(data.Products.Nodes))
		for i := range data.Products.Nodes {
			products = append(products, mapProduct(&data.Products.Nodes[i]))
		}

		return &dto.ProductListResp{
			Products: products,
			PageInfo: dto.PageInfo{
				HasNextPage: data.Products.PageInfo.HasNextPage,
				EndCursor:   data.Products.PageInfo.EndCursor,
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.ProductListResp), nil
}

// GetProductByID 按 id/gid 取单个商品
func (s *ShopifyService) GetProductByID(ctx context.Context, productID string) (*dto.Product, error) {
	gid := shopify.ProductGid(productID)

	var data shopify.ProductData
	if err := s.client.Execute(ctx, productByIDQuery, map[string]interface{}{"id": gid}, &data); err != nil {
		return nil, err
	}

	if data.Product == nil {
		return nil, ErrProductNotFound
	}

	product := mapProduct(data.Product)
	return &product, nil
}

// ==================== 集合 ====================

// GetCollections 集合列表 (带缓存)
func (s *ShopifyService) GetCollections(ctx context.Context) (*dto.CollectionListResp, error) {
	result, err := s.cache.GetOrFetch(utils.CacheSlotCollections, true, func() (interface{}, error) {
		var data shopify.CollectionsData
		if err := s.client.Execute(ctx, collectionsQuery, map[string]interface{}{"first": 50}, &data); err != nil {
			return nil, err
		}

		collections := make([]dto.Collection, 0, len(data.Collections.Nodes))
		for _, node := range data.Collections.Nodes {
			collections = append(collections, dto.Collection{
				ID:   shopify.ParseNumericID(node.ID),
				Name: node.Title,
				Slug: node.Handle,
			})
		}
		return &dto.CollectionListResp{Collections: collections}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.CollectionListResp), nil
}

// GetStoriesCollections 只保留 stories metafield 为 "sim" 的集合，不缓存
func (s *ShopifyService) GetStoriesCollections(ctx context.Context) (*dto.StoryCollectionListResp, error) {
	var data shopify.CollectionsData
	if err := s.client.Execute(ctx, storiesCollectionsQuery, map[string]interface{}{"first": 50}, &data); err != nil {
		return nil, err
	}

	collections := make([]dto.StoryCollection, 0)
	for _, node := range data.Collections.Nodes {
		if !hasStoriesFlag(node.Metafields) {
			continue
		}
		var image *string
		if node.Image != nil && node.Image.URL != "" {
			url := node.Image.URL
			image = &url
		}
		collections = append(collections, dto.StoryCollection{
			ID:    shopify.ParseNumericID(node.ID),
			Gid:   node.ID,
			Name:  node.Title,
			Slug:  node.Handle,
			Image: image,
		})
	}

	return &dto.StoryCollectionListResp{Collections: collections}, nil
}

func hasStoriesFlag(metafields []shopify.Metafield) bool {
	for _, mf := range metafields {
		if mf.Key == "stories" && strings.ToLower(mf.Value) == "sim" {
			return true
		}
	}
	return false
}

// GetProductsByCollection 集合下的商品分页
func (s *ShopifyService) GetProductsByCollection(ctx context.Context, collectionGid string, query ProductQuery) (*dto.ProductListResp, error) {
	if query.First <= 0 {
		query.First = 20
	}

	variables := map[string]interface{}{
		"collectionId": collectionGid,
		"first":        query.First,
	}
	if query.After != "" {
		variables["after"] = query.After
	}
	if query.SortKey != "" {
		variables["sortKey"] = query.SortKey
	}
	if query.Reverse {
		variables["reverse"] = true
	}

	var data shopify.CollectionProductsData
	if err := s.client.Execute(ctx, collectionProductsQuery, variables, &data); err != nil {
		return nil, err
	}

	// 集合不存在：返回空列表而非错误
	if data.Collection == nil {
		return &dto.ProductListResp{
			Products: []dto.Product{},
			PageInfo: dto.PageInfo{HasNextPage: false, EndCursor: nil},
		}, nil
	}

	products := make([]dto.Product, 0, len(data.Collection.Products.Nodes))
	for i := range data.Collection.Products.Nodes {
		products = append(products, mapProductWithoutCollections(&data.Collection.Products.Nodes[i]))
	}

	return &dto.ProductListResp{
		Products: products,
		PageInfo: dto.PageInfo{
			HasNextPage: data.Collection.Products.PageInfo.HasNextPage,
			EndCursor:   data.Collection.Products.PageInfo.EndCursor,
		},
	}, nil
}

// ==================== Checkout ====================

// CreateCheckout 创建 Storefront 购物车并返回结账地址
func (s *ShopifyService) CreateCheckout(ctx context.Context, lines []dto.CheckoutLine) (*dto.CheckoutResp, error) {
	lineInputs := make([]map[string]interface{}, 0, len(lines))
	for _, line := range lines {
		lineInputs = append(lineInputs, map[string]interface{}{
			"merchandiseId": line.MerchandiseID,
			"quantity":      line.Quantity,
		})
	}

	var data shopify.CartCreateData
	if err := s.client.Execute(ctx, cartCreateMutation, map[string]interface{}{"lines": lineInputs}, &data); err != nil {
		return nil, err
	}

	if len(data.CartCreate.UserErrors) > 0 {
		return nil, &CheckoutValidationError{Message: data.CartCreate.UserErrors[0].Message}
	}

	if data.CartCreate.Cart == nil || data.CartCreate.Cart.CheckoutURL == "" {
		return nil, fmt.Errorf("checkout URL not generated: %w", &shopify.EmptyResponseError{})
	}

	return &dto.CheckoutResp{CheckoutURL: data.CartCreate.Cart.CheckoutURL}, nil
}

// ==================== 店铺 metafield ====================

// GetShopMetafields 店铺级配置 metafield
func (s *ShopifyService) GetShopMetafields(ctx context.Context) (*dto.ShopMetafieldsResp, error) {
	var data shopify.ShopMetafieldsData
	if err := s.client.Execute(ctx, shopMetafieldsQuery, map[string]interface{}{}, &data); err != nil {
		return nil, err
	}

	resp := &dto.ShopMetafieldsResp{}
	if data.Shop == nil {
		return resp, nil
	}
	for _, mf := range data.Shop.Metafields {
		if mf.Key == "bannerHomeMobile" && mf.Value != "" {
			value := mf.Value
			resp.BannerHomeMobile = &value
		}
	}
	return resp, nil
}

// ==================== 评价 ====================

// GetProductReviews 从评价 metaobject 拉取并归一化，productGid 非空时按商品过滤
func (s *ShopifyService) GetProductReviews(ctx context.Context, productGid string) (*dto.MetaobjectReviewListResp, error) {
	var data shopify.MetaobjectsData
	variables := map[string]interface{}{
		"type":  s.opts.ReviewsMetaobjectType,
		"first": 100,
	}
	if err := s.client.Execute(ctx, productReviewsQuery, variables, &data); err != nil {
		return nil, err
	}

	reviews := make([]dto.MetaobjectReview, 0, len(data.Metaobjects.Nodes))
	for _, node := range data.Metaobjects.Nodes {
		review := mapMetaobjectReview(node)
		if productGid != "" {
			if review.ProductGid == nil || *review.ProductGid != productGid {
				continue
			}
		}
		reviews = append(reviews, review)
	}

	return &dto.MetaobjectReviewListResp{
		SourceMetaobjectType: s.opts.ReviewsMetaobjectType,
		Total:                len(reviews),
		Reviews:              reviews,
	}, nil
}

// mapMetaobjectReview 从 metaobject 字段归一化一条评价
func mapMetaobjectReview(node shopify.MetaobjectNode) dto.MetaobjectReview {
	fields := node.Fields

	review := dto.MetaobjectReview{
		ID:     node.ID,
		Handle: node.Handle,
	}

	if v := shopify.ReadFieldValue(fields, []string{"nome", "autor", "author", "name"}); v != "" {
		review.Author = &v
	}
	if v := shopify.ReadFieldValue(fields, []string{"titulo", "title"}); v != "" {
		review.Title = &v
	}

	commentKeys := []string{"avaliacao", "comentario", "comment", "texto", "text", "review"}
	if v := shopify.ReadRichTextPlain(fields, commentKeys); v != "" {
		review.Comment = &v
	} else if v := shopify.ReadFieldValue(fields, commentKeys); v != "" {
		review.Comment = &v
	}

	if raw := shopify.ReadFieldValue(fields, []string{"estrelas", "stars", "rating"}); raw != "" {
		if stars, ok := parseIntPrefix(raw); ok {
			review.Stars = &stars
		}
	}
	if v := shopify.ReadFieldValue(fields, []string{"data", "date"}); v != "" {
		review.Date = &v
	}

	if v := shopify.ReadReferenceImage(fields, []string{"foto", "photo", "image", "imagem"}); v != "" {
		review.PhotoURL = &v
	} else if v := shopify.ReadFieldValue(fields, []string{"foto", "photo", "image_url"}); v != "" {
		review.PhotoURL = &v
	}

	if ref := shopify.ReadReference(fields, []string{"produto", "product"}); ref != nil && ref.ID != "" {
		gid := ref.ID
		id := shopify.ParseNumericID(gid)
		review.ProductGid = &gid
		review.ProductID = &id
		if ref.Title != "" {
			title := ref.Title
			review.ProductTitle = &title
		}
		if ref.Handle != "" {
			handle := ref.Handle
			review.ProductHandle = &handle
		}
	}

	return review
}

// ==================== 缓存 ====================

// ClearCache 清空查询缓存 (webhook 触发)
func (s *ShopifyService) ClearCache() {
	s.cache.Clear()
}
