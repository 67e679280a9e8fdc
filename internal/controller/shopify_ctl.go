package controller

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/repository"
	"loja_backend_v1/internal/service"
)

const hmacHeader = "X-Shopify-Hmac-Sha256"

// ShopifyController Storefront 聚合接口
type ShopifyController struct {
	shopifyService *service.ShopifyService
	webhookRepo    repository.WebhookEventRepository
	webhookSecret  string
}

// NewShopifyController 创建控制器
func NewShopifyController(shopifyService *service.ShopifyService, webhookRepo repository.WebhookEventRepository, webhookSecret string) *ShopifyController {
	return &ShopifyController{
		shopifyService: shopifyService,
		webhookRepo:    webhookRepo,
		webhookSecret:  webhookSecret,
	}
}

// parseProductQuery 从查询串解析商品列表参数
func parseProductQuery(c *gin.Context) service.ProductQuery {
	query := service.ProductQuery{
		Query:   c.Query("query"),
		After:   c.Query("after"),
		SortKey: c.Query("sortKey"),
		Reverse: c.Query("reverse") == "true",
	}
	if first, err := strconv.Atoi(c.Query("first")); err == nil && first > 0 {
		query.First = first
	}
	return query
}

// ==================== 商品 ====================

// GetProducts 获取店铺商品列表
// @Summary 获取 Shopify 商品列表
// @Tags Shopify
// @Param first query int false "每页数量" default(20)
// @Param after query string false "分页游标"
// @Param query query string false "搜索词"
// @Param sortKey query string false "排序字段"
// @Param reverse query bool false "倒序"
// @Success 200 {object} dto.ProductListResp
// @Router /api/shopify/products [get]
func (ctrl *ShopifyController) GetProducts(c *gin.Context) {
	data, err := ctrl.shopifyService.GetProducts(c.Request.Context(), parseProductQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching Shopify products", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetProductByID 获取单个商品
// @Summary 按 id/gid 获取 Shopify 商品
// @Tags Shopify
// @Param id path string true "商品 ID 或 GID"
// @Success 200 {object} dto.Product
// @Router /api/shopify/products/{id} [get]
func (ctrl *ShopifyController) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID is required"})
		return
	}

	data, err := ctrl.shopifyService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching Shopify product", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// ==================== 集合 ====================

// GetCollections 获取集合列表
// @Summary 获取 Shopify 集合列表
// @Tags Shopify
// @Success 200 {object} dto.CollectionListResp
// @Router /api/shopify/collections [get]
func (ctrl *ShopifyController) GetCollections(c *gin.Context) {
	data, err := ctrl.shopifyService.GetCollections(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching Shopify collections", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetStoriesCollections 获取 stories 集合
// @Summary 获取标记为 stories 的集合
// @Tags Shopify
// @Success 200 {object} dto.StoryCollectionListResp
// @Router /api/shopify/stories-collections [get]
func (ctrl *ShopifyController) GetStoriesCollections(c *gin.Context) {
	data, err := ctrl.shopifyService.GetStoriesCollections(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching Shopify stories collections", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetProductsByCollection 获取集合下的商品
// @Summary 集合商品分页
// @Tags Shopify
// @Param collectionGid query string true "集合 GID"
// @Success 200 {object} dto.ProductListResp
// @Router /api/shopify/collection-products [get]
func (ctrl *ShopifyController) GetProductsByCollection(c *gin.Context) {
	collectionGid := c.Query("collectionGid")
	if collectionGid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "collectionGid is required"})
		return
	}

	data, err := ctrl.shopifyService.GetProductsByCollection(c.Request.Context(), collectionGid, parseProductQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching products by collection", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// ==================== 店铺 metafield / 评价 / clips ====================

// GetShopMetafields 获取店铺级配置
// @Summary 获取店铺 metafield
// @Tags Shopify
// @Success 200 {object} dto.ShopMetafieldsResp
// @Router /api/shopify/shop-metafields [get]
func (ctrl *ShopifyController) GetShopMetafields(c *gin.Context) {
	data, err := ctrl.shopifyService.GetShopMetafields(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching shop metafields", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetProductReviews 获取 metaobject 商品评价
// @Summary 获取商品评价
// @Tags Shopify
// @Param productGid query string false "按商品 GID 过滤"
// @Success 200 {object} dto.MetaobjectReviewListResp
// @Router /api/shopify/reviews [get]
func (ctrl *ShopifyController) GetProductReviews(c *gin.Context) {
	data, err := ctrl.shopifyService.GetProductReviews(c.Request.Context(), c.Query("productGid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching product reviews", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetClips 获取推广短视频列表
// @Summary 获取 clips
// @Tags Shopify
// @Param referenceListId query string false "引用列表 metafield id"
// @Param metaobjectType query string false "回退的 metaobject 类型"
// @Success 200 {object} dto.ClipListResp
// @Router /api/shopify/clips [get]
func (ctrl *ShopifyController) GetClips(c *gin.Context) {
	data, err := ctrl.shopifyService.GetClips(c.Request.Context(), c.Query("referenceListId"), c.Query("metaobjectType"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching Shopify clips", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// ==================== Checkout ====================

// CreateCheckout 创建结账
// @Summary 创建 Storefront 购物车并返回结账地址
// @Tags Shopify
// @Param body body dto.CheckoutReq true "结账行"
// @Success 200 {object} dto.CheckoutResp
// @Router /api/shopify/checkout [post]
func (ctrl *ShopifyController) CreateCheckout(c *gin.Context) {
	var req dto.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "lines is required"})
		return
	}

	data, err := ctrl.shopifyService.CreateCheckout(c.Request.Context(), req.Lines)
	if err != nil {
		var validationErr *service.CheckoutValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating Shopify checkout", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// ==================== Webhook ====================

// Webhook 处理 Shopify webhook
// 配置了密钥且请求带签名头时做 HMAC-SHA256 校验，通过后记录事件并清缓存
// @Summary Shopify webhook 回调
// @Tags Shopify
// @Success 200 {object} map[string]bool
// @Router /api/webhooks/shopify [post]
func (ctrl *ShopifyController) Webhook(c *gin.Context) {
	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error processing webhook", "error": err.Error()})
		return
	}

	provided := c.GetHeader(hmacHeader)
	if ctrl.webhookSecret != "" && provided != "" {
		mac := hmac.New(sha256.New, []byte(ctrl.webhookSecret))
		mac.Write(rawBody)
		computed := base64.StdEncoding.EncodeToString(mac.Sum(nil))
		if !hmac.Equal([]byte(computed), []byte(provided)) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid webhook signature"})
			return
		}
	}

	// 事件落库失败不阻塞缓存失效
	if ctrl.webhookRepo != nil {
		event := &model.WebhookEvent{
			Topic:   c.GetHeader("X-Shopify-Topic"),
			Payload: datatypes.JSON(rawBody),
		}
		_ = ctrl.webhookRepo.Create(c.Request.Context(), event)
	}

	ctrl.shopifyService.ClearCache()
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// ==================== 健康检查 ====================

// Health 服务健康检查
// @Summary 健康检查
// @Tags System
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func (ctrl *ShopifyController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
