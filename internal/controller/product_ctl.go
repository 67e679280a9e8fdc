package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/service"
)

// ProductController 自营商品接口
type ProductController struct {
	productService *service.ProductService
}

// NewProductController 创建控制器
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的ID"})
		return 0, false
	}
	return id, true
}

// ==================== 查询接口 ====================

// GetProducts 获取商品列表
// @Summary 获取自营商品列表
// @Tags Product
// @Param categoryId query int false "分类筛选"
// @Success 200 {object} map[string]interface{}
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的 categoryId"})
			return
		}
		categoryID = &id
	}

	products, err := ctrl.productService.List(c.Request.Context(), categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": products})
}

// GetProduct 获取商品详情
// @Summary 获取单个自营商品
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "商品不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": product})
}

// ==================== 管理接口 ====================

// AddProduct 创建商品
// @Summary 创建自营商品
// @Tags Product
// @Param body body dto.CreateProductReq true "商品信息"
// @Success 201 {object} map[string]interface{}
// @Router /api/products [post]
func (ctrl *ProductController) AddProduct(c *gin.Context) {
	var req dto.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的商品参数: " + err.Error()})
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": product})
}

// UpdateProduct 更新商品
// @Summary 更新自营商品
// @Tags Product
// @Param id path int true "商品ID"
// @Param body body dto.UpdateProductReq true "更新字段"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的更新参数: " + err.Error()})
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "商品不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": product})
}

// DeleteProduct 删除商品
// @Summary 删除自营商品及其变体
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// ==================== 变体 ====================

// AddVariant 添加变体
// @Summary 给商品添加变体
// @Tags Product
// @Param id path int true "商品ID"
// @Param body body dto.CreateVariantReq true "变体信息"
// @Success 201 {object} map[string]interface{}
// @Router /api/products/{id}/variants [post]
func (ctrl *ProductController) AddVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateVariantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的变体参数: " + err.Error()})
		return
	}

	variant, err := ctrl.productService.CreateVariant(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "商品不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": variant})
}

// GetVariants 获取商品变体列表
// @Summary 获取商品的变体
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id}/variants [get]
func (ctrl *ProductController) GetVariants(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	variants, err := ctrl.productService.ListVariants(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": variants})
}
