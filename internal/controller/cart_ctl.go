package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/middleware"
	"loja_backend_v1/internal/service"
)

// CartController 购物车接口
type CartController struct {
	cartService *service.CartService
}

// NewCartController 创建控制器
func NewCartController(cartService *service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// AddToCart 加购
// @Summary 加入购物车
// @Tags Cart
// @Security BearerAuth
// @Param body body dto.AddToCartReq true "加购信息"
// @Success 201 {object} map[string]interface{}
// @Router /api/cart [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req dto.AddToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的加购参数: " + err.Error()})
		return
	}

	item, err := ctrl.cartService.AddToCart(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "加购失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": item})
}

// GetCart 获取购物车
// @Summary 获取当前用户购物车
// @Tags Cart
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	lines, err := ctrl.cartService.GetCartItems(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": lines})
}

// UpdateCartItem 更新购物车行
// @Summary 修改数量，数量为 0 时删除
// @Tags Cart
// @Security BearerAuth
// @Param id path int true "购物车行ID"
// @Param body body dto.UpdateCartItemReq true "数量"
// @Success 200 {object} map[string]interface{}
// @Router /api/cart/{id} [put]
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的参数: " + err.Error()})
		return
	}

	item, err := ctrl.cartService.UpdateCartItem(c.Request.Context(), middleware.GetUserID(c), id, req.Quantity)
	if err != nil {
		ctrl.writeCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": item})
}

// RemoveFromCart 删除购物车行
// @Summary 删除购物车行
// @Tags Cart
// @Security BearerAuth
// @Param id path int true "购物车行ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/cart/{id} [delete]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveFromCart(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		ctrl.writeCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// ClearCart 清空购物车
// @Summary 清空当前用户购物车
// @Tags Cart
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.cartService.ClearCart(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "清空失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

func (ctrl *CartController) writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "购物车行不存在"})
	case errors.Is(err, service.ErrCartItemForbidden):
		c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "Forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "操作失败: " + err.Error()})
	}
}
