package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/middleware"
	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/service"
)

// OrderController 订单接口
type OrderController struct {
	orderService *service.OrderService
}

// NewOrderController 创建控制器
func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder 下单
// @Summary 创建订单并扣减库存
// @Tags Order
// @Security BearerAuth
// @Param body body dto.CreateOrderReq true "订单信息"
// @Success 201 {object} map[string]interface{}
// @Router /api/orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的订单参数: " + err.Error()})
		return
	}

	order, err := ctrl.orderService.CreateOrder(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "下单失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": order})
}

// GetUserOrders 当前用户的订单列表
// @Summary 获取当前用户订单
// @Tags Order
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/orders [get]
func (ctrl *OrderController) GetUserOrders(c *gin.Context) {
	orders, err := ctrl.orderService.GetUserOrders(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": orders})
}

// GetOrderByID 订单详情
// @Summary 获取订单详情 (仅本人或管理员)
// @Tags Order
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "订单不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	if order.UserID != middleware.GetUserID(c) && middleware.GetUserRole(c) != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": order})
}

// ==================== 管理接口 ====================

// GetAllOrders 全部订单
// @Summary 获取全部订单 (管理员)
// @Tags Order
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := ctrl.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": orders})
}

// UpdateOrderStatus 变更订单状态
// @Summary 更新订单状态 (管理员)
// @Tags Order
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Param body body dto.UpdateOrderStatusReq true "状态"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/orders/{id}/status [put]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "status is required"})
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的订单状态"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "订单不存在"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": order})
}

// DeleteOrder 删除订单
// @Summary 删除订单 (管理员)
// @Tags Order
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/orders/{id} [delete]
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}
