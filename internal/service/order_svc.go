package service

import (
	"context"
	"errors"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/repository"
)

// ErrInvalidOrderStatus 非法订单状态
var ErrInvalidOrderStatus = errors.New("invalid order status")

var validOrderStatuses = map[string]bool{
	model.OrderStatusPending:   true,
	model.OrderStatusPaid:      true,
	model.OrderStatusShipped:   true,
	model.OrderStatusDelivered: true,
	model.OrderStatusCanceled:  true,
}

// OrderService 订单管理
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo}
}

// CreateOrder 下单并扣减变体库存
// 库存扣减不在同一事务里，失败不回滚订单，只向上返回错误
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderReq) (*model.Order, error) {
	order := &model.Order{
		UserID: userID,
		Total:  req.Total,
		Status: model.OrderStatusPending,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if item.VariantID == nil {
			continue
		}
		if err := s.productRepo.DecrementVariantStock(ctx, *item.VariantID, item.Quantity); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// GetOrderByID 按 id 取订单 (含订单行和用户)
func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*model.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// GetUserOrders 用户的订单列表
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// GetAllOrders 全部订单 (管理端)
func (s *OrderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

// UpdateOrderStatus 变更订单状态
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	if !validOrderStatuses[status] {
		return nil, ErrInvalidOrderStatus
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, id)
}

// DeleteOrder 删除订单及订单行
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	return s.orderRepo.Delete(ctx, id)
}
