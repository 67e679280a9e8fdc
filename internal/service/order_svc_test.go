package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/repository"
)

func newOrderTestService(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Product{}, &model.ProductVariant{},
		&model.Order{}, &model.OrderItem{},
	); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}

	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func TestCreateOrder_扣减变体库存(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	product := model.Product{Title: "Camiseta", Price: 59.9}
	db.Create(&product)
	variant := model.ProductVariant{ProductID: product.ID, SKU: "CAM-M", Stock: 10}
	db.Create(&variant)

	order, err := svc.CreateOrder(ctx, "user-1", &dto.CreateOrderReq{
		Total: 119.8,
		Items: []dto.OrderItemReq{
			{ProductID: product.ID, VariantID: &variant.ID, Quantity: 2, Price: 59.9},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Status != model.OrderStatusPending {
		t.Errorf("Status = %q, want pending", order.Status)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Errorf("订单行错误: %+v", order.Items)
	}

	var updated model.ProductVariant
	db.First(&updated, variant.ID)
	if updated.Stock != 8 {
		t.Errorf("Stock = %d, want 8", updated.Stock)
	}
}

func TestCreateOrder_无变体行不扣库存(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	product := model.Product{Title: "Caneca", Price: 29.9}
	db.Create(&product)

	order, err := svc.CreateOrder(ctx, "user-1", &dto.CreateOrderReq{
		Total: 29.9,
		Items: []dto.OrderItemReq{
			{ProductID: product.ID, Quantity: 1, Price: 29.9},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Items[0].VariantID != nil {
		t.Errorf("VariantID 应为 nil")
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	product := model.Product{Title: "Camiseta", Price: 59.9}
	db.Create(&product)
	order, _ := svc.CreateOrder(ctx, "user-1", &dto.CreateOrderReq{
		Total: 59.9,
		Items: []dto.OrderItemReq{{ProductID: product.ID, Quantity: 1, Price: 59.9}},
	})

	updated, err := svc.UpdateOrderStatus(ctx, order.ID, model.OrderStatusPaid)
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if updated.Status != model.OrderStatusPaid {
		t.Errorf("Status = %q, want paid", updated.Status)
	}

	if _, err := svc.UpdateOrderStatus(ctx, order.ID, "enviado_para_marte"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Errorf("err = %v, want ErrInvalidOrderStatus", err)
	}
}

func TestGetUserOrders_按用户隔离(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	product := model.Product{Title: "Camiseta", Price: 59.9}
	db.Create(&product)
	item := []dto.OrderItemReq{{ProductID: product.ID, Quantity: 1, Price: 59.9}}

	svc.CreateOrder(ctx, "user-1", &dto.CreateOrderReq{Total: 59.9, Items: item})
	svc.CreateOrder(ctx, "user-1", &dto.CreateOrderReq{Total: 59.9, Items: item})
	svc.CreateOrder(ctx, "user-2", &dto.CreateOrderReq{Total: 59.9, Items: item})

	orders, err := svc.GetUserOrders(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("orders = %d, want 2", len(orders))
	}

	all, _ := svc.GetAllOrders(ctx)
	if len(all) != 3 {
		t.Errorf("全部订单 = %d, want 3", len(all))
	}
}

func TestDeleteOrder(t *testing.T) {
	svc, db := newOrderTestService(t)
	ctx := context.Background()

	product := model.Product{Title: "Camiseta", Price: 59.9}
	db.Create(&product)
	order, _ := svc.CreateOrder(ctx, "user-1", &dto.CreateOrderReq{
		Total: 59.9,
		Items: []dto.OrderItemReq{{ProductID: product.ID, Quantity: 1, Price: 59.9}},
	})

	if err := svc.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if _, err := svc.GetOrderByID(ctx, order.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}
