package service

import "context"

// PaymentResult 支付结果
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

// PaymentService 支付网关占位实现
// TODO: 接入真实网关 (Stripe / Mercado Pago) 后替换模拟返回
type PaymentService struct{}

// NewPaymentService 创建支付服务
func NewPaymentService() *PaymentService {
	return &PaymentService{}
}

// ProcessPayment 模拟扣款
func (s *PaymentService) ProcessPayment(_ context.Context, orderID int64, amount float64) (*PaymentResult, error) {
	_ = orderID
	_ = amount
	return &PaymentResult{
		Success:       true,
		TransactionID: "1234567890",
		Message:       "Payment processed successfully",
	}, nil
}

// RefundPayment 模拟退款
func (s *PaymentService) RefundPayment(_ context.Context, transactionID string) (*PaymentResult, error) {
	return &PaymentResult{
		Success:       true,
		TransactionID: transactionID,
		Message:       "Payment refunded successfully",
	}, nil
}
