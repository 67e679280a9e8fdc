package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessPayment_模拟成功(t *testing.T) {
	svc := NewPaymentService()

	result, err := svc.ProcessPayment(context.Background(), 1, 119.8)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "1234567890", result.TransactionID)
}

func TestRefundPayment_回传交易号(t *testing.T) {
	svc := NewPaymentService()

	result, err := svc.RefundPayment(context.Background(), "tx-42")
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "tx-42", result.TransactionID)
}
