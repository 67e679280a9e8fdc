package repository

import (
	"context"

	"gorm.io/gorm"

	"loja_backend_v1/internal/model"
)

// WebhookEventRepository webhook 记录仓储接口
type WebhookEventRepository interface {
	Create(ctx context.Context, event *model.WebhookEvent) error
	ListRecent(ctx context.Context, limit int) ([]model.WebhookEvent, error)
}

type webhookEventRepo struct {
	db *gorm.DB
}

// NewWebhookEventRepository 创建 webhook 记录仓储
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepo{db: db}
}

func (r *webhookEventRepo) Create(ctx context.Context, event *model.WebhookEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *webhookEventRepo) ListRecent(ctx context.Context, limit int) ([]model.WebhookEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []model.WebhookEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
