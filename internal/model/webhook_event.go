package model

import "gorm.io/datatypes"

// WebhookEvent 平台 webhook 回调记录
// 原始报文落库，排查缓存失效问题时有据可查
type WebhookEvent struct {
	BaseModel
	Topic   string         `gorm:"size:100;index" json:"topic"`
	Payload datatypes.JSON `gorm:"type:jsonb" json:"payload"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
