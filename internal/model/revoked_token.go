package model

import "time"

// RevokedToken 已注销令牌黑名单，命中即拒绝，不论是否过期
// swagger:model RevokedToken
type RevokedToken struct {
	BaseModel
	JTI       string    `gorm:"size:36;uniqueIndex;not null" json:"jti"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"` // 过期后后台任务可清理
	RevokedAt time.Time `gorm:"not null" json:"revokedAt"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
