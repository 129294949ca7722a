package model

import "time"

// カートはランダムなUUIDで引く（連番にしない＝推測防止）。
// 注文確定で削除されるので使い捨て。
type Cart struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"cart_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
