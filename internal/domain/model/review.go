package model

import "time"

// 商品レビュー
type Review struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Review    string    `gorm:"type:text;not null" json:"review"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
