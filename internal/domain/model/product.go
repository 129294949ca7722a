package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	//価格は小数2桁固定（numeric(10,2)）
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	//在庫数（0以上）
	Inventory    int64          `gorm:"not null" json:"inventory"`
	CollectionID int64          `gorm:"not null;index" json:"collection_id"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
