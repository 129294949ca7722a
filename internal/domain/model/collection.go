package model

// 商品カテゴリ（コレクション）
type Collection struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(100);not null" json:"title"`
}
