package models

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Description string `gorm:"not null"                 json:"description"`
	Image       string `json:"image"`
	Price       int64  `gorm:"not null"                 json:"price"`
}

type ProductOption struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint    `gorm:"index;not null"           json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID"     json:"-"`
	Name      string  `gorm:"not null"                 json:"name"`
	Price     int64   `gorm:"not null"                 json:"price"`
	Stock     int64   `gorm:"not null;default:0"       json:"stock"`
}

type CartItem struct {
	ID              uint          `gorm:"primaryKey;autoIncrement"             json:"id"`
	UserID          uint          `gorm:"uniqueIndex:idx_user_option;not null" json:"user_id"`
	ProductOptionID uint          `gorm:"uniqueIndex:idx_user_option;not null" json:"product_option_id"`
	ProductOption   ProductOption `gorm:"foreignKey:ProductOptionID"           json:"-"`
	Quantity        int64         `gorm:"not null;check:quantity>=0"           json:"quantity"`
}

// Price is never stored on the row, so catalog price changes
// show up on the next read.
func (i CartItem) Price() int64 {
	return i.Quantity * i.ProductOption.Price
}

func (CartItem) TableName() string {
	return "cart_items"
}
