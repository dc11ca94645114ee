package transport

type CartInsertRequest struct {
	OptionID uint  `json:"option_id"`
	Quantity int64 `json:"quantity"`
}

type CartUpdateRequest struct {
	CartID   uint  `json:"cart_id"`
	Quantity int64 `json:"quantity"`
}

type CartDeleteRequest struct {
	CartID uint `json:"cart_id"`
}

type CartOptionView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type CartItemView struct {
	OptionID uint           `json:"option_id"`
	Option   CartOptionView `json:"option"`
	Quantity int64          `json:"quantity"`
	Price    int64          `json:"price"`
}

type CartProductView struct {
	ProductID   uint           `json:"product_id"`
	ProductName string         `json:"product_name"`
	Items       []CartItemView `json:"items"`
}

type CartResponse struct {
	Products   []CartProductView `json:"products"`
	TotalPrice int64             `json:"total_price"`
}

type UpdatedCartView struct {
	CartID     uint   `json:"cart_id"`
	OptionID   uint   `json:"option_id"`
	OptionName string `json:"option_name"`
	Quantity   int64  `json:"quantity"`
	Price      int64  `json:"price"`
}

type CartUpdateResponse struct {
	Items      []UpdatedCartView `json:"items"`
	TotalPrice int64             `json:"total_price"`
}

type PatchProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Price       *int64  `json:"price"`
}

type PatchOptionRequest struct {
	Name  *string `json:"name"`
	Price *int64  `json:"price"`
}

type OptionStockUpdateRequest struct {
	OptionID uint  `json:"option_id"`
	Stock    int64 `json:"stock"`
}

type CreateProductOption struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int64  `json:"stock"`
}

type CreateProductRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Image       string                `json:"image"`
	Price       int64                 `json:"price"`
	Options     []CreateProductOption `json:"options"`
}

type ProductOptionView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int64  `json:"stock"`
}

type ProductDetailResponse struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Price       int64               `json:"price"`
	Options     []ProductOptionView `json:"options"`
}
