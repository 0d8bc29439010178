package dto

type AddToCartRequest struct {
	ProductID    int64  `json:"product_id"`
	UnitPrice    int64  `json:"unit_price"`
	VariantSize  string `json:"variant_size,omitempty"`
	VariantColor string `json:"variant_color,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type SelectLinesRequest struct {
	LineIDs  []string `json:"line_ids"`
	Selected bool     `json:"selected"`
}

type CartLineResponse struct {
	LineID       string `json:"line_id"`
	ProductID    int64  `json:"product_id"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	VariantSize  string `json:"variant_size,omitempty"`
	VariantColor string `json:"variant_color,omitempty"`
	Selected     bool   `json:"selected"`
}

type CartResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal int64              `json:"subtotal"`
}

// PaymentItem and PaymentRequest match the upstream payment API's wire format.
type PaymentItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type PaymentRequest struct {
	UserID            int64         `json:"user_id"`
	IdempotencyKey    string        `json:"idempotency_key"`
	TotalAmount       int64         `json:"total_amount"`
	Status            string        `json:"status"`
	ShippingAddressID int64         `json:"shipping_address_id"`
	Items             []PaymentItem `json:"items"`
	CVV               int           `json:"cvv,omitempty"`
}

type OrderResult struct {
	Success       bool   `json:"success"`
	OrderID       string `json:"order_id,omitempty"`
	PaymentStatus string `json:"payment_status"`
	Message       string `json:"message"`
}

type CheckoutRequest struct {
	PurchaseMethod    string `json:"purchase_method"` // COD or CARD
	CardID            int64  `json:"card_id,omitempty"`
	CVV               string `json:"cvv,omitempty"`
	ShippingAddressID int64  `json:"shipping_address_id"`
}

type OrderItemResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

type OrderResponse struct {
	OrderID        string              `json:"order_id"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"payment_status"`
	PurchaseMethod string              `json:"purchase_method"`
	TotalAmount    int64               `json:"total_amount"`
	ShippingFee    int64               `json:"shipping_fee"`
	Items          []OrderItemResponse `json:"items"`
}
