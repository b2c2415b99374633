package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Pendiente",
	OrderStatusConfirmed: "Confirmado",
	OrderStatusShipped:   "Enviado",
	OrderStatusDelivered: "Entregado",
	OrderStatusCancelled: "Cancelado",
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// OrderItem es una foto del producto al momento de la compra.
type OrderItem struct {
	ProductID    string   `json:"productId"`
	VariantID    string   `json:"variantId"`
	ProductName  string   `json:"productName"`
	VariantLabel string   `json:"variantLabel"`
	Price        int64    `json:"price"`
	Quantity     int      `json:"quantity"`
	Image        Gradient `json:"image"`
}

func (it OrderItem) LineTotal() int64 { return it.Price * int64(it.Quantity) }

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	UserName        string      `json:"userName"`
	UserEmail       string      `json:"userEmail"`
	Items           []OrderItem `json:"items"`
	Subtotal        int64       `json:"subtotal"`
	Shipping        int64       `json:"shipping"`
	Total           int64       `json:"total"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	Phone           string      `json:"phone"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// NewOrder son los datos que aporta el checkout.
type NewOrder struct {
	Items           []OrderItem
	ShippingAddress string
	Phone           string
	Notes           string
}

type OrdersOverview struct {
	Revenue     int64   `json:"revenue"`
	Pending     int     `json:"pending"`
	TotalOrders int     `json:"totalOrders"`
	Recent      []Order `json:"recent"`
}

type CustomerSummary struct {
	User       User  `json:"user"`
	Orders     int   `json:"orders"`
	TotalSpent int64 `json:"totalSpent"`
}
