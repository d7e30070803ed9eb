package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPaypal PaymentMethod = "paypal"
	PaymentCOD    PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentPaypal, PaymentCOD:
		return true
	}
	return false
}

type Order struct {
	gorm.Model
	OrderNumber     string        `json:"orderNumber" gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID          uint          `json:"userId" gorm:"not null;index"`
	DeliveryAddress string        `json:"deliveryAddress" gorm:"type:varchar(500);not null"`
	DeliveryCity    string        `json:"deliveryCity" gorm:"type:varchar(100);not null"`
	DeliveryZip     string        `json:"deliveryZip" gorm:"type:varchar(20);not null"`
	DeliveryPhone   string        `json:"deliveryPhone" gorm:"type:varchar(20);not null"`
	Subtotal        float64       `json:"subtotal" gorm:"not null"`
	DeliveryFee     float64       `json:"deliveryFee" gorm:"default:4.99"`
	Tax             float64       `json:"tax" gorm:"not null"`
	Total           float64       `json:"total" gorm:"not null"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" gorm:"type:varchar(20);default:'cod'"`
	Status          OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Notes           string        `json:"notes" gorm:"type:text"`
	DeliveredAt     *time.Time    `json:"deliveredAt"`
	OrderItems      []OrderItem   `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID  uint   `json:"orderId" gorm:"not null;index"`
	FoodID   uint   `json:"foodId" gorm:"not null;index"`
	FoodName string `json:"foodName" gorm:"type:varchar(200)"`
	Quantity int    `json:"quantity" gorm:"not null"`
	// Unit price frozen at order-creation time; later catalog price
	// changes must not affect existing orders.
	Price float64 `json:"price" gorm:"not null"`
}
