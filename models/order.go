package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus represents all possible states of a storefront order
type OrderStatus string

const (
	StatusPending           OrderStatus = "pending"
	StatusApproved          OrderStatus = "approved"
	StatusInProduction      OrderStatus = "in_production"
	StatusReadyForPackaging OrderStatus = "ready_for_packaging"
	StatusPackaged          OrderStatus = "packaged"
	StatusShipped           OrderStatus = "shipped"
	StatusDelivered         OrderStatus = "delivered"
	StatusCancelled         OrderStatus = "cancelled"
	StatusRejected          OrderStatus = "rejected"
)

// PaymentStatus is derived from the chosen payment method at checkout:
// cash-on-delivery stays pending, anything else is recorded completed.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// CustomerDetails is the checkout form snapshot stored with the order.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Order struct {
	ID              uint                                  `json:"id" gorm:"primaryKey"`
	OrderNumber     string                                `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerUID     string                                `json:"customer_uid" gorm:"index;not null"`
	Customer        *User                                 `json:"customer,omitempty" gorm:"foreignKey:CustomerUID;references:UID"`
	DeliveryUID     *string                               `json:"delivery_uid"`
	DeliveryAgent   *User                                 `json:"delivery_agent,omitempty" gorm:"foreignKey:DeliveryUID;references:UID"`
	CustomerDetails datatypes.JSONType[CustomerDetails]   `json:"customer_details"`
	Items           []OrderItem                           `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	TotalAmount     float64                               `json:"total_amount"`
	PaymentMethod   string                                `json:"payment_method"`
	PaymentStatus   PaymentStatus                         `json:"payment_status" gorm:"not null;default:'pending'"`
	Status          OrderStatus                           `json:"status" gorm:"not null;default:'pending'"`
	BatchNumber     string                                `json:"batch_number"`
	StatusHistory   []OrderStatusHistory                  `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time                             `json:"created_at"`
	UpdatedAt       time.Time                             `json:"updated_at"`
}

type OrderItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderID     uint    `json:"order_id" gorm:"not null"`
	ProductID   uint    `json:"product_id" gorm:"not null"`
	ProductName string  `json:"product_name"` // snapshot name
	Quantity    int     `json:"quantity" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  string      `json:"changed_by"` // UID of the user who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
