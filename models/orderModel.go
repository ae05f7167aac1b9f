package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Orders are created directly in StatusPlaced;
// StatusProcessing only exists as the transient default before placement.
const (
	StatusProcessing = "processing"
	StatusPlaced     = "placed"
	StatusReady      = "ready"
	StatusCompleted  = "completed"
	StatusExpired    = "expired"
	StatusCancelled  = "cancelled"
)

// Ticket status values. Independent of order status: the ticket tracks the
// physical hand-off at the counter, not the kitchen workflow.
const (
	TicketActive    = "active"
	TicketDelivered = "delivered"
)

// statusTransitions maps each status to the set of statuses an admin update
// may move it to. Terminal states have no outgoing transitions.
var statusTransitions = map[string][]string{
	StatusProcessing: {StatusPlaced, StatusCancelled},
	StatusPlaced:     {StatusReady, StatusCompleted, StatusCancelled, StatusExpired},
	StatusReady:      {StatusCompleted, StatusCancelled, StatusExpired},
	StatusCompleted:  {},
	StatusExpired:    {},
	StatusCancelled:  {},
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order in status `from` may move to `to`.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderItem struct {
	OrderItemsId string    `bson:"orderItemsId" json:"orderItemsId"`
	ProductId    string    `bson:"productId" json:"productId"`
	Quantity     int       `bson:"quantity" json:"quantity" validate:"required,min=1"`
	Subtotal     int       `bson:"subtotal" json:"subtotal" validate:"min=0"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

type OrderStatus struct {
	OrderStatusId string    `bson:"orderStatusId" json:"orderStatusId"`
	Status        string    `bson:"status" json:"status"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderId      string             `bson:"orderId" json:"orderId"`
	UserId       string             `bson:"userId" json:"userId"`
	PickUpTime   string             `bson:"pickUpTime" json:"pickUpTime" validate:"required"`
	ExpiryDate   string             `bson:"expiryDate" json:"expiryDate"`
	Total        int                `bson:"total" json:"total"`
	OrderNumber  int64              `bson:"orderNumber" json:"orderNumber"`
	OrderItems   []OrderItem        `bson:"orderItems" json:"orderItems"`
	OrderStatus  OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	OrderToken   string             `bson:"orderToken,omitempty" json:"orderToken,omitempty"`
	TicketStatus string             `bson:"ticketStatus" json:"ticketStatus"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Cart is the client-submitted order request body.
type Cart struct {
	PickUpTime string     `json:"pickUpTime" validate:"required"`
	CartItems  []CartItem `json:"cartItems" validate:"required,min=1"`
}

type CartItem struct {
	ProductId string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}
