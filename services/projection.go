package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

// OrderView is the grouped order shape consumed by the storefront, the admin
// dashboard and the QR verification flow. Field names are part of the client
// contract and must not change.
type OrderView struct {
	OrderId      string          `json:"orderId"`
	OrderNumber  int64           `json:"orderNumber"`
	OrderStatus  string          `json:"orderStatus"`
	Status       string          `json:"status"` // duplicate of orderStatus, kept for client compatibility
	OrderToken   string          `json:"orderToken"`
	TicketStatus string          `json:"ticketStatus"`
	PickUpTime   string          `json:"pickUpTime"`
	ExpiryDate   string          `json:"expiryDate"`
	Total        int             `json:"total"`
	UserId       string          `json:"userId"`
	User         *UserView       `json:"user"`
	Items        []OrderItemView `json:"items"`
}

// OrderItemView carries one order item plus its joined product fields. The
// product may have been deleted after the order was placed, so joined fields
// are pointers and stay null instead of erroring.
type OrderItemView struct {
	OrderItemsId string    `json:"orderItemsId"`
	ProductId    string    `json:"productId"`
	ProductName  *string   `json:"productName"`
	Image        *string   `json:"image"`
	Rating       *float64  `json:"rating"`
	Description  *string   `json:"description"`
	Vegetarian   *bool     `json:"vegetarian"`
	Price        *float64  `json:"price"`
	Quantity     int       `json:"quantity"`
	Subtotal     int       `json:"subtotal"`
	CategoryId   *string   `json:"categoryId"`
	IsLunchItem  bool      `json:"isLunchItem"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserView struct {
	Username       string `json:"username"`
	RegisterNumber string `json:"registerNumber"`
	Department     string `json:"department"`
	Semester       string `json:"semester"`
	Division       string `json:"division"`
}

// ListUserOrders returns the calling user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userId string) ([]OrderView, error) {
	orders, err := s.store.ListByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.projectOrders(ctx, orders, false)
}

// ListAllOrders returns every order with joined user details, newest first.
func (s *OrderService) ListAllOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.projectOrders(ctx, orders, true)
}

// GetOrderByToken resolves an order projection by its ticket token. The token
// is the entire authorization: anyone holding it sees the full order and
// customer details.
func (s *OrderService) GetOrderByToken(ctx context.Context, token string) (*OrderView, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: order token is required", ErrInvalidRequest)
	}

	order, err := s.store.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order not found or invalid token", ErrNotFound)
	}

	views, err := s.projectOrders(ctx, []models.Order{*order}, true)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// projectOrders builds the grouped client shape straight from the nested
// order documents, joining product (and optionally user) fields through the
// collaborator lookups. Lookups are memoized per call.
func (s *OrderService) projectOrders(ctx context.Context, orders []models.Order, includeUser bool) ([]OrderView, error) {
	productCache := make(map[string]*models.Product)
	userCache := make(map[string]*UserView)

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view := OrderView{
			OrderId:      order.OrderId,
			OrderNumber:  order.OrderNumber,
			OrderStatus:  order.OrderStatus.Status,
			Status:       order.OrderStatus.Status,
			OrderToken:   order.OrderToken,
			TicketStatus: ticketStatusOrDefault(order.TicketStatus),
			PickUpTime:   order.PickUpTime,
			ExpiryDate:   order.ExpiryDate,
			Total:        order.Total,
			UserId:       order.UserId,
			Items:        make([]OrderItemView, 0, len(order.OrderItems)),
		}

		if includeUser {
			userView, err := s.lookupUser(ctx, order.UserId, userCache)
			if err != nil {
				return nil, err
			}
			view.User = userView
		}

		for _, item := range order.OrderItems {
			product, err := s.lookupProduct(ctx, item.ProductId, productCache)
			if err != nil {
				return nil, err
			}

			itemView := OrderItemView{
				OrderItemsId: item.OrderItemsId,
				ProductId:    item.ProductId,
				Quantity:     item.Quantity,
				Subtotal:     item.Subtotal,
				CreatedAt:    item.CreatedAt,
			}
			if product != nil {
				itemView.ProductName = &product.ProductName
				itemView.Image = &product.Image
				itemView.Rating = &product.Rating
				itemView.Description = &product.Description
				itemView.Vegetarian = &product.Vegetarian
				itemView.Price = &product.Price
				itemView.CategoryId = &product.CategoryId
				itemView.IsLunchItem = product.IsLunchItem
			}
			view.Items = append(view.Items, itemView)
		}

		views = append(views, view)
	}

	return views, nil
}

func (s *OrderService) lookupProduct(ctx context.Context, productId string, cache map[string]*models.Product) (*models.Product, error) {
	if product, ok := cache[productId]; ok {
		return product, nil
	}
	product, err := s.catalog.FindProductById(ctx, productId)
	if err != nil {
		return nil, err
	}
	cache[productId] = product
	return product, nil
}

func (s *OrderService) lookupUser(ctx context.Context, userId string, cache map[string]*UserView) (*UserView, error) {
	if view, ok := cache[userId]; ok {
		return view, nil
	}
	user, err := s.users.FindUserById(ctx, userId)
	if err != nil {
		return nil, err
	}
	var view *UserView
	if user != nil {
		view = &UserView{
			Username:       user.Username,
			RegisterNumber: user.RegisterNumber,
			Department:     user.Department,
			Semester:       user.Semester,
			Division:       user.Division,
		}
	}
	cache[userId] = view
	return view, nil
}

// ticketStatusOrDefault maps legacy rows without a ticket status to active.
func ticketStatusOrDefault(status string) string {
	if status == "" {
		return models.TicketActive
	}
	return status
}
