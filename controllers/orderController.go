package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	middleware "github.com/Abhin-Krishna-MP/CakeFarm/middlewares"
	"github.com/Abhin-Krishna-MP/CakeFarm/models"
	"github.com/Abhin-Krishna-MP/CakeFarm/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// PlaceOrder creates an order from the calling user's cart.
func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	userId, _, _, _ := middleware.GetUserFromContext(r)

	var cart models.Cart
	if err := json.NewDecoder(r.Body).Decode(&cart); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErr := validate.Struct(cart); validationErr != nil {
		writeJSON(w, http.StatusBadRequest, "pickUpTime and cartItems are required", nil)
		return
	}

	orderId, err := c.orders.CreateOrder(ctx, userId, cart)
	if err != nil {
		writeError(w, err, "Error creating order")
		return
	}

	writeJSON(w, http.StatusCreated, "Order created successfully", map[string]interface{}{
		"orderId": orderId,
	})
}

// GetUserOrders returns the calling user's orders, newest first.
func (c *OrderController) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	userId, _, _, _ := middleware.GetUserFromContext(r)

	userOrders, err := c.orders.ListUserOrders(ctx, userId)
	if err != nil {
		writeError(w, err, "Error while getting user orders")
		return
	}

	writeJSON(w, http.StatusOK, "Orders fetched successfully", map[string]interface{}{
		"userOrders": userOrders,
	})
}

// GetAllOrders returns every order with joined user details (admin only).
func (c *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	allOrders, err := c.orders.ListAllOrders(ctx)
	if err != nil {
		writeError(w, err, "Error while getting all orders")
		return
	}

	writeJSON(w, http.StatusOK, "Orders fetched successfully", map[string]interface{}{
		"userOrders": allOrders,
	})
}

// UpdateOrderStatus moves an order to a new status (admin only).
func (c *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var requestBody struct {
		OrderId string `json:"orderId" validate:"required"`
		Status  string `json:"status" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErr := validate.Struct(requestBody); validationErr != nil {
		writeJSON(w, http.StatusBadRequest, "orderId and status must be provided", nil)
		return
	}

	if err := c.orders.UpdateOrderStatus(ctx, requestBody.OrderId, requestBody.Status); err != nil {
		writeError(w, err, "Error updating order status")
		return
	}

	writeJSON(w, http.StatusOK, "Order updated successfully", nil)
}

// MarkOrderDelivered flips the ticket to delivered after a QR scan is
// confirmed at the counter (admin only).
func (c *OrderController) MarkOrderDelivered(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var requestBody struct {
		OrderToken string `json:"orderToken" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErr := validate.Struct(requestBody); validationErr != nil {
		writeJSON(w, http.StatusBadRequest, "orderToken is required", nil)
		return
	}

	if err := c.orders.MarkTicketDelivered(ctx, requestBody.OrderToken); err != nil {
		writeError(w, err, "Error updating ticket status")
		return
	}

	writeJSON(w, http.StatusOK, "Order marked as delivered successfully", map[string]interface{}{
		"orderToken": requestBody.OrderToken,
	})
}

// VerifyOrderByToken resolves a scanned ticket token to its order. Public:
// the token itself is the authorization.
func (c *OrderController) VerifyOrderByToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	token := mux.Vars(r)["token"]

	order, err := c.orders.GetOrderByToken(ctx, token)
	if err != nil {
		writeError(w, err, "Error retrieving order")
		return
	}

	writeJSON(w, http.StatusOK, "Order fetched successfully", map[string]interface{}{
		"order": order,
	})
}

// ExpireOrders runs the stale-order sweep (admin only; the periodic trigger
// calls this endpoint).
func (c *OrderController) ExpireOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	count, err := c.orders.ExpireStaleOrders(ctx)
	if err != nil {
		writeError(w, err, "Error expiring orders")
		return
	}

	writeJSON(w, http.StatusOK, "Expired orders processed", map[string]interface{}{
		"expired": count,
	})
}
