package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Abhin-Krishna-MP/CakeFarm/services"
	"github.com/Abhin-Krishna-MP/CakeFarm/store"
)

type LunchController struct {
	lunch    *services.LunchService
	products *store.ProductStore
}

func NewLunchController(lunch *services.LunchService, products *store.ProductStore) *LunchController {
	return &LunchController{lunch: lunch, products: products}
}

// GetLunchSettings returns the deadline configuration (admin only).
func (c *LunchController) GetLunchSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	settings, err := c.lunch.GetSettings(ctx)
	if err != nil {
		writeError(w, err, "Error retrieving lunch settings")
		return
	}

	writeJSON(w, http.StatusOK, "Lunch settings fetched successfully", map[string]interface{}{
		"settings": settings,
	})
}

// UpdateLunchSettings changes the deadline or the master switch (admin only).
// The new cutoff applies to the very next admission check.
func (c *LunchController) UpdateLunchSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var requestBody struct {
		OrderDeadlineTime string `json:"orderDeadlineTime" validate:"required"`
		IsEnabled         *bool  `json:"isEnabled"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErr := validate.Struct(requestBody); validationErr != nil {
		writeJSON(w, http.StatusBadRequest, "Order deadline time is required", nil)
		return
	}

	isEnabled := true
	if requestBody.IsEnabled != nil {
		isEnabled = *requestBody.IsEnabled
	}

	settings, err := c.lunch.UpdateSettings(ctx, requestBody.OrderDeadlineTime, isEnabled)
	if err != nil {
		writeError(w, err, "Error updating lunch settings")
		return
	}

	writeJSON(w, http.StatusOK, "Lunch settings updated successfully", map[string]interface{}{
		"settings": settings,
	})
}

// CheckLunchOrderingStatus reports whether lunch ordering is open (public).
func (c *LunchController) CheckLunchOrderingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	isOpen, err := c.lunch.IsOrderingOpen(ctx)
	if err != nil {
		writeError(w, err, "Error checking lunch ordering status")
		return
	}

	settings, err := c.lunch.GetSettings(ctx)
	if err != nil {
		writeError(w, err, "Error retrieving lunch settings")
		return
	}

	writeJSON(w, http.StatusOK, "Lunch ordering status fetched successfully", map[string]interface{}{
		"isOpen":            isOpen,
		"orderDeadlineTime": settings.OrderDeadlineTime,
	})
}

// GetLunchProducts lists every product flagged as a lunch item (public).
func (c *LunchController) GetLunchProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	lunchProducts, err := c.products.ListLunchProducts(ctx)
	if err != nil {
		writeError(w, err, "Error retrieving lunch products")
		return
	}

	writeJSON(w, http.StatusOK, "Lunch products fetched successfully", map[string]interface{}{
		"products": lunchProducts,
	})
}
