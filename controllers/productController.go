package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Abhin-Krishna-MP/CakeFarm/models"
	"github.com/Abhin-Krishna-MP/CakeFarm/store"
)

type ProductController struct {
	products *store.ProductStore
}

func NewProductController(products *store.ProductStore) *ProductController {
	return &ProductController{products: products}
}

func (c *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var (
		products []models.Product
		err      error
	)

	if categoryId := r.URL.Query().Get("categoryId"); categoryId != "" {
		products, err = c.products.ListByCategory(ctx, categoryId)
	} else {
		products, err = c.products.ListAll(ctx)
	}
	if err != nil {
		writeError(w, err, "Error retrieving products")
		return
	}

	writeJSON(w, http.StatusOK, "Products retrieved successfully", map[string]interface{}{
		"products": products,
	})
}

func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	productId := mux.Vars(r)["product_id"]

	product, err := c.products.FindProductById(ctx, productId)
	if err != nil {
		writeError(w, err, "Error retrieving product")
		return
	}
	if product == nil {
		writeJSON(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, "Product retrieved successfully", map[string]interface{}{
		"product": product,
	})
}

func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErr := validate.Struct(product); validationErr != nil {
		writeJSON(w, http.StatusBadRequest, validationErr.Error(), nil)
		return
	}

	if err := c.products.Create(ctx, &product); err != nil {
		writeError(w, err, "Product creation failed")
		return
	}

	writeJSON(w, http.StatusCreated, "Product created successfully", map[string]interface{}{
		"product": product,
	})
}

// allowed product update fields; anything else in the body is dropped
var productUpdateFields = []string{
	"productName", "image", "rating", "description",
	"vegetarian", "price", "stock", "categoryId", "isLunchItem",
}

func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	productId := mux.Vars(r)["product_id"]

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	updateObj := bson.M{}
	for _, field := range productUpdateFields {
		if value, ok := body[field]; ok {
			updateObj[field] = value
		}
	}

	if len(updateObj) == 0 {
		writeJSON(w, http.StatusBadRequest, "No fields to update", nil)
		return
	}

	matched, err := c.products.Update(ctx, productId, updateObj)
	if err != nil {
		writeError(w, err, "Product update failed")
		return
	}
	if !matched {
		writeJSON(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	updatedProduct, err := c.products.FindProductById(ctx, productId)
	if err != nil {
		writeError(w, err, "Error retrieving updated product")
		return
	}

	writeJSON(w, http.StatusOK, "Product updated successfully", map[string]interface{}{
		"updatedProduct": updatedProduct,
	})
}

func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	productId := mux.Vars(r)["product_id"]

	deleted, err := c.products.Delete(ctx, productId)
	if err != nil {
		writeError(w, err, "Error deleting product")
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, "Product deleted successfully", nil)
}
