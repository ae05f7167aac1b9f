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

type CategoryController struct {
	categories *store.CategoryStore
}

func NewCategoryController(categories *store.CategoryStore) *CategoryController {
	return &CategoryController{categories: categories}
}

func (c *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	categories, err := c.categories.ListAll(ctx)
	if err != nil {
		writeError(w, err, "Error retrieving categories")
		return
	}

	writeJSON(w, http.StatusOK, "Categories retrieved successfully", map[string]interface{}{
		"categories": categories,
	})
}

func (c *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErr := validate.Struct(category); validationErr != nil {
		writeJSON(w, http.StatusBadRequest, "Provide a category name", nil)
		return
	}

	if err := c.categories.Create(ctx, &category); err != nil {
		writeError(w, err, "Category creation failed")
		return
	}

	writeJSON(w, http.StatusCreated, "Category created successfully", nil)
}

func (c *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	categoryId := mux.Vars(r)["category_id"]

	var requestBody struct {
		CategoryName  *string `json:"categoryName"`
		Description   *string `json:"description"`
		CategoryImage *string `json:"categoryImage"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	updateObj := bson.M{}
	if requestBody.CategoryName != nil {
		updateObj["categoryName"] = *requestBody.CategoryName
	}
	if requestBody.Description != nil {
		updateObj["description"] = *requestBody.Description
	}
	if requestBody.CategoryImage != nil {
		updateObj["categoryImage"] = *requestBody.CategoryImage
	}

	if len(updateObj) == 0 {
		writeJSON(w, http.StatusBadRequest, "No fields to update", nil)
		return
	}

	matched, err := c.categories.Update(ctx, categoryId, updateObj)
	if err != nil {
		writeError(w, err, "Category update failed")
		return
	}
	if !matched {
		writeJSON(w, http.StatusNotFound, "Category not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, "Category updated successfully", nil)
}

func (c *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	categoryId := mux.Vars(r)["category_id"]

	deleted, err := c.categories.Delete(ctx, categoryId)
	if err != nil {
		writeError(w, err, "Error deleting category")
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, "Category not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, "Category deleted successfully", nil)
}
