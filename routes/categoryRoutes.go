package routes

import (
	"net/http"

	controller "github.com/Abhin-Krishna-MP/CakeFarm/controllers"

	"github.com/gorilla/mux"
)

func CategoryPublicRoutes(router *mux.Router, categories *controller.CategoryController) {
	router.HandleFunc("/categories", categories.GetCategories).Methods(http.MethodGet)
}

func CategoryAdminRoutes(router *mux.Router, categories *controller.CategoryController) {
	router.HandleFunc("/categories", categories.CreateCategory).Methods(http.MethodPost)
	router.HandleFunc("/categories/{category_id}", categories.UpdateCategory).Methods(http.MethodPatch)
	router.HandleFunc("/categories/{category_id}", categories.DeleteCategory).Methods(http.MethodDelete)
}
