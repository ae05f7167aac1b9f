package routes

import (
	"net/http"

	controller "github.com/Abhin-Krishna-MP/CakeFarm/controllers"

	"github.com/gorilla/mux"
)

func ProductPublicRoutes(router *mux.Router, products *controller.ProductController) {
	router.HandleFunc("/products", products.GetProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{product_id}", products.GetProduct).Methods(http.MethodGet)
}

func ProductAdminRoutes(router *mux.Router, products *controller.ProductController) {
	router.HandleFunc("/products", products.CreateProduct).Methods(http.MethodPost)
	router.HandleFunc("/products/{product_id}", products.UpdateProduct).Methods(http.MethodPatch)
	router.HandleFunc("/products/{product_id}", products.DeleteProduct).Methods(http.MethodDelete)
}
