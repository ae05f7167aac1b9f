package routes

import (
	"net/http"

	controller "github.com/Abhin-Krishna-MP/CakeFarm/controllers"

	"github.com/gorilla/mux"
)

func OrderPublicRoutes(router *mux.Router, orders *controller.OrderController) {
	// QR verification: the token in the path is the entire authorization.
	router.HandleFunc("/users/order/verify/{token}", orders.VerifyOrderByToken).Methods(http.MethodGet)
}

func OrderUserRoutes(router *mux.Router, orders *controller.OrderController) {
	router.HandleFunc("/users/order", orders.PlaceOrder).Methods(http.MethodPost)
	router.HandleFunc("/users/orders", orders.GetUserOrders).Methods(http.MethodGet)
}

func OrderAdminRoutes(router *mux.Router, orders *controller.OrderController) {
	router.HandleFunc("/orders", orders.GetAllOrders).Methods(http.MethodGet)
	router.HandleFunc("/order/status", orders.UpdateOrderStatus).Methods(http.MethodPatch)
	router.HandleFunc("/update-ticket-status", orders.MarkOrderDelivered).Methods(http.MethodPatch)
	router.HandleFunc("/orders/expire", orders.ExpireOrders).Methods(http.MethodPost)
}
