package routes

import (
	"net/http"

	controller "github.com/Abhin-Krishna-MP/CakeFarm/controllers"

	"github.com/gorilla/mux"
)

func LunchPublicRoutes(router *mux.Router, lunch *controller.LunchController) {
	router.HandleFunc("/lunch/status", lunch.CheckLunchOrderingStatus).Methods(http.MethodGet)
	router.HandleFunc("/lunch/products", lunch.GetLunchProducts).Methods(http.MethodGet)
}

func LunchAdminRoutes(router *mux.Router, lunch *controller.LunchController) {
	router.HandleFunc("/lunch/settings", lunch.GetLunchSettings).Methods(http.MethodGet)
	router.HandleFunc("/lunch/settings", lunch.UpdateLunchSettings).Methods(http.MethodPut)
}
