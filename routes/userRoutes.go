package routes

import (
	"net/http"

	controller "github.com/Abhin-Krishna-MP/CakeFarm/controllers"

	"github.com/gorilla/mux"
)

func UserPublicRoutes(router *mux.Router, users *controller.UserController) {
	router.HandleFunc("/users/signup", users.Signup).Methods(http.MethodPost)
	router.HandleFunc("/users/login", users.Login).Methods(http.MethodPost)
}

func UserProtectedRoutes(router *mux.Router, users *controller.UserController) {
	router.HandleFunc("/users/profile", users.GetProfile).Methods(http.MethodGet)
	router.HandleFunc("/users/profile", users.UpdateProfile).Methods(http.MethodPatch)
}
