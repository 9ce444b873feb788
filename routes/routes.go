package routes

import (
	"github.com/gorilla/mux"

	"pizzeria-go/controllers"
	"pizzeria-go/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	menuController *controllers.MenuController,
	cartController *controllers.CartController,
	builderController *controllers.BuilderController,
	addressController *controllers.AddressController,
	orderController *controllers.OrderController,
) {
	// Public routes
	router.HandleFunc("/register", userController.Register).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/menu", menuController.GetMenu).Methods("GET")
	router.HandleFunc("/menu/{id}", menuController.GetMenuItem).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/logout", userController.Logout).Methods("POST")
	protected.HandleFunc("/profile", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", userController.UpdateProfile).Methods("PUT")

	// Cart routes
	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart", cartController.ClearCart).Methods("DELETE")
	protected.HandleFunc("/cart/items/{id}", cartController.UpdateQuantity).Methods("PUT")
	protected.HandleFunc("/cart/items/{id}", cartController.RemoveFromCart).Methods("DELETE")

	// Pizza builder routes
	protected.HandleFunc("/builder", builderController.GetComposition).Methods("GET")
	protected.HandleFunc("/builder/ingredients", builderController.AddIngredient).Methods("POST")
	protected.HandleFunc("/builder/ingredients/{id}", builderController.RemoveIngredient).Methods("DELETE")
	protected.HandleFunc("/builder/reset", builderController.ResetBuilder).Methods("POST")
	protected.HandleFunc("/builder/commit", builderController.Commit).Methods("POST")

	// Address routes
	protected.HandleFunc("/addresses", addressController.ListAddresses).Methods("GET")
	protected.HandleFunc("/addresses", addressController.CreateAddress).Methods("POST")
	protected.HandleFunc("/addresses/{id}", addressController.UpdateAddress).Methods("PUT")
	protected.HandleFunc("/addresses/{id}", addressController.DeleteAddress).Methods("DELETE")
	protected.HandleFunc("/addresses/{id}/default", addressController.SetDefaultAddress).Methods("POST")

	// Order routes
	protected.HandleFunc("/order", orderController.PlaceOrder).Methods("POST")
	protected.HandleFunc("/orders", orderController.GetOrders).Methods("GET")

	// Admin routes
	admin := router.PathPrefix("/menu").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("", menuController.CreateMenuItem).Methods("POST")
	admin.HandleFunc("/{id}", menuController.UpdateMenuItem).Methods("PUT")
	admin.HandleFunc("/{id}", menuController.DeleteMenuItem).Methods("DELETE")
}
