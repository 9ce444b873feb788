package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"pizzeria-go/addresses"
	"pizzeria-go/checkout"
	"pizzeria-go/controllers"
	"pizzeria-go/remote"
	"pizzeria-go/routes"
	"pizzeria-go/session"
	"pizzeria-go/storage"
	"pizzeria-go/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService (nil when no API key is configured)
	emailService := utils.NewEmailService()
	if emailService == nil {
		log.Println("SENDGRID_API_KEY not set; order confirmations disabled.")
	}

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Client-state store: file-backed when STATE_DIR is set, in-memory otherwise
	var store storage.Store
	if dir := os.Getenv("STATE_DIR"); dir != "" {
		dirStore, err := storage.NewDir(dir)
		if err != nil {
			log.Fatal(err)
		}
		store = dirStore
	} else {
		store = storage.NewMemory()
	}

	// Remote collaborators
	directory := remote.NewUserDirectory(client)
	orderService := remote.NewOrderService(client)
	addressService := remote.NewAddressService(client)
	menu := remote.NewMenu(client)

	// Domain services
	sessions := session.NewManager(directory, store)
	addressManager := addresses.NewManager(addressService)
	var mailer checkout.Mailer
	if emailService != nil {
		mailer = emailService
	}
	flow := checkout.NewFlow(orderService, mailer)

	// Initialize controllers
	userController := controllers.NewUserController(sessions, store)
	menuController := controllers.NewMenuController(menu)
	cartController := controllers.NewCartController(store)
	builderController := controllers.NewBuilderController(store, sessions)
	addressController := controllers.NewAddressController(addressManager, sessions)
	orderController := controllers.NewOrderController(flow, orderService, store, sessions)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, menuController, cartController,
		builderController, addressController, orderController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
