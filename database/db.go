package database

import (
	"context"
	"log"
	"time"

	"salonhub/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	BookingsCollection       = "bookings"
	StaffCollection          = "staff"
	BranchesCollection       = "branches"
	ServicesCollection       = "services"
	ProductsCollection       = "products"
	ExpensesCollection       = "expenses"
	FeedbacksCollection      = "feedbacks"
	CategoriesCollection     = "categories"
	CartCollection           = "cart"
	CustomersCollection      = "customers"
	UsersCollection          = "users"
	RolesCollection          = "roles"
	SettingsCollection       = "settings"
	PaymentMethodsCollection = "payment_methods"
	BookingHoursCollection   = "booking_hours"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}

// DB returns the application database handle.
func DB() *mongo.Database {
	name := config.AppConfig.DatabaseName
	if name == "" {
		name = "salonhub"
	}
	return MongoClient.Database(name)
}

// Disconnect closes the global client.
func Disconnect(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
