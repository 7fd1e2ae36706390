package repository

import (
	"salonhub/database"
	bookingRepo "salonhub/database/repository/booking"
	recordsRepo "salonhub/database/repository/records"
	settingsRepo "salonhub/database/repository/settings"
	staffRepo "salonhub/database/repository/staff"
	userRepo "salonhub/database/repository/user"
	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Re-export the repository interfaces and constructors.
type (
	BookingRepository  = bookingRepo.BookingRepository
	StaffRepository    = staffRepo.StaffRepository
	UserRepository     = userRepo.UserRepository
	SettingsRepository = settingsRepo.SettingsRepository
	ListOptions        = recordsRepo.ListOptions
)

var (
	NewMongoBookingRepo  = bookingRepo.NewMongoBookingRepo
	NewMongoStaffRepo    = staffRepo.NewMongoStaffRepo
	NewMongoUserRepo     = userRepo.NewMongoUserRepo
	NewMongoSettingsRepo = settingsRepo.NewMongoSettingsRepo
)

// Repositories bundles every store the services need.
type Repositories struct {
	Bookings       BookingRepository
	Staff          StaffRepository
	Users          UserRepository
	Settings       SettingsRepository
	Branches       recordsRepo.RecordRepository[models.Branch]
	Services       recordsRepo.RecordRepository[models.Service]
	Products       recordsRepo.RecordRepository[models.Product]
	Categories     recordsRepo.RecordRepository[models.Category]
	Expenses       recordsRepo.RecordRepository[models.Expense]
	Feedbacks      recordsRepo.RecordRepository[models.Feedback]
	Cart           recordsRepo.RecordRepository[models.CartItem]
	Customers      recordsRepo.RecordRepository[models.Customer]
	Roles          recordsRepo.RecordRepository[models.Role]
	PaymentMethods recordsRepo.RecordRepository[models.PaymentMethod]
}

func index(keys ...string) mongo.IndexModel {
	d := bson.D{}
	for _, k := range keys {
		d = append(d, bson.E{Key: k, Value: 1})
	}
	return mongo.IndexModel{Keys: d}
}

// NewMongoRepositories opens every repository against database.DB().
func NewMongoRepositories() *Repositories {
	return &Repositories{
		Bookings: NewMongoBookingRepo(),
		Staff:    NewMongoStaffRepo(),
		Users:    NewMongoUserRepo(),
		Settings: NewMongoSettingsRepo(),
		Branches: recordsRepo.NewMongoRecordRepo[models.Branch, *models.Branch](
			database.BranchesCollection, []string{"name", "city", "status"}),
		Services: recordsRepo.NewMongoRecordRepo[models.Service, *models.Service](
			database.ServicesCollection, []string{"name", "category", "price", "duration"}, index("category")),
		Products: recordsRepo.NewMongoRecordRepo[models.Product, *models.Product](
			database.ProductsCollection, []string{"name", "category", "price", "stock"}, index("category")),
		Categories: recordsRepo.NewMongoRecordRepo[models.Category, *models.Category](
			database.CategoriesCollection, []string{"name", "type"},
			mongo.IndexModel{Keys: bson.D{{Key: "type", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)}),
		Expenses: recordsRepo.NewMongoRecordRepo[models.Expense, *models.Expense](
			database.ExpensesCollection, []string{"date", "amount", "category", "title"}, index("branchId", "date")),
		Feedbacks: recordsRepo.NewMongoRecordRepo[models.Feedback, *models.Feedback](
			database.FeedbacksCollection, []string{"rating", "customerName"}, index("staffId")),
		Cart: recordsRepo.NewMongoRecordRepo[models.CartItem, *models.CartItem](
			database.CartCollection, []string{"name"}, index("customerId")),
		Customers: recordsRepo.NewMongoRecordRepo[models.Customer, *models.Customer](
			database.CustomersCollection, []string{"name", "email"}, index("userId"), index("email")),
		Roles: recordsRepo.NewMongoRecordRepo[models.Role, *models.Role](
			database.RolesCollection, []string{"name"},
			mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)}),
		PaymentMethods: recordsRepo.NewMongoRecordRepo[models.PaymentMethod, *models.PaymentMethod](
			database.PaymentMethodsCollection, []string{"name", "type"}),
	}
}
