package handlers

import (
	"salonhub/models"
	"salonhub/utils"
)

// HandlerBundle groups every endpoint handler for the router.
type HandlerBundle struct {
	Sessions utils.SessionStore

	Users    *UserHandler
	Bookings *BookingHandler
	Calendar *CalendarHandler
	Invoices *InvoiceHandler
	Settings *SettingsHandler
	Reports  *ReportHandler
	Storage  *StorageHandler
	Cart     *CartHandler
	Feedback *FeedbackHandler
	Staff    *StaffHandler

	Branches   *CRUDHandler[models.Branch]
	Services   *CRUDHandler[models.Service]
	Products   *CRUDHandler[models.Product]
	Categories *CRUDHandler[models.Category]
	Expenses   *CRUDHandler[models.Expense]
	Feedbacks  *CRUDHandler[models.Feedback]
	Customers  *CRUDHandler[models.Customer]
	Roles      *CRUDHandler[models.Role]

	// ActiveBranches serves the public branch list.
	ActiveBranches *BranchListHandler
}
