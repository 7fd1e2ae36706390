package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	recordsRepo "salonhub/database/repository/records"
	"salonhub/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrInvalidRange = errors.New("invalid report range")

// BookingSource is the slice of the booking repository reports read.
type BookingSource interface {
	Aggregate(ctx context.Context, from, to time.Time, branchID string) ([]models.BookingAggregate, error)
	ListStaleUpcoming(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
}

// ExpenseSource lists expense records.
type ExpenseSource interface {
	List(ctx context.Context, opts recordsRepo.ListOptions) ([]models.Expense, error)
}

type ReportService struct {
	bookings BookingSource
	expenses ExpenseSource
	currency string
	now      func() time.Time
}

func NewReportService(bookings BookingSource, expenses ExpenseSource, currency string) *ReportService {
	return &ReportService{bookings: bookings, expenses: expenses, currency: currency, now: time.Now}
}

func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// Summary reports bookings, revenue and expenses for the inclusive day range
// [from, to]. Cancelled bookings count towards ByStatus only.
func (s *ReportService) Summary(ctx context.Context, from, to, branchID string) (*models.ReportSummary, error) {
	start, err := models.ParseDay(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	end, err := models.ParseDay(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if end.Before(start.Time) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrInvalidRange, to, from)
	}
	if branchID == "" {
		branchID = "all"
	}

	groups, err := s.bookings.Aggregate(ctx, start.Time, end.AddDate(0, 0, 1), branchID)
	if err != nil {
		return nil, err
	}

	out := &models.ReportSummary{
		From:     from,
		To:       to,
		BranchID: branchID,
		Currency: s.currency,
		ByStatus: map[string]int{},
		ByStaff:  []models.StaffPerformance{},
	}
	revenue := decimal.Zero
	type staffTotals struct {
		bookings int
		revenue  decimal.Decimal
	}
	perStaff := map[string]*staffTotals{}
	for _, g := range groups {
		out.Bookings += g.Count
		out.ByStatus[g.Status] += g.Count
		if g.Status == models.BookingCancelled {
			continue
		}
		r := money(g.Revenue)
		revenue = revenue.Add(r)
		out.BookedMinutes += g.Minutes

		name := g.Staff
		if name == "" {
			name = "Unassigned"
		}
		st, ok := perStaff[name]
		if !ok {
			st = &staffTotals{revenue: decimal.Zero}
			perStaff[name] = st
		}
		st.bookings += g.Count
		st.revenue = st.revenue.Add(r)
	}
	for name, st := range perStaff {
		out.ByStaff = append(out.ByStaff, models.StaffPerformance{Staff: name, Bookings: st.bookings, Revenue: st.revenue.StringFixed(2)})
	}
	sort.Slice(out.ByStaff, func(i, j int) bool {
		ri, _ := decimal.NewFromString(out.ByStaff[i].Revenue)
		rj, _ := decimal.NewFromString(out.ByStaff[j].Revenue)
		if !ri.Equal(rj) {
			return ri.GreaterThan(rj)
		}
		return out.ByStaff[i].Staff < out.ByStaff[j].Staff
	})

	expenses, err := s.expenseTotal(ctx, from, to, branchID)
	if err != nil {
		return nil, err
	}
	out.Revenue = revenue.StringFixed(2)
	out.Expenses = expenses.StringFixed(2)
	out.Net = revenue.Sub(expenses).StringFixed(2)

	stale, err := s.StaleUpcoming(ctx)
	if err != nil {
		return nil, err
	}
	out.StaleUpcoming = len(stale)
	return out, nil
}

// expenseTotal sums expenses dated within [from, to]. Dates are compared as
// calendar days so every stored date shape counts.
func (s *ReportService) expenseTotal(ctx context.Context, from, to, branchID string) (decimal.Decimal, error) {
	opts := recordsRepo.ListOptions{Filter: bson.M{}}
	if branchID != "all" {
		opts.Filter["branchId"] = branchID
	}
	items, err := s.expenses.List(ctx, opts)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range items {
		day := e.Date.Day()
		if day == "" || day < from || day > to {
			continue
		}
		total = total.Add(money(e.Amount.Float()))
	}
	return total, nil
}

// StaleUpcoming lists bookings still marked upcoming from before today.
// Status is operator-set, so these are reported, never changed.
func (s *ReportService) StaleUpcoming(ctx context.Context) ([]models.Booking, error) {
	now := s.now().In(models.DayLocation())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.bookings.ListStaleUpcoming(ctx, today)
}
