package booking

import (
	"context"
	"fmt"
	"strings"

	bookingRepo "salonhub/database/repository/booking"
	"salonhub/models"
	"salonhub/services/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	repo      bookingRepo.BookingRepository
	staff     StaffDirectory
	branches  BranchLookup
	hours     HoursProvider
	tasks     TaskScheduler
	publisher Publisher
	logger    *zap.Logger
}

// Option configures optional collaborators.
type Option func(*DefaultBookingService)

func WithTasks(t TaskScheduler) Option {
	return func(s *DefaultBookingService) { s.tasks = t }
}

func WithPublisher(p Publisher) Option {
	return func(s *DefaultBookingService) { s.publisher = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *DefaultBookingService) { s.logger = l }
}

func NewBookingService(repo bookingRepo.BookingRepository, staff StaffDirectory, branches BranchLookup, hours HoursProvider, opts ...Option) *DefaultBookingService {
	s := &DefaultBookingService{
		repo:     repo,
		staff:    staff,
		branches: branches,
		hours:    hours,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DefaultBookingService) validate(ctx context.Context, in models.BookingInput) error {
	var hours schedule.EnabledHours
	if strings.TrimSpace(in.BranchID) != "" {
		h, err := s.hours.EnabledHours(ctx, in.BranchID)
		if err != nil {
			return fmt.Errorf("failed to load booking hours: %w", err)
		}
		hours = h
	}
	if err := schedule.ValidateBookingForm(schedule.FormFromInput(in), hours); err != nil {
		return err
	}
	if in.Status != "" && !models.ValidBookingStatus(in.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	return nil
}

// apply copies the form onto b and recomputes the derived totals.
func (s *DefaultBookingService) apply(ctx context.Context, b *models.Booking, in models.BookingInput) {
	if in.CustomerID != "" {
		b.CustomerID = in.CustomerID
	}
	b.CustomerName = strings.TrimSpace(in.CustomerName)
	b.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	b.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	b.Services = in.Services
	b.Date = in.Date
	b.Time = strings.TrimSpace(in.Time)
	b.BranchID = in.BranchID
	b.Staff = strings.TrimSpace(in.Staff)
	b.StaffID = in.StaffID
	b.PaymentMethod = in.PaymentMethod
	b.Tip = in.Tip
	b.Discount = in.Discount
	b.CardLast4 = in.CardLast4
	b.TaxNumber = in.TaxNumber
	b.EmailConfirmation = in.EmailConfirmation
	b.SMSConfirmation = in.SMSConfirmation
	b.Notes = in.Notes

	if in.Status != "" {
		b.Status = in.Status
	}
	if b.Status == "" {
		b.Status = models.BookingUpcoming
	}
	if in.PaymentStatus != "" {
		b.PaymentStatus = in.PaymentStatus
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentPending
	}

	b.BranchName = ""
	if s.branches != nil {
		if br, err := s.branches.GetByID(ctx, in.BranchID); err == nil {
			b.BranchName = br.Name
		}
	}
	schedule.ApplyTotals(b)
}

func (s *DefaultBookingService) Create(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	b := &models.Booking{}
	b.ID = uuid.NewString()
	s.apply(ctx, b, in)

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("booking created",
		zap.String("id", b.ID), zap.String("branch", b.BranchID),
		zap.String("date", b.Date.Day()), zap.String("time", b.Time))

	s.publish("insert", b)
	s.scheduleFollowUps(ctx, b, true)
	return b, nil
}

func (s *DefaultBookingService) Update(ctx context.Context, id string, in models.BookingInput) (*models.Booking, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	s.apply(ctx, existing, in)

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, notFound(err, id)
	}
	s.publish("update", existing)
	s.scheduleFollowUps(ctx, existing, false)
	return existing, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return b, nil
}

func (s *DefaultBookingService) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	if f.Status != "" && !models.ValidBookingStatus(f.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := models.ParseDay(d); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
	}
	return s.repo.List(ctx, f)
}

func (s *DefaultBookingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, id)
	}
	if s.publisher != nil {
		s.publisher.Publish(models.BookingEvent{Op: "delete", ID: id})
	}
	return nil
}

// SetStatus is the operator's manual status change; nothing else moves status.
func (s *DefaultBookingService) SetStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, notFound(err, id)
	}
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish("update", b)
	return b, nil
}

func (s *DefaultBookingService) publish(op string, b *models.Booking) {
	if s.publisher == nil {
		return
	}
	cp := *b
	s.publisher.Publish(models.BookingEvent{Op: op, ID: b.ID, Booking: &cp})
}

// scheduleFollowUps enqueues notifications; queue failures never fail the write.
func (s *DefaultBookingService) scheduleFollowUps(ctx context.Context, b *models.Booking, created bool) {
	if s.tasks == nil {
		return
	}
	if created {
		if err := s.tasks.ScheduleConfirmation(ctx, b); err != nil {
			s.logger.Warn("failed to schedule confirmation", zap.String("booking", b.ID), zap.Error(err))
		}
	}
	if err := s.tasks.ScheduleReminder(ctx, b); err != nil {
		s.logger.Warn("failed to schedule reminder", zap.String("booking", b.ID), zap.Error(err))
	}
}
