package invoice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"salonhub/models"
	"salonhub/services/storage"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("booking not found")

// BookingStore is the slice of the booking repository invoices need.
type BookingStore interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	SetInvoiceURL(ctx context.Context, id, url string) error
}

// BrandingSource supplies the header printed on invoices.
type BrandingSource interface {
	GetBranding(ctx context.Context) (*models.Branding, error)
}

// InvoiceService renders booking invoices and publishes them to storage.
type InvoiceService struct {
	bookings BookingStore
	branding BrandingSource
	storage  storage.StorageService
	currency string
	taxRate  float64
	now      func() time.Time
	logger   *zap.Logger
}

func NewInvoiceService(bookings BookingStore, branding BrandingSource, store storage.StorageService, currency string, taxRate float64, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		bookings: bookings,
		branding: branding,
		storage:  store,
		currency: currency,
		taxRate:  taxRate,
		now:      time.Now,
		logger:   logger,
	}
}

// Build assembles the invoice document for a booking.
func (s *InvoiceService) Build(ctx context.Context, bookingID string) (*Document, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, bookingID)
		}
		return nil, err
	}
	var brand models.Branding
	if s.branding != nil {
		if br, err := s.branding.GetBranding(ctx); err != nil {
			s.logger.Warn("invoice without branding", zap.Error(err))
		} else if br != nil {
			brand = *br
		}
	}
	lines, totals := Compute(b, s.taxRate)
	return &Document{
		Number:   Number(b.ID),
		Issued:   s.now(),
		Booking:  b,
		Branding: brand,
		Currency: s.currency,
		TaxRate:  s.taxRate,
		Lines:    lines,
		Totals:   totals,
	}, nil
}

// PDF renders the invoice and returns it with its file name.
func (s *InvoiceService) PDF(ctx context.Context, bookingID string) ([]byte, string, error) {
	doc, err := s.Build(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	data, err := Render(*doc)
	if err != nil {
		return nil, "", err
	}
	return data, doc.Number + ".pdf", nil
}

// Publish uploads the rendered invoice and records its URL on the booking.
func (s *InvoiceService) Publish(ctx context.Context, bookingID string) (string, error) {
	if s.storage == nil {
		return "", errors.New("storage is not configured")
	}
	data, name, err := s.PDF(ctx, bookingID)
	if err != nil {
		return "", err
	}
	obj, err := s.storage.Upload(ctx, bytes.NewReader(data), name, "invoices")
	if err != nil {
		return "", err
	}
	if err := s.bookings.SetInvoiceURL(ctx, bookingID, obj.URL); err != nil {
		return "", err
	}
	s.logger.Info("invoice published", zap.String("booking", bookingID), zap.String("url", obj.URL))
	return obj.URL, nil
}
