package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"salonhub/models"

	"firebase.google.com/go/v4/messaging"
)

type fakeEmail struct{ sent []string }

func (f *fakeEmail) Send(to, subject, body string) error {
	f.sent = append(f.sent, to+"|"+subject+"|"+body)
	return nil
}

type fakeSMS struct {
	sent []string
	err  error
}

func (f *fakeSMS) Send(_ context.Context, to, body string) error {
	f.sent = append(f.sent, to)
	return f.err
}

func (f *fakeSMS) ProviderID() string { return "fake" }

type fakePush struct{ msgs []*messaging.Message }

func (f *fakePush) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.msgs = append(f.msgs, m)
	return "msg-id", nil
}

type fakeUsers struct {
	getByID func(ctx context.Context, id string) (*models.User, error)
}

func (f fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.getByID(ctx, id)
}

type fakeSettings struct{ cfg models.NotificationSettings }

func (f fakeSettings) GetNotificationSettings(context.Context) (models.NotificationSettings, error) {
	return f.cfg, nil
}

func testBooking() *models.Booking {
	b := &models.Booking{
		CustomerID:        "u1",
		CustomerName:      "Jane",
		CustomerEmail:     "jane@example.com",
		CustomerPhone:     "555",
		Time:              "14:00",
		BranchName:        "Downtown",
		Staff:             "Alice",
		Status:            models.BookingUpcoming,
		EmailConfirmation: true,
		SMSConfirmation:   true,
		Services:          []models.ServiceLine{{Name: "Cut"}},
	}
	b.ID = "b1"
	d, _ := models.ParseDay("2025-06-01")
	b.Date = d
	return b
}

func newTestService(t *testing.T, cfg models.NotificationSettings, sms *fakeSMS) (*DefaultNotificationService, *fakeEmail, *fakePush) {
	t.Helper()
	email := &fakeEmail{}
	push := &fakePush{}
	users := fakeUsers{getByID: func(_ context.Context, id string) (*models.User, error) {
		return &models.User{Role: models.RoleCustomer, FCMToken: "tok-" + id}, nil
	}}
	svc, err := NewDefaultNotificationService(users, fakeSettings{cfg: cfg}, email, sms, push)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	return svc, email, push
}

func TestConfirmationUsesEnabledChannels(t *testing.T) {
	cfg := models.DefaultNotificationSettings()
	sms := &fakeSMS{}
	svc, email, push := newTestService(t, cfg, sms)

	if err := svc.NotifyBookingConfirmation(context.Background(), testBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(email.sent) != 1 || !strings.Contains(email.sent[0], "2025-06-01 at 14:00 at Downtown") {
		t.Fatalf("unexpected email %v", email.sent)
	}
	if len(sms.sent) != 0 {
		t.Fatalf("sms disabled globally, got %v", sms.sent)
	}
	if len(push.msgs) != 1 || push.msgs[0].Token != "tok-u1" || push.msgs[0].Data["bookingId"] != "b1" {
		t.Fatalf("unexpected push %+v", push.msgs)
	}
}

func TestConfirmationRespectsBookingFlags(t *testing.T) {
	cfg := models.DefaultNotificationSettings()
	cfg.SMSEnabled = true
	sms := &fakeSMS{}
	svc, email, _ := newTestService(t, cfg, sms)

	b := testBooking()
	b.EmailConfirmation = false
	if err := svc.NotifyBookingConfirmation(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(email.sent) != 0 {
		t.Fatalf("email opted out, got %v", email.sent)
	}
	if len(sms.sent) != 1 {
		t.Fatalf("expected one sms, got %v", sms.sent)
	}
}

func TestConfirmationsSwitchedOff(t *testing.T) {
	cfg := models.DefaultNotificationSettings()
	cfg.BookingConfirmations = false
	svc, email, push := newTestService(t, cfg, &fakeSMS{})
	if err := svc.NotifyBookingConfirmation(context.Background(), testBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(email.sent)+len(push.msgs) != 0 {
		t.Fatalf("nothing should be sent")
	}
}

func TestReminderSkipsCancelled(t *testing.T) {
	svc, email, _ := newTestService(t, models.DefaultNotificationSettings(), &fakeSMS{})
	b := testBooking()
	b.Status = models.BookingCancelled
	if err := svc.NotifyBookingReminder(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(email.sent) != 0 {
		t.Fatalf("cancelled booking should not be reminded")
	}
}

func TestChannelFailuresAreJoined(t *testing.T) {
	cfg := models.DefaultNotificationSettings()
	cfg.SMSEnabled = true
	boom := errors.New("gateway down")
	svc, email, _ := newTestService(t, cfg, &fakeSMS{err: boom})
	err := svc.NotifyBookingReminder(context.Background(), testBooking())
	if !errors.Is(err, boom) {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if len(email.sent) != 1 {
		t.Fatalf("email should still be sent when sms fails")
	}
}
