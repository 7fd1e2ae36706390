package notification

import (
	"fmt"
	"strings"

	"salonhub/models"
)

type message struct {
	Title string
	Body  string
}

func serviceNames(b *models.Booking) string {
	names := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		return "your appointment"
	}
	return strings.Join(names, ", ")
}

func where(b *models.Booking) string {
	if b.BranchName != "" {
		return " at " + b.BranchName
	}
	return ""
}

func confirmationMessage(b *models.Booking) message {
	body := fmt.Sprintf("Hi %s, your booking for %s on %s at %s%s is confirmed.",
		b.CustomerName, serviceNames(b), b.Date.Day(), b.Time, where(b))
	if b.Staff != "" {
		body += fmt.Sprintf(" You'll be seen by %s.", b.Staff)
	}
	return message{Title: "Booking confirmed", Body: body}
}

func reminderMessage(b *models.Booking) message {
	body := fmt.Sprintf("Hi %s, a reminder of your %s appointment on %s at %s%s.",
		b.CustomerName, serviceNames(b), b.Date.Day(), b.Time, where(b))
	return message{Title: "Upcoming appointment", Body: body}
}
