package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/finddoctor/scheduling-api/internal/model"
)

// Service sends patient-facing appointment mails. Delivery is best
// effort: the booking path never blocks on it, the worker consumes
// appointment events and calls this asynchronously.
type Service interface {
	SendBookingConfirmation(ctx context.Context, apt *model.Appointment) error
	SendCancellationNotice(ctx context.Context, apt *model.Appointment) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(_ context.Context, apt *model.Appointment) error {
	subject := "Appointment confirmed"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment is booked for %s at %s.\n\nIf you need to reschedule, please cancel this appointment and book a new time.",
		apt.PatientName, apt.AppointmentDate, apt.AppointmentTime,
	)
	return s.send(apt.PatientEmail, subject, body)
}

func (s *smtpService) SendCancellationNotice(_ context.Context, apt *model.Appointment) error {
	subject := "Appointment cancelled"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment on %s at %s has been cancelled.",
		apt.PatientName, apt.AppointmentDate, apt.AppointmentTime,
	)
	return s.send(apt.PatientEmail, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
