package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/harentsoaR/clinic-api/internal/models"
	"go.uber.org/zap"
)

const textbeltURL = "https://textbelt.com/text"

// Notifier is told about bookings once they are stored.
type Notifier interface {
	BookingConfirmed(booking models.Booking)
}

type NopNotifier struct{}

func (NopNotifier) BookingConfirmed(models.Booking) {}

// NotificationService sends booking confirmations by SMS through Textbelt.
type NotificationService struct {
	apiKey   string
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

func NewNotificationService(apiKey string, log *zap.Logger) *NotificationService {
	return &NotificationService{
		apiKey:   apiKey,
		endpoint: textbeltURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

// BookingConfirmed sends in the background so it never delays the response.
func (s *NotificationService) BookingConfirmed(booking models.Booking) {
	if s.apiKey == "" || booking.Phone == "" {
		s.log.Debug("sms not sent", zap.String("patient", booking.Patient), zap.Bool("has_phone", booking.Phone != ""))
		return
	}

	message := fmt.Sprintf("Appointment confirmed: %s on %s", booking.Treatment, booking.Date)
	if booking.Slot != "" {
		message += " at " + booking.Slot
	}
	message += "."

	go func() {
		if err := s.send(context.Background(), booking.Phone, message); err != nil {
			s.log.Warn("sms delivery failed", zap.String("patient", booking.Patient), zap.Error(err))
		}
	}()
}

func (s *NotificationService) send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("textbelt response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}
	s.log.Info("sms sent", zap.String("phone", phone))
	return nil
}
