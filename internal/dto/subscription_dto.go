package dto

import (
	"encoding/json"
	"time"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
)

const dateLayout = "2006-01-02"

// CreateSubscriptionRequest keeps Amount raw so that numbers and numeric
// strings are both accepted and validated in one place.
type CreateSubscriptionRequest struct {
	PlayerID  uint            `json:"player_id"`
	Type      string          `json:"type"`
	Amount    json.RawMessage `json:"amount"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Status    string          `json:"status"`
}

type SubscriptionResponse struct {
	ID            uint    `json:"id"`
	PlayerID      uint    `json:"player_id"`
	PlayerName    string  `json:"player_name,omitempty"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Status        string  `json:"status"`
	LastPaymentID uint    `json:"last_payment_id,omitempty"`
}

func NewSubscriptionResponse(s *models.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		PlayerID:  s.PlayerID,
		Type:      s.Type,
		Amount:    s.Amount,
		StartDate: s.StartDate.Format(dateLayout),
		EndDate:   s.EndDate.Format(dateLayout),
		Status:    s.Status,
	}
}

type PaymentResponse struct {
	ID             uint    `json:"id"`
	SubscriptionID uint    `json:"subscription_id"`
	PaidAmount     float64 `json:"paid_amount"`
	PaymentDate    string  `json:"payment_date"`
	PaymentMethod  string  `json:"payment_method"`
	InvoiceNumber  string  `json:"invoice_number"`
	QRCodeData     string  `json:"qr_code_data"`
}

func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		SubscriptionID: p.SubscriptionID,
		PaidAmount:     p.PaidAmount,
		PaymentDate:    p.PaymentDate.UTC().Format(time.RFC3339),
		PaymentMethod:  p.PaymentMethod,
		InvoiceNumber:  p.InvoiceNumber,
		QRCodeData:     p.QRCodeData,
	}
}

type DashboardStats struct {
	PlayerCount         int64   `json:"player_count"`
	ActiveSubscriptions int64   `json:"active_subscriptions"`
	TotalRevenue        float64 `json:"total_revenue"`
}

type CreateSubscriptionResponse struct {
	Success      bool                 `json:"success"`
	Subscription SubscriptionResponse `json:"subscription"`
	Payment      PaymentResponse      `json:"payment"`
}
