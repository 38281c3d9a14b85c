package models

import "time"

const PaymentMethodManual = "Manual Entry"

// Payment records money collected against a subscription. InvoiceNumber is
// assigned once at creation and never rewritten.
type Payment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SubscriptionID uint      `gorm:"not null;index" json:"subscription_id"`
	PaidAmount     float64   `gorm:"not null" json:"paid_amount"`
	PaymentDate    time.Time `gorm:"not null" json:"payment_date"`
	PaymentMethod  string    `gorm:"size:50" json:"payment_method"`
	InvoiceNumber  string    `gorm:"size:50;uniqueIndex" json:"invoice_number"`
	QRCodeData     string    `gorm:"type:text" json:"qr_code_data"`
}
