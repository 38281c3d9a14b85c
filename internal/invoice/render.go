package invoice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

const (
	ContentType = "application/pdf"
	qrSize      = 256
)

// Invoice is the payment, subscription and player a document is rendered from.
type Invoice struct {
	Payment      models.Payment
	Subscription models.Subscription
	Player       models.Player
}

// IssueDate is the payment date as printed on the invoice.
func (inv *Invoice) IssueDate() string {
	return inv.Payment.PaymentDate.Format("2006-01-02")
}

// LineDescription names the billed period by the subscription start month.
func (inv *Invoice) LineDescription() string {
	return fmt.Sprintf("Subscription Fee (%s)", inv.Subscription.StartDate.Format("Jan 2006"))
}

// QRPayload is the text encoded in the invoice QR code.
func (inv *Invoice) QRPayload() string {
	return fmt.Sprintf("Invoice:%s\nAmount:%s\nPlayer:%s\nDate:%s",
		inv.Payment.InvoiceNumber,
		FormatAmount(inv.Payment.PaidAmount),
		inv.Player.FullName,
		inv.Payment.PaymentDate.Format("2006-01-02 15:04:05"),
	)
}

// Filename is the download name of the rendered document.
func (inv *Invoice) Filename() string {
	return "Invoice_" + inv.Payment.InvoiceNumber + ".pdf"
}

// Document is a rendered invoice ready to be sent to the client.
type Document struct {
	Bytes       []byte
	Filename    string
	ContentType string
}

// Renderer produces invoice PDFs. It keeps no per-render state, so one
// Renderer serves concurrent requests.
type Renderer struct {
	store  Store
	layout Layout
}

func NewRenderer(store Store, layout Layout) *Renderer {
	return &Renderer{store: store, layout: layout}
}

// Render resolves payment id and returns its invoice as a PDF. Everything is
// built in memory; no file is written on any path.
func (r *Renderer) Render(ctx context.Context, paymentID uint) (*Document, error) {
	inv, err := r.Resolve(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.Encode(inv.QRPayload(), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	data, err := r.serialize(inv, qr)
	if err != nil {
		return nil, err
	}

	return &Document{
		Bytes:       data,
		Filename:    inv.Filename(),
		ContentType: ContentType,
	}, nil
}

// Resolve loads the payment and the subscription and player it belongs to.
// A missing link is reported as ErrNotFound, never skipped.
func (r *Renderer) Resolve(ctx context.Context, paymentID uint) (*Invoice, error) {
	payment, err := r.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", paymentID, err)
	}
	sub, err := r.store.GetSubscription(ctx, payment.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("subscription %d of payment %d: %w", payment.SubscriptionID, paymentID, err)
	}
	player, err := r.store.GetPlayer(ctx, sub.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("player %d of subscription %d: %w", sub.PlayerID, sub.ID, err)
	}
	return &Invoice{Payment: *payment, Subscription: *sub, Player: *player}, nil
}

func (r *Renderer) serialize(inv *Invoice, qr []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Pinned metadata keeps output identical for identical records.
	pdf.SetCreationDate(inv.Payment.PaymentDate)
	pdf.SetModificationDate(inv.Payment.PaymentDate)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 15)
	pdf.SetTitle("Invoice "+inv.Payment.InvoiceNumber, true)
	pdf.SetAuthor(r.layout.ClubName, true)

	qrName := "qr-" + inv.Payment.InvoiceNumber
	pdf.RegisterImageOptionsReader(qrName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))

	pdf.AddPage()
	Compose(&latin1Canvas{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}, r.layout, inv, qrName)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// latin1Canvas converts UTF-8 text to the cp1252 encoding of the core fonts.
type latin1Canvas struct {
	*fpdf.Fpdf
	tr func(string) string
}

func (c *latin1Canvas) CellFormat(w, h float64, txtStr, borderStr string, ln int, alignStr string, fill bool, link int, linkStr string) {
	c.Fpdf.CellFormat(w, h, c.tr(txtStr), borderStr, ln, alignStr, fill, link, linkStr)
}

func (c *latin1Canvas) MultiCell(w, h float64, txtStr, borderStr, alignStr string, fill bool) {
	c.Fpdf.MultiCell(w, h, c.tr(txtStr), borderStr, alignStr, fill)
}
