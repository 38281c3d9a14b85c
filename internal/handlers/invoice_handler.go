package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/invoice"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Download streams the PDF invoice of a payment as an attachment.
func (h *InvoiceHandler) Download(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid payment ID")
	}

	doc, err := h.invoiceService.Render(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			return notFound(c, "Invoice not found")
		}
		return internalError(c, "Failed to generate invoice")
	}

	c.Attachment(doc.Filename)
	c.Set(fiber.HeaderContentType, doc.ContentType)
	return c.Send(doc.Bytes)
}
