package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/invoice"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	subs, err := h.subscriptionService.List(c.UserContext())
	if err != nil {
		slog.Error("failed to list subscriptions", "error", err)
		return internalError(c, "Failed to list subscriptions")
	}
	return c.JSON(subs)
}

// Create records a subscription and issues its initial invoice.
func (h *SubscriptionHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	sub, payment, err := h.subscriptionService.Create(c.UserContext(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrValidation):
			return badRequest(c, err.Error())
		case errors.Is(err, services.ErrPlayerNotFound):
			return notFound(c, err.Error())
		}
		slog.Error("failed to create subscription", "player_id", req.PlayerID, "error", err)
		return internalError(c, "Failed to create subscription")
	}

	resp := dto.NewSubscriptionResponse(sub)
	resp.LastPaymentID = payment.ID
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSubscriptionResponse{
		Success:      true,
		Subscription: resp,
		Payment:      dto.NewPaymentResponse(payment),
	})
}

func (h *SubscriptionHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid subscription ID")
	}

	if err := h.subscriptionService.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("failed to delete subscription", "subscription_id", id, "error", err)
		return internalError(c, "Failed to delete subscription")
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *SubscriptionHandler) Payments(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid subscription ID")
	}

	payments, err := h.subscriptionService.Payments(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("failed to list payments", "subscription_id", id, "error", err)
		return internalError(c, "Failed to list payments")
	}

	resp := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, dto.NewPaymentResponse(&payments[i]))
	}
	return c.JSON(resp)
}
