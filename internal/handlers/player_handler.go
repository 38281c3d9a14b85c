package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

func (h *PlayerHandler) List(c *fiber.Ctx) error {
	players, err := h.playerService.List(c.UserContext())
	if err != nil {
		slog.Error("failed to list players", "error", err)
		return internalError(c, "Failed to list players")
	}

	resp := make([]dto.PlayerResponse, 0, len(players))
	for i := range players {
		resp = append(resp, dto.NewPlayerResponse(&players[i]))
	}
	return c.JSON(resp)
}

func (h *PlayerHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	player, err := h.playerService.Create(c.UserContext(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return badRequest(c, err.Error())
		}
		slog.Error("failed to create player", "error", err)
		return internalError(c, "Failed to create player")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewPlayerResponse(player))
}

func (h *PlayerHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid player ID")
	}

	var req dto.UpdatePlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	player, err := h.playerService.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlayerNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrInvalidInput):
			return badRequest(c, err.Error())
		}
		slog.Error("failed to update player", "player_id", id, "error", err)
		return internalError(c, "Failed to update player")
	}

	return c.JSON(dto.NewPlayerResponse(player))
}

func (h *PlayerHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid player ID")
	}

	if err := h.playerService.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("failed to delete player", "player_id", id, "error", err)
		return internalError(c, "Failed to delete player")
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}
