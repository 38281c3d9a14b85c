package handlers

import (
	"errors"
	"log/slog"
	"path"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FileHandler struct {
	fileService *services.FileService
}

func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

func (h *FileHandler) Upload(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file part")
	}
	playerID, err := strconv.ParseUint(c.FormValue("player_id"), 10, 64)
	if err != nil || playerID == 0 {
		return badRequest(c, "player_id is required")
	}

	src, err := header.Open()
	if err != nil {
		return badRequest(c, "Unable to read uploaded file")
	}
	defer src.Close()

	file, err := h.fileService.Upload(c.UserContext(), userID, uint(playerID), header.Filename, src)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return badRequest(c, err.Error())
		}
		slog.Error("file upload failed", "player_id", playerID, "error", err)
		return internalError(c, "Failed to upload file")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewFileResponse(file))
}

func (h *FileHandler) ListForPlayer(c *fiber.Ctx) error {
	playerID, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid player ID")
	}

	files, err := h.fileService.ListForPlayer(c.UserContext(), playerID)
	if err != nil {
		slog.Error("failed to list files", "player_id", playerID, "error", err)
		return internalError(c, "Failed to list files")
	}

	resp := make([]dto.FileResponse, 0, len(files))
	for i := range files {
		resp = append(resp, dto.NewFileResponse(&files[i]))
	}
	return c.JSON(resp)
}

func (h *FileHandler) Download(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid file ID")
	}

	file, absPath, err := h.fileService.Locate(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("failed to locate file", "file_id", id, "error", err)
		return internalError(c, "Failed to download file")
	}

	return c.Download(absPath, path.Base(file.FilePath))
}

func (h *FileHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid file ID")
	}

	if err := h.fileService.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("failed to delete file", "file_id", id, "error", err)
		return internalError(c, "Failed to delete file")
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}
