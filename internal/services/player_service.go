package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidInput   = errors.New("invalid input")
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{db: db}
}

func (s *PlayerService) List(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).Order("id ASC").Find(&players).Error
	return players, err
}

func (s *PlayerService) Get(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

// Create stores a player and its audit entry in one transaction.
func (s *PlayerService) Create(ctx context.Context, userID uint, req *dto.CreatePlayerRequest) (*models.Player, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	}
	if req.Age == nil {
		return nil, fmt.Errorf("%w: age is required", ErrInvalidInput)
	}
	if *req.Age < 0 {
		return nil, fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}

	player := models.Player{
		FullName:     name,
		Age:          *req.Age,
		Position:     req.Position,
		Team:         req.Team,
		Phone:        req.Phone,
		ParentName:   req.ParentName,
		MedicalNotes: req.MedicalNotes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&player).Error; err != nil {
			return fmt.Errorf("failed to create player: %w", err)
		}
		return recordAudit(tx, userID, "Added player "+player.FullName)
	})
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *PlayerService) Update(ctx context.Context, userID, id uint, req *dto.UpdatePlayerRequest) (*models.Player, error) {
	player, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: full_name must not be empty", ErrInvalidInput)
		}
		player.FullName = name
	}
	if req.Age != nil {
		if *req.Age < 0 {
			return nil, fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
		}
		player.Age = *req.Age
	}
	setIfPresent(&player.Position, req.Position)
	setIfPresent(&player.Team, req.Team)
	setIfPresent(&player.Phone, req.Phone)
	setIfPresent(&player.ParentName, req.ParentName)
	setIfPresent(&player.MedicalNotes, req.MedicalNotes)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(player).Error; err != nil {
			return fmt.Errorf("failed to update player: %w", err)
		}
		return recordAudit(tx, userID, "Updated player "+player.FullName)
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Delete removes only the player row. Subscriptions, payments and files that
// reference the player are left untouched.
func (s *PlayerService) Delete(ctx context.Context, userID, id uint) error {
	player, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(player).Error; err != nil {
			return fmt.Errorf("failed to delete player: %w", err)
		}
		return recordAudit(tx, userID, "Deleted player "+player.FullName)
	})
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
