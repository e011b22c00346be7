package storage

import (
	"context"

	"rateadmin/internal/models"
)

// RateStorage defines interface for rate record persistence
type RateStorage interface {
	// ListRates returns all rate records ordered by operation ID
	ListRates(ctx context.Context) ([]models.Rate, error)

	// GetRate retrieves a rate record by operation ID
	// Returns ErrRateNotFound if the record doesn't exist
	GetRate(ctx context.Context, idOp int) (*models.Rate, error)

	// CreateRate creates a new rate record
	// Returns ErrRateAlreadyExists if the operation ID is taken
	CreateRate(ctx context.Context, rate *models.Rate) error

	// UpdateRate changes the rate value of an existing record
	// Returns ErrRateNotFound if the record doesn't exist
	UpdateRate(ctx context.Context, idOp int, tasa float64) error

	// DeleteRate deletes a rate record by operation ID
	// Returns ErrRateNotFound if the record doesn't exist
	DeleteRate(ctx context.Context, idOp int) error
}
