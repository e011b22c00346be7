package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rateadmin/internal/models"
	"rateadmin/internal/server/storage"
)

// ListRates returns all rate records ordered by operation ID
func (s *Storage) ListRates(ctx context.Context) ([]models.Rate, error) {
	query := `
		SELECT id_op, tasa, email, created_at, updated_at
		FROM rates
		ORDER BY id_op
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	var rates []models.Rate
	for rows.Next() {
		var r models.Rate
		if err := rows.Scan(&r.IDOp, &r.Tasa, &r.Email, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rates = append(rates, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rates: %w", err)
	}

	return rates, nil
}

// GetRate retrieves a rate record by operation ID
func (s *Storage) GetRate(ctx context.Context, idOp int) (*models.Rate, error) {
	query := `
		SELECT id_op, tasa, email, created_at, updated_at
		FROM rates
		WHERE id_op = ?
	`

	rate := &models.Rate{}
	err := s.db.QueryRowContext(ctx, query, idOp).Scan(
		&rate.IDOp,
		&rate.Tasa,
		&rate.Email,
		&rate.CreatedAt,
		&rate.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRateNotFound
		}
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}

	return rate, nil
}

// CreateRate creates a new rate record
func (s *Storage) CreateRate(ctx context.Context, rate *models.Rate) error {
	query := `
		INSERT INTO rates (id_op, tasa, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		rate.IDOp,
		rate.Tasa,
		rate.Email,
		rate.CreatedAt,
		rate.UpdatedAt,
	)

	if err != nil {
		// Дубликат id_op
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "PRIMARY KEY constraint failed") {
			return storage.ErrRateAlreadyExists
		}
		return fmt.Errorf("failed to insert rate: %w", err)
	}

	return nil
}

// UpdateRate changes the rate value of an existing record
func (s *Storage) UpdateRate(ctx context.Context, idOp int, tasa float64) error {
	query := `UPDATE rates SET tasa = ?, updated_at = ? WHERE id_op = ?`

	result, err := s.db.ExecContext(ctx, query, tasa, time.Now(), idOp)
	if err != nil {
		return fmt.Errorf("failed to update rate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRateNotFound
	}

	return nil
}

// DeleteRate deletes a rate record by operation ID
func (s *Storage) DeleteRate(ctx context.Context, idOp int) error {
	query := `DELETE FROM rates WHERE id_op = ?`

	result, err := s.db.ExecContext(ctx, query, idOp)
	if err != nil {
		return fmt.Errorf("failed to delete rate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRateNotFound
	}

	return nil
}
