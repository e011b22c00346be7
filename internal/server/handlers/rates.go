package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"rateadmin/internal/models"
	"rateadmin/internal/server/storage"
	"rateadmin/internal/validation"
	"rateadmin/pkg/api"
)

// RatesHandler обрабатывает CRUD запросы тарифов
type RatesHandler struct {
	logger      *slog.Logger
	rateStorage storage.RateStorage
}

// NewRatesHandler создает новый handler для тарифов
func NewRatesHandler(logger *slog.Logger, rateStorage storage.RateStorage) *RatesHandler {
	return &RatesHandler{
		logger:      logger,
		rateStorage: rateStorage,
	}
}

// List обрабатывает GET /api/tasas
// Пустой список отдается как 404 с маркером, клиент различает
// "нет записей" и ошибку по detail
func (h *RatesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.rateStorage.ListRates(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list rates", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(records) == 0 {
		sendError(h.logger, w, api.MsgNoRatesFound, http.StatusNotFound)
		return
	}

	resp := make([]api.Rate, 0, len(records))
	for _, rec := range records {
		resp = append(resp, api.Rate{
			IDOp:  rec.IDOp,
			Tasa:  rec.Tasa,
			Email: rec.Email,
		})
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /api/tasas/create
func (h *RatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateOperationID(req.IDOp); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateRate(req.Tasa); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	rate := &models.Rate{
		IDOp:      req.IDOp,
		Tasa:      req.Tasa,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.rateStorage.CreateRate(ctx, rate); err != nil {
		if errors.Is(err, storage.ErrRateAlreadyExists) {
			h.logger.WarnContext(ctx, "rate already exists", slog.Int("id_op", req.IDOp))
			sendError(h.logger, w, "a rate already exists for this operation", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create rate", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "rate created", slog.Int("id_op", req.IDOp))
	sendJSON(h.logger, w, api.MessageResponse{Message: "rate created"}, http.StatusCreated)
}

// Update обрабатывает POST /api/tasas/{idOp}
// Совпадение нового тарифа с текущим не ошибка: ответ несет маркер,
// по которому клиент показывает информационное уведомление
func (h *RatesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idOp, ok := h.pathOperationID(w, r)
	if !ok {
		return
	}

	var req api.UpdateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateRate(req.Tasa); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	existing, err := h.rateStorage.GetRate(ctx, idOp)
	if err != nil {
		if errors.Is(err, storage.ErrRateNotFound) {
			sendError(h.logger, w, "rate not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get rate", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if existing.Tasa == req.Tasa {
		sendJSON(h.logger, w, api.UpdateRateResponse{Message: api.MsgRateUnchanged}, http.StatusOK)
		return
	}

	if err := h.rateStorage.UpdateRate(ctx, idOp, req.Tasa); err != nil {
		h.logger.ErrorContext(ctx, "failed to update rate", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "rate updated", slog.Int("id_op", idOp))
	sendJSON(h.logger, w, api.UpdateRateResponse{Message: "rate updated"}, http.StatusOK)
}

// Delete обрабатывает DELETE /api/tasas/{idOp}
func (h *RatesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idOp, ok := h.pathOperationID(w, r)
	if !ok {
		return
	}

	if err := h.rateStorage.DeleteRate(ctx, idOp); err != nil {
		if errors.Is(err, storage.ErrRateNotFound) {
			sendError(h.logger, w, "rate not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete rate", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "rate deleted", slog.Int("id_op", idOp))
	sendJSON(h.logger, w, api.MessageResponse{Message: "rate deleted"}, http.StatusOK)
}

// pathOperationID извлекает ID операции из path parameter (Go 1.22+)
func (h *RatesHandler) pathOperationID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("idOp")
	idOp, err := strconv.Atoi(raw)
	if err != nil || idOp < 0 {
		sendError(h.logger, w, "invalid operation ID", http.StatusBadRequest)
		return 0, false
	}
	return idOp, true
}
