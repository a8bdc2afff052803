package handler

import (
	"strconv"
	"time"

	"loyalty-token-ledger/internal/adapter/http/dto"
	"loyalty-token-ledger/internal/adapter/http/middleware"
	"loyalty-token-ledger/internal/core/domain"
	"loyalty-token-ledger/internal/core/ports"
	"loyalty-token-ledger/pkg/apperror"
	"loyalty-token-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// ProgramHandler handles program administration: merchant role management,
// the pause switch, status queries, and the event journal.
type ProgramHandler struct {
	loyaltySvc ports.LoyaltyService
	journal    ports.EventJournal // nil = events endpoint disabled
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(loyaltySvc ports.LoyaltyService, journal ports.EventJournal) *ProgramHandler {
	return &ProgramHandler{loyaltySvc: loyaltySvc, journal: journal}
}

// AddMerchant handles POST /api/v1/program/merchants.
func (h *ProgramHandler) AddMerchant(c *gin.Context) {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.MerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	identity, err := parseAddress(req.Address)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.loyaltySvc.AddMerchant(c.Request.Context(), caller, identity); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.MerchantStatusResponse{
		Address:    identity.Hex(),
		IsMerchant: true,
	})
}

// RemoveMerchant handles DELETE /api/v1/program/merchants/:address.
func (h *ProgramHandler) RemoveMerchant(c *gin.Context) {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	identity, err := parseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.loyaltySvc.RemoveMerchant(c.Request.Context(), caller, identity); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.MerchantStatusResponse{
		Address:    identity.Hex(),
		IsMerchant: false,
	})
}

// Pause handles POST /api/v1/program/pause.
func (h *ProgramHandler) Pause(c *gin.Context) {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.loyaltySvc.Pause(c.Request.Context(), caller); err != nil {
		response.Error(c, err)
		return
	}
	h.status(c)
}

// Unpause handles POST /api/v1/program/unpause.
func (h *ProgramHandler) Unpause(c *gin.Context) {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.loyaltySvc.Unpause(c.Request.Context(), caller); err != nil {
		response.Error(c, err)
		return
	}
	h.status(c)
}

// GetStatus handles GET /api/v1/program/status.
func (h *ProgramHandler) GetStatus(c *gin.Context) {
	h.status(c)
}

func (h *ProgramHandler) status(c *gin.Context) {
	response.OK(c, dto.ProgramStatusResponse{
		Paused:      h.loyaltySvc.Paused(),
		TotalSupply: h.loyaltySvc.TotalSupply().Dec(),
	})
}

// IsMerchant handles GET /api/v1/program/merchants/:address.
func (h *ProgramHandler) IsMerchant(c *gin.Context) {
	identity, err := parseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.MerchantStatusResponse{
		Address:    identity.Hex(),
		IsMerchant: h.loyaltySvc.IsMerchant(identity),
	})
}

// ListEvents handles GET /api/v1/events.
func (h *ProgramHandler) ListEvents(c *gin.Context) {
	limit := defaultEventLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxEventLimit {
			response.Error(c, apperror.Validation("limit must be between 1 and 500"))
			return
		}
		limit = parsed
	}

	events, err := h.journal.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	items := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		item := dto.EventResponse{
			ID:         e.ID.String(),
			Type:       string(e.Type),
			Caller:     e.Caller.Hex(),
			Amount:     e.Amount,
			OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339Nano),
		}
		if !e.Account.IsZero() {
			item.Account = e.Account.Hex()
		}
		items = append(items, item)
	}

	response.OK(c, dto.EventListResponse{Items: items, Count: len(items)})
}

// parseAddress converts a validated hex string into an account identity.
func parseAddress(s string) (domain.Address, error) {
	addr, err := domain.AddressFromHex(s)
	if err != nil {
		return domain.ZeroAddress, apperror.Validation(err.Error())
	}
	return addr, nil
}
