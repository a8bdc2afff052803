package handler

import (
	"loyalty-token-ledger/internal/adapter/http/dto"
	"loyalty-token-ledger/internal/adapter/http/middleware"
	"loyalty-token-ledger/internal/core/domain"
	"loyalty-token-ledger/internal/core/ports"
	"loyalty-token-ledger/pkg/apperror"
	"loyalty-token-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
)

// RewardHandler handles token movement: rewards, batch rewards, redemptions,
// and balance queries.
type RewardHandler struct {
	loyaltySvc ports.LoyaltyService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(loyaltySvc ports.LoyaltyService) *RewardHandler {
	return &RewardHandler{loyaltySvc: loyaltySvc}
}

// Reward handles POST /api/v1/rewards.
func (h *RewardHandler) Reward(c *gin.Context) {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	customer, err := parseAddress(req.Customer)
	if err != nil {
		response.Error(c, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.loyaltySvc.RewardCustomer(c.Request.Context(), caller, customer, amount); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		Address: customer.Hex(),
		Balance: h.loyaltySvc.BalanceOf(customer).Dec(),
	})
}

// RewardBatch handles POST /api/v1/rewards/batch.
func (h *RewardHandler) RewardBatch(c *gin.Context) {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.BatchRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	customers := make([]domain.Address, len(req.Customers))
	for i, raw := range req.Customers {
		addr, err := parseAddress(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		customers[i] = addr
	}
	amounts := make([]*uint256.Int, len(req.Amounts))
	for i, raw := range req.Amounts {
		amount, err := parseAmount(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		amounts[i] = amount
	}

	if err := h.loyaltySvc.RewardCustomersInBatch(c.Request.Context(), caller, customers, amounts); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SupplyResponse{
		TotalSupply: h.loyaltySvc.TotalSupply().Dec(),
	})
}

// Redeem handles POST /api/v1/redemptions. Tokens are burned from the
// authenticated caller's own balance.
func (h *RewardHandler) Redeem(c *gin.Context) {
	caller, ok := middleware.CallerAddress(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.loyaltySvc.RedeemTokens(c.Request.Context(), caller, amount); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		Address: caller.Hex(),
		Balance: h.loyaltySvc.BalanceOf(caller).Dec(),
	})
}

// GetBalance handles GET /api/v1/accounts/:address/balance.
func (h *RewardHandler) GetBalance(c *gin.Context) {
	identity, err := parseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		Address: identity.Hex(),
		Balance: h.loyaltySvc.BalanceOf(identity).Dec(),
	})
}

// GetSupply handles GET /api/v1/supply.
func (h *RewardHandler) GetSupply(c *gin.Context) {
	response.OK(c, dto.SupplyResponse{
		TotalSupply: h.loyaltySvc.TotalSupply().Dec(),
	})
}

// parseAmount converts a validated decimal string to a 256-bit amount. A
// literal beyond 2^256-1 is an overflow, not a syntax problem.
func parseAmount(s string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, apperror.ErrOverflow()
	}
	return amount, nil
}
