package dto

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for account login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	Address  string `json:"address"`
	Username string `json:"username"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// MerchantRequest is the request body for granting the merchant role.
type MerchantRequest struct {
	Address string `json:"address" binding:"required,hex_address"`
}

// RewardRequest is the request body for minting tokens to a customer.
// Amount is a decimal string; token amounts are 256-bit and exceed int64.
type RewardRequest struct {
	Customer string `json:"customer" binding:"required,hex_address"`
	Amount   string `json:"amount" binding:"required,token_amount"`
}

// BatchRewardRequest carries parallel customer and amount sequences. The
// sequences are deliberately separate so a length mismatch reaches the ledger
// and is reported with both arities.
type BatchRewardRequest struct {
	Customers []string `json:"customers" binding:"required,min=1,dive,hex_address"`
	Amounts   []string `json:"amounts" binding:"required,min=1,dive,token_amount"`
}

// RedeemRequest is the request body for burning tokens from the caller.
type RedeemRequest struct {
	Amount string `json:"amount" binding:"required,token_amount"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"` // decimal token amount
}

// SupplyResponse is the response for the total supply query.
type SupplyResponse struct {
	TotalSupply string `json:"total_supply"` // decimal token amount
}

// MerchantStatusResponse is the response for a merchant role query.
type MerchantStatusResponse struct {
	Address    string `json:"address"`
	IsMerchant bool   `json:"is_merchant"`
}

// ProgramStatusResponse is the response for the program status query.
type ProgramStatusResponse struct {
	Paused      bool   `json:"paused"`
	TotalSupply string `json:"total_supply"`
}

// EventResponse is one journaled program event.
type EventResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Caller     string `json:"caller"`
	Account    string `json:"account,omitempty"`
	Amount     string `json:"amount,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// EventListResponse wraps a list of journaled events.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
	Count int             `json:"count"`
}
