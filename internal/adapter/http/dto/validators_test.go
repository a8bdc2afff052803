package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func bindErr(t *testing.T, v interface{}) error {
	t.Helper()
	return binding.Validator.ValidateStruct(v)
}

func TestHexAddressValidation(t *testing.T) {
	valid := []string{
		"0x" + "00000000000000000000000000000000000000ff"[0:40],
		"0xabcdefABCDEF0123456789abcdefABCDEF012345",
		"abcdefABCDEF0123456789abcdefABCDEF012345", // bare, no 0x
		"0x0000000000000000000000000000000000000000", // null sentinel passes binding; the ledger rejects it
	}
	for _, addr := range valid {
		req := MerchantRequest{Address: addr}
		assert.NoError(t, bindErr(t, &req), "address %q should validate", addr)
	}

	invalid := []string{
		"",
		"0x1234",
		"0xZZcdefABCDEF0123456789abcdefABCDEF012345",
		"0xabcdefABCDEF0123456789abcdefABCDEF01234500", // too long
	}
	for _, addr := range invalid {
		req := MerchantRequest{Address: addr}
		assert.Error(t, bindErr(t, &req), "address %q should fail", addr)
	}
}

func TestTokenAmountValidation(t *testing.T) {
	valid := []string{"1", "0", "100", "115792089237316195423570985008687907853269984665640564039457584007913129639935"}
	for _, amt := range valid {
		req := RedeemRequest{Amount: amt}
		assert.NoError(t, bindErr(t, &req), "amount %q should validate", amt)
	}

	invalid := []string{"", "-1", "1.5", "1e18", "0x10", "ten"}
	for _, amt := range invalid {
		req := RedeemRequest{Amount: amt}
		assert.Error(t, bindErr(t, &req), "amount %q should fail", amt)
	}
}

func TestBatchRewardValidation(t *testing.T) {
	addr := "0xabcdefABCDEF0123456789abcdefABCDEF012345"

	t.Run("valid batch", func(t *testing.T) {
		req := BatchRewardRequest{
			Customers: []string{addr, addr},
			Amounts:   []string{"10", "20"},
		}
		assert.NoError(t, bindErr(t, &req))
	})

	t.Run("mismatched lengths still bind", func(t *testing.T) {
		// Arity is checked by the ledger, not the binding layer.
		req := BatchRewardRequest{
			Customers: []string{addr, addr},
			Amounts:   []string{"10"},
		}
		assert.NoError(t, bindErr(t, &req))
	})

	t.Run("empty batch fails", func(t *testing.T) {
		req := BatchRewardRequest{Customers: []string{}, Amounts: []string{}}
		assert.Error(t, bindErr(t, &req))
	})

	t.Run("bad element fails", func(t *testing.T) {
		req := BatchRewardRequest{
			Customers: []string{"nonsense"},
			Amounts:   []string{"10"},
		}
		assert.Error(t, bindErr(t, &req))
	})
}

func TestSanitizeStruct(t *testing.T) {
	req := RegisterRequest{Username: "  alice  ", Password: "secret<script>"}
	SanitizeStruct(&req)
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "secret&lt;script&gt;", req.Password)
}
