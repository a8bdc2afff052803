package domain

import (
	"errors"
	"testing"

	"loyalty-token-ledger/pkg/apperror"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b byte) Address {
	var a Address
	a[AddressLength-1] = b
	return a
}

func amount(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// supplyEqualsSumOfBalances asserts the core invariant against the given
// identities (absent identities read zero and contribute nothing).
func supplyEqualsSumOfBalances(t *testing.T, l *Ledger, addrs ...Address) {
	t.Helper()
	sum := uint256.NewInt(0)
	for _, a := range addrs {
		sum.Add(sum, l.BalanceOf(a))
	}
	assert.True(t, l.TotalSupply().Eq(sum),
		"total supply %s != sum of balances %s", l.TotalSupply().Dec(), sum.Dec())
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T", err)
	return appErr.Code
}

func TestLedger_MintAndBalance(t *testing.T) {
	l := NewLedger()
	customer := addr(1)

	require.NoError(t, l.Mint(customer, amount(100)))
	assert.True(t, l.BalanceOf(customer).Eq(amount(100)))
	assert.True(t, l.TotalSupply().Eq(amount(100)))

	require.NoError(t, l.Mint(customer, amount(50)))
	assert.True(t, l.BalanceOf(customer).Eq(amount(150)))
	supplyEqualsSumOfBalances(t, l, customer)
}

func TestLedger_Mint_NullIdentity(t *testing.T) {
	l := NewLedger()
	err := l.Mint(ZeroAddress, amount(10))
	assert.Equal(t, "LED_001", appCode(t, err))
	assert.True(t, l.TotalSupply().IsZero())
}

func TestLedger_Mint_ZeroAmount(t *testing.T) {
	l := NewLedger()
	err := l.Mint(addr(1), amount(0))
	assert.Equal(t, "LED_002", appCode(t, err))

	err = l.Mint(addr(1), nil)
	assert.Equal(t, "LED_002", appCode(t, err))
}

func TestLedger_Mint_BalanceOverflow(t *testing.T) {
	l := NewLedger()
	holder := addr(1)
	max := new(uint256.Int).SetAllOne()

	require.NoError(t, l.Mint(holder, max))
	err := l.Mint(holder, amount(1))
	assert.Equal(t, "LED_003", appCode(t, err))

	// State unchanged after the failed mint.
	assert.True(t, l.BalanceOf(holder).Eq(max))
	assert.True(t, l.TotalSupply().Eq(max))
}

func TestLedger_Mint_SupplyOverflow(t *testing.T) {
	l := NewLedger()
	max := new(uint256.Int).SetAllOne()

	require.NoError(t, l.Mint(addr(1), max))
	// Different holder: the balance alone would not overflow, the supply does.
	err := l.Mint(addr(2), amount(1))
	assert.Equal(t, "LED_003", appCode(t, err))
	assert.True(t, l.BalanceOf(addr(2)).IsZero())
}

func TestLedger_Burn(t *testing.T) {
	l := NewLedger()
	customer := addr(1)
	require.NoError(t, l.Mint(customer, amount(100)))

	require.NoError(t, l.Burn(customer, amount(40)))
	assert.True(t, l.BalanceOf(customer).Eq(amount(60)))
	assert.True(t, l.TotalSupply().Eq(amount(60)))
	supplyEqualsSumOfBalances(t, l, customer)
}

func TestLedger_Burn_ToZeroKeepsEntry(t *testing.T) {
	l := NewLedger()
	customer := addr(1)
	require.NoError(t, l.Mint(customer, amount(5)))
	require.NoError(t, l.Burn(customer, amount(5)))

	assert.True(t, l.BalanceOf(customer).IsZero())
	assert.True(t, l.TotalSupply().IsZero())
}

func TestLedger_Burn_InsufficientBalance(t *testing.T) {
	l := NewLedger()
	customer := addr(1)
	require.NoError(t, l.Mint(customer, amount(60)))

	err := l.Burn(customer, amount(1000))
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "LED_004", appErr.Code)
	assert.Equal(t, "1000", appErr.Details["required"])
	assert.Equal(t, "60", appErr.Details["available"])

	// State unchanged.
	assert.True(t, l.BalanceOf(customer).Eq(amount(60)))
	assert.True(t, l.TotalSupply().Eq(amount(60)))
}

func TestLedger_Burn_ZeroAmount(t *testing.T) {
	l := NewLedger()
	err := l.Burn(addr(1), amount(0))
	assert.Equal(t, "LED_002", appCode(t, err))
}

func TestLedger_Burn_AbsentIdentity(t *testing.T) {
	l := NewLedger()
	err := l.Burn(addr(9), amount(1))
	assert.Equal(t, "LED_004", appCode(t, err))
}

func TestLedger_BalanceOf_ReturnsCopy(t *testing.T) {
	l := NewLedger()
	customer := addr(1)
	require.NoError(t, l.Mint(customer, amount(10)))

	bal := l.BalanceOf(customer)
	bal.SetUint64(999)
	assert.True(t, l.BalanceOf(customer).Eq(amount(10)))
}

func TestLedger_MintBatch(t *testing.T) {
	l := NewLedger()
	a, b := addr(1), addr(2)

	err := l.MintBatch([]Address{a, b}, []*uint256.Int{amount(10), amount(20)})
	require.NoError(t, err)
	assert.True(t, l.BalanceOf(a).Eq(amount(10)))
	assert.True(t, l.BalanceOf(b).Eq(amount(20)))
	assert.True(t, l.TotalSupply().Eq(amount(30)))
	supplyEqualsSumOfBalances(t, l, a, b)
}

func TestLedger_MintBatch_ArityMismatch(t *testing.T) {
	l := NewLedger()
	err := l.MintBatch([]Address{addr(1), addr(2)}, []*uint256.Int{amount(10)})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "LED_005", appErr.Code)
	assert.Equal(t, "2", appErr.Details["identities"])
	assert.Equal(t, "1", appErr.Details["amounts"])
	assert.True(t, l.TotalSupply().IsZero())
}

func TestLedger_MintBatch_AllOrNothing(t *testing.T) {
	l := NewLedger()
	a, b := addr(1), addr(2)

	// Second item has a zero amount: the whole batch must be rejected with no
	// effect on either balance.
	err := l.MintBatch([]Address{a, b}, []*uint256.Int{amount(10), amount(0)})
	assert.Equal(t, "LED_002", appCode(t, err))

	assert.True(t, l.BalanceOf(a).IsZero())
	assert.True(t, l.BalanceOf(b).IsZero())
	assert.True(t, l.TotalSupply().IsZero())
}

func TestLedger_MintBatch_NullIdentityAborts(t *testing.T) {
	l := NewLedger()
	err := l.MintBatch([]Address{addr(1), ZeroAddress}, []*uint256.Int{amount(10), amount(5)})
	assert.Equal(t, "LED_001", appCode(t, err))
	assert.True(t, l.TotalSupply().IsZero())
}

func TestLedger_MintBatch_CumulativeOverflowAborts(t *testing.T) {
	l := NewLedger()
	max := new(uint256.Int).SetAllOne()

	// Each item is fine alone; together they overflow the supply, so the
	// whole batch rolls back.
	err := l.MintBatch([]Address{addr(1), addr(2)}, []*uint256.Int{max, amount(1)})
	assert.Equal(t, "LED_003", appCode(t, err))
	assert.True(t, l.BalanceOf(addr(1)).IsZero())
	assert.True(t, l.TotalSupply().IsZero())
}

func TestLedger_SupplyInvariantAcrossMixedOps(t *testing.T) {
	l := NewLedger()
	a, b, c := addr(1), addr(2), addr(3)

	require.NoError(t, l.Mint(a, amount(100)))
	require.NoError(t, l.MintBatch([]Address{b, c}, []*uint256.Int{amount(50), amount(25)}))
	require.NoError(t, l.Burn(a, amount(30)))
	require.NoError(t, l.Burn(c, amount(25)))
	require.NoError(t, l.Mint(b, amount(5)))

	supplyEqualsSumOfBalances(t, l, a, b, c)
	assert.True(t, l.TotalSupply().Eq(amount(125)))
}
