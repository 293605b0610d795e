package ledger

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merxylab/kpay-verify/internal/models"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAdmit_FirstWriterWins(t *testing.T) {
	l := openTestLedger(t)

	admitted, err := l.Admit("12345678901234567")
	require.NoError(t, err)
	assert.True(t, admitted)

	admitted, err = l.Admit("12345678901234567")
	require.NoError(t, err)
	assert.False(t, admitted)

	// A different id is unaffected.
	admitted, err = l.Admit("76543210987654321")
	require.NoError(t, err)
	assert.True(t, admitted)
}

func TestAdmit_ConcurrentCallersGetExactlyOneAdmission(t *testing.T) {
	l := openTestLedger(t)

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan bool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			admitted, err := l.Admit("12345678901234567")
			assert.NoError(t, err)
			results <- admitted
		}()
	}
	wg.Wait()
	close(results)

	admissions := 0
	for admitted := range results {
		if admitted {
			admissions++
		}
	}
	assert.Equal(t, 1, admissions)
}

func TestAdmit_FailsClosedWhenStoreUnavailable(t *testing.T) {
	l := openTestLedger(t)
	require.NoError(t, l.Close())

	admitted, err := l.Admit("12345678901234567")

	assert.False(t, admitted)
	require.Error(t, err)
	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "admit", storeErr.Op)
}

func TestExists(t *testing.T) {
	l := openTestLedger(t)

	found, err := l.Exists("12345678901234567")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = l.Admit("12345678901234567")
	require.NoError(t, err)

	found, err = l.Exists("12345678901234567")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRecordAndList(t *testing.T) {
	l := openTestLedger(t)

	entries, err := l.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	entry := models.LedgerEntry{
		TransactionID: "12345678901234567",
		UserID:        "42",
		Username:      "somebody",
		Amount:        "6,000 Ks",
		Time:          "21/05/2024 10:15:03",
		Notes:         "Shopping",
		AcceptedAt:    time.Date(2024, 5, 21, 10, 20, 0, 0, time.UTC),
	}
	require.NoError(t, l.Record(entry))

	entries, err = l.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestInvitedBookkeeping(t *testing.T) {
	l := openTestLedger(t)

	invited, err := l.WasInvited("42")
	require.NoError(t, err)
	assert.False(t, invited)

	require.NoError(t, l.MarkInvited("42"))

	invited, err = l.WasInvited("42")
	require.NoError(t, err)
	assert.True(t, invited)

	invited, err = l.WasInvited("43")
	require.NoError(t, err)
	assert.False(t, invited)
}

func TestPaidBookkeeping(t *testing.T) {
	l := openTestLedger(t)

	paid, err := l.HasPaid("42")
	require.NoError(t, err)
	assert.False(t, paid)

	require.NoError(t, l.MarkPaid("42", "12345678901234567"))

	paid, err = l.HasPaid("42")
	require.NoError(t, err)
	assert.True(t, paid)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	l, err := Open(path)
	require.NoError(t, err)
	admitted, err := l.Admit("12345678901234567")
	require.NoError(t, err)
	require.True(t, admitted)
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()

	admitted, err = l.Admit("12345678901234567")
	require.NoError(t, err)
	assert.False(t, admitted)
}

func TestMockStore_MatchesLedgerContract(t *testing.T) {
	m := NewMockStore()

	admitted, err := m.Admit("1")
	require.NoError(t, err)
	assert.True(t, admitted)

	admitted, err = m.Admit("1")
	require.NoError(t, err)
	assert.False(t, admitted)

	m.Err = errors.New("store down")
	_, err = m.Admit("2")
	assert.Error(t, err)
}
