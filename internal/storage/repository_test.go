package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"budgetbuddy/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite runs every test against a fresh on-disk database
// so migrations execute exactly as they do in production.
type RepositoryTestSuite struct {
	suite.Suite
	repo *SQLiteRepository
	ctx  context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	dbPath := filepath.Join(s.T().TempDir(), "budgetbuddy.db")
	repo, err := NewSQLiteRepository(dbPath)
	require.NoError(s.T(), err, "failed to open test database")
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) TearDownTest() {
	if s.repo != nil {
		s.repo.Close()
	}
}

func (s *RepositoryTestSuite) mustCreateUser(username string) core.User {
	u, err := s.repo.CreateUser(s.ctx, username, "hash")
	require.NoError(s.T(), err)
	return u
}

func (s *RepositoryTestSuite) TestCreateAndGetUser() {
	u := s.mustCreateUser("alice")
	assert.Equal(s.T(), "alice", u.Username)
	assert.NotZero(s.T(), u.ID)

	byName, err := s.repo.GetUserByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.ID, byName.ID)

	_, err = s.repo.GetUserByUsername(s.ctx, "nobody")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestDuplicateUsernameRejected() {
	s.mustCreateUser("alice")
	_, err := s.repo.CreateUser(s.ctx, "alice", "otherhash")
	assert.Error(s.T(), err, "unique constraint should reject duplicate username")
}

func (s *RepositoryTestSuite) TestUpdateUserPassword() {
	u := s.mustCreateUser("alice")
	require.NoError(s.T(), s.repo.UpdateUserPassword(s.ctx, u.ID, "newhash"))

	got, err := s.repo.GetUserByID(s.ctx, u.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "newhash", got.PasswordHash)

	assert.ErrorIs(s.T(), s.repo.UpdateUserPassword(s.ctx, 9999, "x"), ErrNotFound)
}

func (s *RepositoryTestSuite) TestTransactionLifecycle() {
	u := s.mustCreateUser("alice")

	id, err := s.repo.CreateTransaction(s.ctx, core.Transaction{
		UserID:      u.ID,
		Description: "Groceries",
		Category:    "Food",
		Type:        core.Expenses,
		Amount:      core.Money{Cents: 1250},
		Date:        "2024-06-01",
	})
	require.NoError(s.T(), err)

	tx, err := s.repo.GetTransaction(s.ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.ID, tx.UserID)
	assert.Equal(s.T(), core.Expenses, tx.Type)
	assert.Equal(s.T(), int64(1250), tx.Amount.Cents)

	require.NoError(s.T(), s.repo.DeleteTransaction(s.ctx, id))
	_, err = s.repo.GetTransaction(s.ctx, id)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestListTransactionsOrderedByDateDesc() {
	u := s.mustCreateUser("alice")
	dates := []string{"2024-01-10", "2024-03-05", "2024-02-20"}
	for _, d := range dates {
		_, err := s.repo.CreateTransaction(s.ctx, core.Transaction{
			UserID: u.ID, Description: "t", Type: core.Income,
			Amount: core.Money{Cents: 100}, Date: d,
		})
		require.NoError(s.T(), err)
	}

	txns, err := s.repo.ListTransactions(s.ctx, u.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), txns, 3)
	assert.Equal(s.T(), "2024-03-05", txns[0].Date)
	assert.Equal(s.T(), "2024-02-20", txns[1].Date)
	assert.Equal(s.T(), "2024-01-10", txns[2].Date)

	recent, err := s.repo.ListRecentTransactions(s.ctx, u.ID, 2)
	require.NoError(s.T(), err)
	assert.Len(s.T(), recent, 2)
}

func (s *RepositoryTestSuite) TestListTransactionsScopedToOwner() {
	alice := s.mustCreateUser("alice")
	bob := s.mustCreateUser("bob")
	_, err := s.repo.CreateTransaction(s.ctx, core.Transaction{
		UserID: alice.ID, Description: "hers", Type: core.Income,
		Amount: core.Money{Cents: 100}, Date: "2024-01-01",
	})
	require.NoError(s.T(), err)

	txns, err := s.repo.ListTransactions(s.ctx, bob.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), txns)
}

func (s *RepositoryTestSuite) TestDeleteUserCascades() {
	u := s.mustCreateUser("alice")
	id, err := s.repo.CreateTransaction(s.ctx, core.Transaction{
		UserID: u.ID, Description: "t", Type: core.Expenses,
		Amount: core.Money{Cents: 100}, Date: "2024-01-01",
	})
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.repo.CreateSession(s.ctx, "tok", u.ID, time.Now().Add(time.Hour)))

	require.NoError(s.T(), s.repo.DeleteUser(s.ctx, u.ID))

	_, err = s.repo.GetTransaction(s.ctx, id)
	assert.ErrorIs(s.T(), err, ErrNotFound, "transactions must cascade")
	_, err = s.repo.GetSessionUser(s.ctx, "tok")
	assert.ErrorIs(s.T(), err, ErrNotFound, "sessions must cascade")
}

func (s *RepositoryTestSuite) TestSessions() {
	u := s.mustCreateUser("alice")
	require.NoError(s.T(), s.repo.CreateSession(s.ctx, "live", u.ID, time.Now().Add(time.Hour)))
	require.NoError(s.T(), s.repo.CreateSession(s.ctx, "stale", u.ID, time.Now().Add(-time.Hour)))

	got, err := s.repo.GetSessionUser(s.ctx, "live")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.ID, got.ID)

	_, err = s.repo.GetSessionUser(s.ctx, "stale")
	assert.ErrorIs(s.T(), err, ErrNotFound, "expired session must not resolve")

	n, err := s.repo.DeleteExpiredSessions(s.ctx)
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, n)

	require.NoError(s.T(), s.repo.DeleteSession(s.ctx, "live"))
	_, err = s.repo.GetSessionUser(s.ctx, "live")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestLastMonthExpenses() {
	u := s.mustCreateUser("alice")
	lastMonth := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	thisMonth := time.Now().Format("2006-01-02")

	for _, tx := range []core.Transaction{
		{UserID: u.ID, Description: "old rent", Type: core.Expenses, Amount: core.Money{Cents: 5000}, Date: lastMonth},
		{UserID: u.ID, Description: "old salary", Type: core.Income, Amount: core.Money{Cents: 9000}, Date: lastMonth},
		{UserID: u.ID, Description: "new rent", Type: core.Expenses, Amount: core.Money{Cents: 7000}, Date: thisMonth},
	} {
		_, err := s.repo.CreateTransaction(s.ctx, tx)
		require.NoError(s.T(), err)
	}

	got, err := s.repo.LastMonthExpenses(s.ctx, u.ID)
	require.NoError(s.T(), err)

	want := int64(5000)
	// When the 30-day window lands in the same calendar month the current
	// month's expenses are counted too, matching the query's month filter.
	if time.Now().AddDate(0, 0, -30).Format("01") == time.Now().Format("01") {
		want += 7000
	}
	assert.Equal(s.T(), want, got.Cents)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
