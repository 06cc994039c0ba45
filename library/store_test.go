package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	g, err := NewGateway(t.TempDir(), "library.json")
	require.NoError(t, err)
	return NewStore(g)
}

func TestAddBookDuplicateLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddBook(NewBook("B1", "Dune", "Frank Herbert", "Science Fiction", 1965)))

	err := s.AddBook(NewBook("B1", "Dune Messiah", "Frank Herbert", "Science Fiction", 1969))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, s.Books(), 1)

	b, ok := s.Book("B1")
	require.True(t, ok)
	assert.Equal(t, "Dune", b.Title)
}

func TestRegisterMember(t *testing.T) {
	s := newTestStore(t)

	m := &Member{ID: "M1", Name: "Alice", Joined: "2024-02-10"}
	require.NoError(t, s.RegisterMember(m))
	assert.Equal(t, DefaultMaxBooks, m.MaxBooksAllowed)

	err := s.RegisterMember(&Member{ID: "M1", Name: "Imposter", Joined: "2024-02-11"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, s.Members(), 1)
}

func TestRegisterMemberMalformedJoinDate(t *testing.T) {
	s := newTestStore(t)

	err := s.RegisterMember(&Member{ID: "M1", Name: "Alice", Joined: "10/02/2024"})
	assert.ErrorIs(t, err, ErrMalformedDate)
	assert.Empty(t, s.Members())
}

func TestRemoveBook(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddBook(NewBook("B1", "Dune", "Frank Herbert", "Science Fiction", 1965)))

	require.NoError(t, s.RemoveBook("B1"))
	assert.Empty(t, s.Books())
}

func TestRemoveBookMissingSkipsPersistenceWrite(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddBook(NewBook("B1", "Dune", "Frank Herbert", "Science Fiction", 1965)))

	before, err := os.ReadFile(s.gateway.Path())
	require.NoError(t, err)

	assert.ErrorIs(t, s.RemoveBook("B99"), ErrNotFound)

	after, err := os.ReadFile(s.gateway.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "a miss must not rewrite the snapshot")
	assert.Len(t, s.Books(), 1)
}

func TestRemoveBookKeepsTransactionHistory(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddBook(NewBook("B1", "Dune", "Frank Herbert", "Science Fiction", 1965)))
	require.NoError(t, s.RegisterMember(&Member{ID: "M1", Name: "Alice", Joined: "2024-02-10"}))

	_, err := s.RecordTransaction("M1", "B1", Borrow)
	require.NoError(t, err)

	require.NoError(t, s.RemoveBook("B1"))
	assert.Len(t, s.Transactions(), 1, "no cascade: history keeps dangling references")
}

func TestRecordTransaction(t *testing.T) {
	s := newTestStore(t)

	// IDs are trusted; no referential check happens here.
	open, err := s.RecordTransaction("M1", "B1", Borrow)
	require.NoError(t, err)
	assert.Equal(t, "T1", open.ID)
	assert.Equal(t, "M1", open.MemberID)
	assert.Equal(t, "B1", open.BookID)
	assert.True(t, open.Open())

	closed, err := s.RecordTransaction("M1", "B1", Return)
	require.NoError(t, err)
	assert.Equal(t, "T2", closed.ID)
	require.NotNil(t, closed.ReturnDate)
	assert.Equal(t, today(), *closed.ReturnDate)
	assert.Equal(t, today(), closed.BorrowDate)
}

func TestAddReview(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddBook(NewBook("B1", "Dune", "Frank Herbert", "Science Fiction", 1965)))

	require.NoError(t, s.AddReview("B1", Review{Rating: 5, Comment: "A classic."}))
	require.NoError(t, s.AddReview("B1", Review{Rating: 3, Comment: "Slow start."}))

	b, _ := s.Book("B1")
	require.Len(t, b.Reviews, 2)
	assert.Equal(t, "A classic.", b.Reviews[0].Comment)

	assert.ErrorIs(t, s.AddReview("B9", Review{Rating: 1, Comment: "?"}), ErrNotFound)
}

func TestResetPersistsEmptySnapshot(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddBook(NewBook("B1", "Dune", "Frank Herbert", "Science Fiction", 1965)))
	require.NoError(t, s.RegisterMember(&Member{ID: "M1", Name: "Alice", Joined: "2024-02-10"}))
	_, err := s.RecordTransaction("M1", "B1", Borrow)
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	assert.Empty(t, s.Books())
	assert.Empty(t, s.Members())
	assert.Empty(t, s.Transactions())

	fresh := NewStore(s.gateway)
	require.NoError(t, fresh.Load())
	assert.Empty(t, fresh.Books())
	assert.Empty(t, fresh.Members())
	assert.Empty(t, fresh.Transactions())
}

func TestGatewayCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	g, err := NewGateway(dir, "library.json")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "library.json"), g.Path())
}
