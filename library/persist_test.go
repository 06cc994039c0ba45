package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	dune := NewBook("B1", "Dune", "Frank Herbert", "Science Fiction", 1965)
	dune.Reviews = []Review{{Rating: 5, Comment: "A classic."}}
	require.NoError(t, s.AddBook(dune))
	require.NoError(t, s.AddBook(NewBook("B2", "Emma", "Jane Austen", "Fiction", 1815)))
	require.NoError(t, s.RegisterMember(&Member{ID: "M1", Name: "Alice", Joined: "2024-02-10"}))

	ledger := NewLedger(s, 14, 1.0)
	_, err := ledger.Borrow("M1", "B1")
	require.NoError(t, err)
	_, err = ledger.Borrow("M1", "B2")
	require.NoError(t, err)
	_, err = ledger.ReturnBook("M1", "B2")
	require.NoError(t, err)

	reloaded := NewStore(s.gateway)
	require.NoError(t, reloaded.Load())

	assert.Equal(t, s.Books(), reloaded.Books())
	assert.Equal(t, s.Transactions(), reloaded.Transactions())

	require.Len(t, reloaded.Members(), 1)
	m := reloaded.Members()[0]
	assert.Equal(t, "M1", m.ID)
	assert.Equal(t, "Alice", m.Name)
	assert.Equal(t, "2024-02-10", m.Joined)
	assert.Equal(t, DefaultMaxBooks, m.MaxBooksAllowed)
}

func TestLoadRebuildsMemberLoansFromOpenTransactions(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.RegisterMember(&Member{ID: "M1", Name: "Alice", Joined: "2024-02-10"}))
	for _, id := range []string{"B1", "B2", "B3", "B4"} {
		require.NoError(t, s.AddBook(NewBook(id, "Book "+id, "Author", "Fiction", 2001)))
	}

	ledger := NewLedger(s, 14, 1.0)
	for _, id := range []string{"B1", "B2", "B3"} {
		_, err := ledger.Borrow("M1", id)
		require.NoError(t, err)
	}
	_, err := ledger.ReturnBook("M1", "B2")
	require.NoError(t, err)

	reloaded := NewStore(s.gateway)
	require.NoError(t, reloaded.Load())

	m, ok := reloaded.Member("M1")
	require.True(t, ok)
	assert.Equal(t, []string{"B1", "B3"}, m.Borrowed)

	// The rebuilt view keeps the borrowing limit enforceable across restarts.
	reloadedLedger := NewLedger(reloaded, 14, 1.0)
	_, err = reloadedLedger.Borrow("M1", "B4")
	require.NoError(t, err)
	_, err = reloadedLedger.Borrow("M1", "B2")
	assert.ErrorIs(t, err, ErrBorrowLimit)
}

func TestLoadAbsentSnapshot(t *testing.T) {
	s := newTestStore(t)

	err := s.Load()
	assert.ErrorIs(t, err, ErrSnapshotAbsent)
	assert.Empty(t, s.Books())
	assert.Empty(t, s.Members())
	assert.Empty(t, s.Transactions())
}

func TestLoadMalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGateway(dir, "library.json")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(g.Path(), []byte("{not json"), 0o644))

	_, err = g.Load()
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestSaveIsAtomicAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGateway(dir, "library.json")
	require.NoError(t, err)

	s := NewStore(g)
	for i, id := range []string{"B1", "B2", "B3"} {
		require.NoError(t, s.AddBook(NewBook(id, "Book "+id, "Author", "Fiction", 2000+i)))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "library.json", entries[0].Name())
}

func TestSnapshotDocumentShape(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddBook(NewBook("B1", "Dune", "Frank Herbert", "Science Fiction", 1965)))
	require.NoError(t, s.RegisterMember(&Member{ID: "M1", Name: "Alice", Joined: "2024-02-10"}))
	_, err := s.RecordTransaction("M1", "B1", Borrow)
	require.NoError(t, err)

	data, err := os.ReadFile(s.gateway.Path())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "books")
	require.Contains(t, doc, "members")
	require.Contains(t, doc, "transactions")

	books := doc["books"].([]any)
	require.Len(t, books, 1)
	book := books[0].(map[string]any)
	assert.Equal(t, "B1", book["id"])
	assert.Equal(t, true, book["isAvailable"])

	transactions := doc["transactions"].([]any)
	require.Len(t, transactions, 1)
	tx := transactions[0].(map[string]any)
	assert.Equal(t, "T1", tx["transactionId"])
	assert.Nil(t, tx["returnDate"], "an open loan serializes a null return date")

	member := doc["members"].([]any)[0].(map[string]any)
	assert.Equal(t, "M1", member["id"])
	assert.Equal(t, "2024-02-10", member["joined"])
	assert.NotContains(t, member, "borrowed", "the loan list is transient")
}

func TestEmptySnapshotEncodesArrays(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Reset())

	data, err := os.ReadFile(s.gateway.Path())
	require.NoError(t, err)

	var doc struct {
		Books        []any `json:"books"`
		Members      []any `json:"members"`
		Transactions []any `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotNil(t, doc.Books)
	assert.NotNil(t, doc.Members)
	assert.NotNil(t, doc.Transactions)
}

func TestGatewayPathJoinsDirAndFile(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGateway(dir, "state.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "state.json"), g.Path())
}
