package library

import (
	"sort"
	"strings"
)

// Analytics exposes read-only views over the store. Every view is a fresh
// linear scan; nothing is indexed or cached.
type Analytics struct {
	store  *Store
	ledger *Ledger
}

// NewAnalytics builds the read-only views over store, delegating overdue
// detection to ledger.
func NewAnalytics(store *Store, ledger *Ledger) *Analytics {
	return &Analytics{store: store, ledger: ledger}
}

// AvailableBooks lists books currently available for borrowing.
func (a *Analytics) AvailableBooks() []*Book {
	var out []*Book
	for _, b := range a.store.books {
		if b.Available {
			out = append(out, b)
		}
	}
	return out
}

// SearchBooks matches the query as a case-insensitive substring of title or
// author.
func (a *Analytics) SearchBooks(query string) []*Book {
	q := strings.ToLower(query)
	var out []*Book
	for _, b := range a.store.books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	return out
}

// Recommend returns books whose genre and author both equal the given values,
// compared case-insensitively. Both must match; this is a narrow exact filter,
// not a substring search.
func (a *Analytics) Recommend(genre, author string) []*Book {
	var out []*Book
	for _, b := range a.store.books {
		if strings.EqualFold(b.Genre, genre) && strings.EqualFold(b.Author, author) {
			out = append(out, b)
		}
	}
	return out
}

// OverdueLoan joins an overdue transaction with its member and book.
type OverdueLoan struct {
	Transaction *Transaction
	Book        *Book
	Member      *Member
}

// OverdueLoans lists overdue transactions joined with their entities.
// Transactions whose member or book has since been removed are skipped.
func (a *Analytics) OverdueLoans() []OverdueLoan {
	var out []OverdueLoan
	for _, t := range a.ledger.OverdueTransactions() {
		b, okB := a.store.Book(t.BookID)
		m, okM := a.store.Member(t.MemberID)
		if okB && okM {
			out = append(out, OverdueLoan{Transaction: t, Book: b, Member: m})
		}
	}
	return out
}

// BookCount pairs a book with how many transactions reference it.
type BookCount struct {
	Book  *Book
	Count int
}

// MemberCount pairs a member with how many transactions reference them.
type MemberCount struct {
	Member *Member
	Count  int
}

// countByKey tallies transactions by key in encounter order, so ties later
// sort deterministically: first key borrowed wins.
func countByKey(transactions []*Transaction, key func(*Transaction) string) ([]string, map[string]int) {
	counts := make(map[string]int)
	var order []string
	for _, t := range transactions {
		k := key(t)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	return order, counts
}

// MostBorrowedBooks returns up to n books by transaction count, descending.
// Books no longer in the catalog are skipped after ranking, matching the
// report that only renders resolvable entries.
func (a *Analytics) MostBorrowedBooks(n int) []BookCount {
	order, counts := countByKey(a.store.transactions, func(t *Transaction) string { return t.BookID })
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	var out []BookCount
	for _, id := range order {
		if len(out) == n {
			break
		}
		if b, ok := a.store.Book(id); ok {
			out = append(out, BookCount{Book: b, Count: counts[id]})
		}
	}
	return out
}

// MostActiveMembers returns up to n members by transaction count, descending.
func (a *Analytics) MostActiveMembers(n int) []MemberCount {
	order, counts := countByKey(a.store.transactions, func(t *Transaction) string { return t.MemberID })
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	var out []MemberCount
	for _, id := range order {
		if len(out) == n {
			break
		}
		if m, ok := a.store.Member(id); ok {
			out = append(out, MemberCount{Member: m, Count: counts[id]})
		}
	}
	return out
}

// GenreCounts groups the catalog by genre string.
func (a *Analytics) GenreCounts() map[string]int {
	counts := make(map[string]int)
	for _, b := range a.store.books {
		counts[b.Genre]++
	}
	return counts
}

// Report summarizes the store for the report screen.
type Report struct {
	TotalBooks        int
	TotalMembers      int
	TotalTransactions int
	BooksByGenre      map[string]int
}

// Report builds the library summary.
func (a *Analytics) Report() Report {
	return Report{
		TotalBooks:        len(a.store.books),
		TotalMembers:      len(a.store.members),
		TotalTransactions: len(a.store.transactions),
		BooksByGenre:      a.GenreCounts(),
	}
}
