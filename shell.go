package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"library-desk/library"
)

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

// prompt reads one trimmed line.
func prompt(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

// promptDigits reads an ID suffix and rejects anything but digits. The core
// concatenates the prefix itself; screens own the format validation.
func promptDigits(sc *bufio.Scanner, label string) (string, bool) {
	s, ok := prompt(sc, label)
	if !ok {
		return "", false
	}
	if !library.ValidDigits(s) {
		fmt.Printf("Invalid ID: %q (digits only)\n", s)
		return "", false
	}
	return s, true
}

func runShell(svc *services) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the Library Desk!")
	fmt.Println("Available commands:")
	fmt.Println("  Books: add book, remove book, list books, list available, search, recommend")
	fmt.Println("  Reviews: add review, view reviews")
	fmt.Println("  Members: register member, list members")
	fmt.Println("  Circulation: borrow, return, transactions, overdue, fines, notify")
	fmt.Println("  Reports: report, stats")
	fmt.Println("  Events: add event, list events")
	fmt.Println("  Downloads: download")
	fmt.Println("  Accounts: register user, login, reset password")
	fmt.Println("  System: reset library, exit")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "add book":
			handleAddBook(scanner, svc)
		case "remove book":
			handleRemoveBook(scanner, svc)
		case "list books":
			handleListBooks(svc)
		case "list available":
			handleListAvailable(svc)
		case "search":
			handleSearch(scanner, svc)
		case "recommend":
			handleRecommend(scanner, svc)
		case "add review":
			handleAddReview(scanner, svc)
		case "view reviews":
			handleViewReviews(scanner, svc)
		case "register member":
			handleRegisterMember(scanner, svc)
		case "list members":
			handleListMembers(svc)
		case "borrow":
			handleBorrow(scanner, svc)
		case "return":
			handleReturn(scanner, svc)
		case "transactions":
			handleTransactions(svc)
		case "overdue":
			handleOverdue(svc)
		case "fines":
			handleFines(svc)
		case "notify":
			handleNotify(svc)
		case "report":
			printReport(svc.analytics.Report())
		case "stats":
			handleStats(svc)
		case "add event":
			handleAddEvent(scanner, svc)
		case "list events":
			handleListEvents(svc)
		case "download":
			handleDownload(scanner, svc)
		case "register user":
			handleRegisterUser(scanner, svc)
		case "login":
			handleLogin(scanner, svc)
		case "reset password":
			handleResetUserPassword(scanner, svc)
		case "reset library":
			handleResetLibrary(scanner, svc)
		case "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

func handleAddBook(sc *bufio.Scanner, svc *services) {
	digits, ok := promptDigits(sc, "Book ID (digits): ")
	if !ok {
		return
	}
	title, ok := prompt(sc, "Title: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author: ")
	if !ok {
		return
	}
	genre, ok := prompt(sc, "Genre: ")
	if !ok {
		return
	}
	yearStr, ok := prompt(sc, "Year: ")
	if !ok {
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		fmt.Printf("Invalid year: %s\n", yearStr)
		return
	}

	book := library.NewBook(library.BookID(digits), title, author, genre, year)
	if err := svc.store.AddBook(book); err != nil {
		fmt.Printf("Error adding book: %v\n", err)
		return
	}
	fmt.Printf("Added '%s' by %s to the library.\n", book.Title, book.Author)
}

func handleRemoveBook(sc *bufio.Scanner, svc *services) {
	digits, ok := promptDigits(sc, "Book ID (digits): ")
	if !ok {
		return
	}
	id := library.BookID(digits)
	book, found := svc.store.Book(id)
	if !found {
		fmt.Printf("The book %s is not in the library.\n", id)
		return
	}
	if err := svc.store.RemoveBook(id); err != nil {
		fmt.Printf("Error removing book: %v\n", err)
		return
	}
	fmt.Printf("Removed '%s' by %s from the library.\n", book.Title, book.Author)
}

func handleListBooks(svc *services) {
	books := svc.store.Books()
	if len(books) == 0 {
		fmt.Println("No books in library.")
		return
	}
	fmt.Printf("%-6s %-35s %-25s %-20s %-6s %s\n", "ID", "Title", "Author", "Genre", "Year", "Available")
	fmt.Println(strings.Repeat("-", 105))
	for _, b := range books {
		avail := "Yes"
		if !b.Available {
			avail = "No"
		}
		fmt.Printf("%-6s %-35s %-25s %-20s %-6d %s\n",
			b.ID, truncateString(b.Title, 35), truncateString(b.Author, 25),
			truncateString(b.Genre, 20), b.Year, avail)
	}
}

func handleListAvailable(svc *services) {
	books := svc.analytics.AvailableBooks()
	if len(books) == 0 {
		fmt.Println("No books are currently available.")
		return
	}
	fmt.Println("Available books:")
	for _, b := range books {
		fmt.Printf("- %s by %s\n", b.Title, b.Author)
	}
}

func handleSearch(sc *bufio.Scanner, svc *services) {
	query, ok := prompt(sc, "Query: ")
	if !ok {
		return
	}
	results := svc.analytics.SearchBooks(query)
	if len(results) == 0 {
		fmt.Printf("No books found for query: %s\n", query)
		return
	}
	fmt.Println("Search results:")
	for _, b := range results {
		fmt.Printf("- %s by %s (%s)\n", b.Title, b.Author, b.Genre)
	}
}

func handleRecommend(sc *bufio.Scanner, svc *services) {
	genre, ok := prompt(sc, "Genre: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author: ")
	if !ok {
		return
	}
	books := svc.analytics.Recommend(genre, author)
	if len(books) == 0 {
		fmt.Printf("No books found for genre %q by %q.\n", genre, author)
		return
	}
	fmt.Println("Recommended books:")
	for _, b := range books {
		fmt.Printf("- %s by %s\n", b.Title, b.Author)
	}
}

func handleAddReview(sc *bufio.Scanner, svc *services) {
	digits, ok := promptDigits(sc, "Book ID (digits): ")
	if !ok {
		return
	}
	ratingStr, ok := prompt(sc, "Rating (1-5): ")
	if !ok {
		return
	}
	rating, err := strconv.Atoi(ratingStr)
	if err != nil || rating < 1 || rating > 5 {
		fmt.Printf("Invalid rating: %s (must be 1-5)\n", ratingStr)
		return
	}
	comment, ok := prompt(sc, "Comment: ")
	if !ok {
		return
	}

	id := library.BookID(digits)
	if err := svc.store.AddReview(id, library.Review{Rating: rating, Comment: comment}); err != nil {
		fmt.Printf("Error adding review: %v\n", err)
		return
	}
	book, _ := svc.store.Book(id)
	fmt.Printf("Review added for '%s': %s\n", book.Title, comment)
}

func handleViewReviews(sc *bufio.Scanner, svc *services) {
	digits, ok := promptDigits(sc, "Book ID (digits): ")
	if !ok {
		return
	}
	book, found := svc.store.Book(library.BookID(digits))
	if !found {
		fmt.Printf("Error: Book with ID %s not found\n", library.BookID(digits))
		return
	}
	if len(book.Reviews) == 0 {
		fmt.Printf("No reviews for '%s'.\n", book.Title)
		return
	}
	fmt.Printf("Reviews for '%s':\n", book.Title)
	for _, r := range book.Reviews {
		fmt.Printf("- %d/5: %s\n", r.Rating, r.Comment)
	}
}

func handleRegisterMember(sc *bufio.Scanner, svc *services) {
	digits, ok := promptDigits(sc, "Member ID (digits): ")
	if !ok {
		return
	}
	name, ok := prompt(sc, "Name: ")
	if !ok {
		return
	}
	joined, ok := prompt(sc, "Joined (YYYY-MM-DD): ")
	if !ok {
		return
	}

	member := &library.Member{
		ID:              library.MemberID(digits),
		Name:            name,
		Joined:          joined,
		MaxBooksAllowed: svc.cfg.MaxBooks,
	}
	if err := svc.store.RegisterMember(member); err != nil {
		fmt.Printf("Error registering member: %v\n", err)
		return
	}
	fmt.Printf("Registered member: %s.\n", member.Name)
}

func handleListMembers(svc *services) {
	members := svc.store.Members()
	if len(members) == 0 {
		fmt.Println("No members registered.")
		return
	}
	fmt.Printf("%-6s %-30s %-12s %s\n", "ID", "Name", "Joined", "Borrowed")
	fmt.Println(strings.Repeat("-", 60))
	for _, m := range members {
		fmt.Printf("%-6s %-30s %-12s %d/%d\n",
			m.ID, truncateString(m.Name, 30), m.Joined, len(m.Borrowed), m.MaxBooksAllowed)
	}
}

func handleBorrow(sc *bufio.Scanner, svc *services) {
	memberDigits, ok := promptDigits(sc, "Member ID (digits): ")
	if !ok {
		return
	}
	bookDigits, ok := promptDigits(sc, "Book ID (digits): ")
	if !ok {
		return
	}

	memberID := library.MemberID(memberDigits)
	bookID := library.BookID(bookDigits)
	if _, err := svc.ledger.Borrow(memberID, bookID); err != nil {
		fmt.Printf("Error borrowing book: %v\n", err)
		return
	}
	book, _ := svc.store.Book(bookID)
	member, _ := svc.store.Member(memberID)
	fmt.Printf("Transaction recorded: BORROW - %s by %s.\n", book.Title, member.Name)
}

func handleReturn(sc *bufio.Scanner, svc *services) {
	memberDigits, ok := promptDigits(sc, "Member ID (digits): ")
	if !ok {
		return
	}
	bookDigits, ok := promptDigits(sc, "Book ID (digits): ")
	if !ok {
		return
	}

	memberID := library.MemberID(memberDigits)
	bookID := library.BookID(bookDigits)
	if _, err := svc.ledger.ReturnBook(memberID, bookID); err != nil {
		fmt.Printf("Error returning book: %v\n", err)
		return
	}
	fmt.Println("Book returned successfully!")
}

func handleTransactions(svc *services) {
	transactions := svc.store.Transactions()
	if len(transactions) == 0 {
		fmt.Println("No transactions recorded.")
		return
	}
	fmt.Println("Transaction history:")
	for _, t := range transactions {
		member, okM := svc.store.Member(t.MemberID)
		book, okB := svc.store.Book(t.BookID)
		if !okM || !okB {
			continue
		}
		returned := "Not yet"
		if t.ReturnDate != nil {
			returned = *t.ReturnDate
		}
		fmt.Printf("- Transaction ID: %s, Book: '%s' by %s, Member: %s, Borrowed: %s, Returned: %s\n",
			t.ID, book.Title, book.Author, member.Name, t.BorrowDate, returned)
	}
}

func handleOverdue(svc *services) {
	loans := svc.analytics.OverdueLoans()
	if len(loans) == 0 {
		fmt.Println("No overdue books.")
		return
	}
	fmt.Println("Overdue books:")
	for _, l := range loans {
		fmt.Printf("- '%s' borrowed by %s on %s\n", l.Book.Title, l.Member.Name, l.Transaction.BorrowDate)
	}
}

func handleFines(svc *services) {
	notices := svc.ledger.Fines()
	if len(notices) == 0 {
		fmt.Println("No fines to calculate.")
		return
	}
	fmt.Println("Fines for overdue books:")
	for _, n := range notices {
		fmt.Printf("- Member ID: %s owes %.2f for Book ID: '%s'.\n", n.MemberID, n.Amount, n.BookID)
	}
}

func handleNotify(svc *services) {
	notifications := svc.notifier.NotifyOverdue()
	if len(notifications) == 0 {
		fmt.Println("No overdue notifications to send.")
		return
	}
	fmt.Println("Sending overdue notifications:")
	for _, n := range notifications {
		fmt.Println(n.Message())
	}
}

func printReport(r library.Report) {
	fmt.Println("\n--- Library Report ---")
	fmt.Printf("Total Books: %d\n", r.TotalBooks)
	fmt.Printf("Total Members: %d\n", r.TotalMembers)
	fmt.Printf("Total Transactions: %d\n", r.TotalTransactions)
	fmt.Println("Books by Genre:")

	genres := make([]string, 0, len(r.BooksByGenre))
	for g := range r.BooksByGenre {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	for _, g := range genres {
		fmt.Printf("- %s: %d\n", g, r.BooksByGenre[g])
	}
}

func handleStats(svc *services) {
	topBooks := svc.analytics.MostBorrowedBooks(5)
	if len(topBooks) == 0 {
		fmt.Println("No books have been borrowed yet.")
	} else {
		fmt.Println("Most Borrowed Books:")
		for _, bc := range topBooks {
			fmt.Printf("- %s by %s: %d times\n", bc.Book.Title, bc.Book.Author, bc.Count)
		}
	}

	topMembers := svc.analytics.MostActiveMembers(5)
	if len(topMembers) == 0 {
		fmt.Println("No active members found.")
		return
	}
	fmt.Println("Active Members:")
	for _, mc := range topMembers {
		fmt.Printf("- %s: %d transactions\n", mc.Member.Name, mc.Count)
	}
}

func handleAddEvent(sc *bufio.Scanner, svc *services) {
	name, ok := prompt(sc, "Event name: ")
	if !ok {
		return
	}
	date, ok := prompt(sc, "Date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	description, ok := prompt(sc, "Description: ")
	if !ok {
		return
	}
	event, err := svc.events.Add(name, date, description)
	if err != nil {
		fmt.Printf("Error adding event: %v\n", err)
		return
	}
	fmt.Printf("Event '%s' added on %s.\n", event.Name, event.Date)
}

func handleListEvents(svc *services) {
	events := svc.events.Events()
	if len(events) == 0 {
		fmt.Println("No upcoming events.")
		return
	}
	fmt.Println("Upcoming Events:")
	for _, e := range events {
		fmt.Printf("- %s on %s: %s\n", e.Name, e.Date, e.Description)
	}
}

func handleDownload(sc *bufio.Scanner, svc *services) {
	digits, ok := promptDigits(sc, "Book ID (digits): ")
	if !ok {
		return
	}
	id := library.BookID(digits)
	if !svc.archive.Eligible(id) {
		fmt.Println("You are not eligible to download books.")
		return
	}
	path, err := svc.archive.Resolve(id)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Downloadable copy available at %s\n", path)
}

func handleRegisterUser(sc *bufio.Scanner, svc *services) {
	email, ok := prompt(sc, "Email: ")
	if !ok {
		return
	}
	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if password == "" {
		fmt.Println("Error: Password cannot be empty")
		return
	}
	if err := svc.users.Register(email, password); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("User %s registered.\n", email)
}

func handleLogin(sc *bufio.Scanner, svc *services) {
	email, ok := prompt(sc, "Email: ")
	if !ok {
		return
	}
	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if err := svc.users.Login(email, password); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}
	fmt.Printf("Welcome back, %s.\n", email)
}

func handleResetUserPassword(sc *bufio.Scanner, svc *services) {
	email, ok := prompt(sc, "Email: ")
	if !ok {
		return
	}
	password, err := readPassword("New password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if password == "" {
		fmt.Println("Error: Password cannot be empty")
		return
	}
	if err := svc.users.ResetPassword(email, password); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Password reset for %s.\n", email)
}

func handleResetLibrary(sc *bufio.Scanner, svc *services) {
	confirm, ok := prompt(sc, "This erases all data. Type RESET to confirm: ")
	if !ok || confirm != "RESET" {
		fmt.Println("Reset cancelled.")
		return
	}
	if err := svc.store.Reset(); err != nil {
		fmt.Printf("Error resetting library: %v\n", err)
		return
	}
	fmt.Println("Library has been reset.")
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
