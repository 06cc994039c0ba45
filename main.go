package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"library-desk/config"
	"library-desk/library"
)

// services bundles everything the screens call into.
type services struct {
	cfg       *config.Config
	store     *library.Store
	ledger    *library.Ledger
	analytics *library.Analytics
	notifier  *library.Notifier
	events    *library.EventBoard
	users     *library.UserRegistry
	archive   *library.DownloadArchive
}

// buildServices loads the snapshot and wires the domain services. A missing
// snapshot file is a fresh start, not an error.
func buildServices() (*services, error) {
	cfg := config.NewConfig()

	gateway, err := library.NewGateway(cfg.DataDir, cfg.SnapshotFile)
	if err != nil {
		return nil, err
	}

	store := library.NewStore(gateway)
	if err := store.Load(); err != nil {
		if errors.Is(err, library.ErrSnapshotAbsent) {
			fmt.Println("No existing library data found. Starting with an empty library.")
		} else {
			return nil, fmt.Errorf("load library data: %w", err)
		}
	} else {
		fmt.Println("Library data loaded successfully.")
	}

	ledger := library.NewLedger(store, cfg.LoanDays, cfg.DailyFine)
	return &services{
		cfg:       cfg,
		store:     store,
		ledger:    ledger,
		analytics: library.NewAnalytics(store, ledger),
		notifier:  library.NewNotifier(store, ledger),
		events:    library.NewEventBoard(),
		users:     library.NewUserRegistry(cfg.BcryptCost),
		archive:   library.NewDownloadArchive(cfg.DownloadDir),
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "library-desk",
		Short:         "Manage a local library of books, members, and loans",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildServices()
			if err != nil {
				return err
			}
			runShell(svc)
			return nil
		},
	}
	root.AddCommand(newReportCmd(), newResetCmd(), newSeedCmd())
	return root
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the library report and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildServices()
			if err != nil {
				return err
			}
			printReport(svc.analytics.Report())
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all books, members, and transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset is irreversible; re-run with --yes to confirm")
			}
			svc, err := buildServices()
			if err != nil {
				return err
			}
			if err := svc.store.Reset(); err != nil {
				return err
			}
			log.Printf("Library reset. Empty snapshot written to %s", svc.cfg.DataDir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the library with a small sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildServices()
			if err != nil {
				return err
			}
			return seedLibrary(svc.store)
		},
	}
}

// seedLibrary loads a starter catalog and membership, skipping entries that
// already exist.
func seedLibrary(store *library.Store) error {
	books := []*library.Book{
		library.NewBook(library.BookID("1"), "1984", "George Orwell", "Fiction", 1949),
		library.NewBook(library.BookID("2"), "Animal Farm", "George Orwell", "Fiction", 1945),
		library.NewBook(library.BookID("3"), "The Art of War", "Sun Tzu", "History", -500),
		library.NewBook(library.BookID("4"), "The Fellowship of the Ring", "J.R.R. Tolkien", "Fantasy", 1954),
		library.NewBook(library.BookID("5"), "The Two Towers", "J.R.R. Tolkien", "Fantasy", 1954),
		library.NewBook(library.BookID("6"), "Romeo and Juliet", "William Shakespeare", "Fiction", 1597),
	}
	members := []*library.Member{
		{ID: library.MemberID("1"), Name: "Alice", Joined: "2024-01-15"},
		{ID: library.MemberID("2"), Name: "Bob", Joined: "2024-03-02"},
	}

	seeded := 0
	for _, b := range books {
		if err := store.AddBook(b); err != nil {
			if errors.Is(err, library.ErrDuplicateID) {
				log.Printf("Skipping %s: already in catalog", b.ID)
				continue
			}
			return err
		}
		seeded++
	}
	for _, m := range members {
		if err := store.RegisterMember(m); err != nil {
			if errors.Is(err, library.ErrDuplicateID) {
				log.Printf("Skipping %s: already registered", m.ID)
				continue
			}
			return err
		}
		seeded++
	}
	log.Printf("Seed complete: %d new entries", seeded)
	return nil
}

func main() {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
