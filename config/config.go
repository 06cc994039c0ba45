package config

import "github.com/spf13/viper"

// Default file locations.
const (
	// DefaultDataDir is where the snapshot document lives.
	DefaultDataDir = "./data"

	// DefaultSnapshotFile is the single JSON document holding the whole store.
	DefaultSnapshotFile = "library.json"

	// DefaultDownloadDir holds downloadable book copies.
	DefaultDownloadDir = "./downloads"
)

type (
	Config struct {
		Storage
		Circulation
		Auth
	}

	Storage struct {
		DataDir      string
		SnapshotFile string
		DownloadDir  string
	}

	Circulation struct {
		LoanDays  int     // Days a book may be kept before it is overdue
		DailyFine float64 // Fine per overdue day in currency units
		MaxBooks  int     // Default borrowing limit per member
	}

	Auth struct {
		BcryptCost int
	}
)

// NewConfig reads configuration from the environment, falling back to
// defaults suitable for a local single-user installation.
func NewConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("library")
	v.AutomaticEnv()
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("snapshot_file", DefaultSnapshotFile)
	v.SetDefault("download_dir", DefaultDownloadDir)
	v.SetDefault("loan_days", 14)
	v.SetDefault("daily_fine", 1.0)
	v.SetDefault("max_books", 3)
	v.SetDefault("bcrypt_cost", 12)

	return &Config{
		Storage: Storage{
			DataDir:      v.GetString("data_dir"),
			SnapshotFile: v.GetString("snapshot_file"),
			DownloadDir:  v.GetString("download_dir"),
		},
		Circulation: Circulation{
			LoanDays:  v.GetInt("loan_days"),
			DailyFine: v.GetFloat64("daily_fine"),
			MaxBooks:  v.GetInt("max_books"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("bcrypt_cost"),
		},
	}
}
