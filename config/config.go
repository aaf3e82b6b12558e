package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config is everything the terminal reads from its environment.
type Config struct {
	Port       string
	GinMode    string
	CORSOrigin string

	BackendURL     string
	BackendToken   string
	BackendTimeout time.Duration
	RealtimeURL    string

	JWTSecret string

	DBDriver string
	DBDSN    string

	RedisAddr string
	LedgerTTL time.Duration

	ReceiptDir             string
	PrintDelay             time.Duration
	CustomizationRulesFile string
	TerminalID             string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		GinMode:                getEnv("GIN_MODE", "debug"),
		CORSOrigin:             getEnv("CORS_ORIGIN", "http://localhost:3000"),
		BackendURL:             getEnv("BACKEND_URL", "http://localhost:5000/api"),
		BackendToken:           os.Getenv("BACKEND_TOKEN"),
		RealtimeURL:            os.Getenv("REALTIME_URL"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		DBDriver:               getEnv("DB_DRIVER", "sqlite"),
		DBDSN:                  getEnv("DB_DSN", "pos.db"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		ReceiptDir:             getEnv("RECEIPT_DIR", "receipts"),
		CustomizationRulesFile: os.Getenv("CUSTOMIZATION_RULES_FILE"),
		TerminalID:             getEnv("TERMINAL_ID", "POS-01"),
	}

	var err error
	if cfg.BackendTimeout, err = getDuration("BACKEND_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.PrintDelay, err = getDuration("PRINT_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.LedgerTTL, err = getDuration("LEDGER_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the terminal cannot start with.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is not set")
	}
	if c.DBDriver != "sqlite" && c.DBDriver != "mysql" {
		return fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is not set")
	}
	if c.PrintDelay < 0 {
		return fmt.Errorf("PRINT_DELAY must not be negative")
	}
	return nil
}

// InitDB opens the local journal database.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	gormCfg := &gorm.Config{}
	if cfg.GinMode == "release" {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	// Bare numbers are milliseconds.
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
