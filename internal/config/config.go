package config

import (
	"fmt"  // Error formatting
	"time" // Token lifetime

	"github.com/joho/godotenv"      // For loading .env files
	"github.com/shopspring/decimal" // Tax rate
	"github.com/spf13/viper"        // Environment binding with defaults
)

// Config holds the application configuration
type Config struct {
	AppPort    string          // Application port
	DBDriver   string          // Database driver: sqlite or mysql
	DBPath     string          // SQLite database file
	DBUser     string          // Database user
	DBPassword string          // Database password
	DBHost     string          // Database host
	DBPort     string          // Database port
	DBName     string          // Database name
	JWTSecret  string          // JWT secret key
	TokenTTL   time.Duration   // Session and token lifetime
	RedisAddr  string          // Redis server address, empty keeps sessions in memory
	RedisPass  string          // Redis password
	RedisDB    int             // Redis database number
	TaxRate    decimal.Decimal // Sales tax rate
	LogLevel   string          // Logrus level name
	IsProd     bool            // Is production environment
}

// LoadConfig loads configuration from the environment and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "pizza_pos.db")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("TOKEN_TTL", "12h")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TAX_RATE", "0.08")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("IS_PROD", false)

	taxRate, err := decimal.NewFromString(v.GetString("TAX_RATE"))
	if err != nil || taxRate.IsNegative() {
		return nil, fmt.Errorf("invalid TAX_RATE %q", v.GetString("TAX_RATE"))
	}
	ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", v.GetString("TOKEN_TTL"))
	}

	cfg := &Config{
		AppPort:    v.GetString("APP_PORT"),    // Application port
		DBDriver:   v.GetString("DB_DRIVER"),   // Database driver
		DBPath:     v.GetString("DB_PATH"),     // SQLite file
		DBUser:     v.GetString("DB_USER"),     // Database user
		DBPassword: v.GetString("DB_PASSWORD"), // Database password
		DBHost:     v.GetString("DB_HOST"),     // Database host
		DBPort:     v.GetString("DB_PORT"),     // Database port
		DBName:     v.GetString("DB_NAME"),     // Database name
		JWTSecret:  v.GetString("JWT_SECRET"),  // JWT secret key
		TokenTTL:   ttl,                        // Session lifetime
		RedisAddr:  v.GetString("REDIS_ADDR"),  // Redis server address
		RedisPass:  v.GetString("REDIS_PASS"),  // Redis password
		RedisDB:    v.GetInt("REDIS_DB"),       // Redis database number
		TaxRate:    taxRate,                    // Sales tax rate
		LogLevel:   v.GetString("LOG_LEVEL"),   // Log level
		IsProd:     v.GetBool("IS_PROD"),       // Is production environment
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProd {
			return nil, fmt.Errorf("JWT_SECRET required in production")
		}
		cfg.JWTSecret = "dev-secret" // Local development only
	}
	switch cfg.DBDriver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// MySQLDSN builds the Data Source Name for the mysql driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
