package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage modes.
const (
	ModeLocal    = "local"
	ModePostgres = "postgres"
)

// Password hashing modes.
const (
	HashBcrypt = "bcrypt"
	HashPlain  = "plain"
)

const defaultJWTSecret = "laporrt-secret-key-change-in-production"

var (
	config     *Config
	configErr  error
	configOnce sync.Once
)

// Config stores all configuration of the application.
type Config struct {
	// Storage
	StorageMode    string `yaml:"storage_mode"`
	LocalStorePath string `yaml:"local_store_path"`
	LocalSeed      bool   `yaml:"local_seed"`

	// Database
	DBHost            string        `yaml:"db_host"`
	DBUser            string        `yaml:"db_user"`
	DBPassword        string        `yaml:"db_password"`
	DBName            string        `yaml:"db_name"`
	DBPort            string        `yaml:"db_port"`
	DBSSLMode         string        `yaml:"db_sslmode"`
	DBMaxIdleConns    int           `yaml:"db_max_idle_conns"`
	DBMaxOpenConns    int           `yaml:"db_max_open_conns"`
	DBConnMaxLifetime time.Duration `yaml:"db_conn_max_lifetime"`
	DBLogLevel        string        `yaml:"db_log_level"`
	DBAutoMigrate     bool          `yaml:"db_auto_migrate"`

	// Redis
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Sessions
	JWTSecret       string        `yaml:"jwt_secret"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	PasswordHashing string        `yaml:"password_hashing"`

	// Server
	ServerPort string `yaml:"server_port"`
	GinMode    string `yaml:"gin_mode"`

	// Community unit printed on exports and letters
	RTName    string `yaml:"rt_name"`
	RWName    string `yaml:"rw_name"`
	Kelurahan string `yaml:"kelurahan"`
}

func defaults() *Config {
	return &Config{
		StorageMode:       ModeLocal,
		LocalStorePath:    "data/laporrt.json",
		LocalSeed:         true,
		DBHost:            "localhost",
		DBUser:            "user",
		DBPassword:        "password",
		DBName:            "laporrtdb",
		DBPort:            "5432",
		DBSSLMode:         "disable",
		DBMaxIdleConns:    10,
		DBMaxOpenConns:    100,
		DBConnMaxLifetime: time.Hour,
		DBLogLevel:        "warn",
		DBAutoMigrate:     true,
		RedisAddr:         "localhost:6380",
		JWTSecret:         defaultJWTSecret,
		SessionTTL:        24 * time.Hour,
		ServerPort:        "8080",
		GinMode:           "debug",
		RTName:            "RT 01",
		RWName:            "RW 05",
		Kelurahan:         "Kelurahan XYZ",
	}
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE, and environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.StorageMode = strings.ToLower(getEnv("STORAGE_MODE", cfg.StorageMode))
	cfg.LocalStorePath = getEnv("LOCAL_STORE_PATH", cfg.LocalStorePath)
	cfg.LocalSeed = getEnvAsBool("LOCAL_SEED", cfg.LocalSeed)

	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBSSLMode = getEnv("DB_SSLMODE", cfg.DBSSLMode)
	cfg.DBMaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns)
	cfg.DBMaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns)
	cfg.DBConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", cfg.DBConnMaxLifetime)
	cfg.DBLogLevel = getEnv("DB_LOG_LEVEL", cfg.DBLogLevel)
	cfg.DBAutoMigrate = getEnvAsBool("DB_AUTO_MIGRATE", cfg.DBAutoMigrate)

	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvAsInt("REDIS_DB", cfg.RedisDB)

	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.SessionTTL = getEnvAsDuration("SESSION_TTL", cfg.SessionTTL)
	cfg.PasswordHashing = strings.ToLower(getEnv("PASSWORD_HASHING", cfg.PasswordHashing))

	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)

	cfg.RTName = getEnv("RT_NAME", cfg.RTName)
	cfg.RWName = getEnv("RW_NAME", cfg.RWName)
	cfg.Kelurahan = getEnv("KELURAHAN", cfg.Kelurahan)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings and fills mode-dependent defaults.
// Passwords are hashed by default only in postgres mode.
func (c *Config) Validate() error {
	switch c.StorageMode {
	case ModeLocal, ModePostgres:
	default:
		return fmt.Errorf("unknown STORAGE_MODE %q (want %q or %q)", c.StorageMode, ModeLocal, ModePostgres)
	}

	if c.PasswordHashing == "" {
		c.PasswordHashing = HashPlain
		if c.StorageMode == ModePostgres {
			c.PasswordHashing = HashBcrypt
		}
	}
	if c.PasswordHashing != HashBcrypt && c.PasswordHashing != HashPlain {
		return fmt.Errorf("unknown PASSWORD_HASHING %q", c.PasswordHashing)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTSecret == defaultJWTSecret {
		log.Println("WARNING: JWT_SECRET is not set, using the built-in development secret")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// UnitName is the "RT 01 / RW 05" label of the community.
func (c *Config) UnitName() string {
	return c.RTName + " / " + c.RWName
}

// GetConfig returns the application configuration as a singleton.
func GetConfig() (*Config, error) {
	configOnce.Do(func() {
		config, configErr = Load()
	})
	return config, configErr
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
