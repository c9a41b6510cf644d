package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	Extract   ExtractConfig   `yaml:"extract"`
	LLM       LLMConfig       `yaml:"llm"`
	Export    ExportConfig    `yaml:"export"`
	Standards StandardsConfig `yaml:"standards"`
}

// DatabaseConfig holds history store configuration. The DSN selects the
// driver: postgres:// URLs use pgx, anything else is treated as a SQLite path.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"`
	MaxConns         int32         `yaml:"max_conns"`
	DialTimeout      time.Duration `yaml:"dial_timeout"`
	StatementTimeout time.Duration `yaml:"statement_timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
}

// ExtractConfig holds PDF extraction configuration
type ExtractConfig struct {
	Pdftotext   string        `yaml:"pdftotext"`
	Pdftoppm    string        `yaml:"pdftoppm"`
	Tesseract   string        `yaml:"tesseract"`
	OCRDPI      int           `yaml:"ocr_dpi"`
	MaxPages    int           `yaml:"max_pages"`
	TessdataDir string        `yaml:"tessdata_dir"`
	Timeout     time.Duration `yaml:"timeout"`
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ExportConfig holds report export configuration
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// StandardsConfig holds the compliance database location
type StandardsConfig struct {
	DBPath string `yaml:"db_path"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", "luxaudit.db"),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 10),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxUploadBytes:  int64(getEnvAsInt("HTTP_MAX_UPLOAD_BYTES", 64<<20)),
		},
		Extract: ExtractConfig{
			Pdftotext:   getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			OCRDPI:      getEnvAsInt("OCR_DPI", 300),
			MaxPages:    getEnvAsInt("OCR_MAX_PAGES", 0),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Timeout:     getEnvAsDuration("EXTRACT_TIMEOUT", 2*time.Minute),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Export: ExportConfig{
			OutputDir: getEnv("EXPORT_DIR", "./reports"),
		},
		Standards: StandardsConfig{
			DBPath: getEnv("STANDARDS_DB", "standards_database.json"),
		},
	}
}

// ApplyFile overlays values from a YAML config file on top of the current
// configuration. Missing keys keep their existing values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Extract.OCRDPI < 72 || c.Extract.OCRDPI > 1200 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be between 72 and 1200", ErrInvalidInput)
	}
	return nil
}
