package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/luxaudit/luxaudit/internal/llm"
)

// Config for the OpenAI client.
type Config struct {
	APIKey      string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // e.g., "gpt-4o-mini"
	FastModel   string        // cheaper model for the short company prompt
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	validator  *llm.SchemaValidator
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.FastModel == "" {
		cfg.FastModel = cfg.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	validator, err := llm.CompileSchema(llm.BuildExtractionJSONSchema())
	if err != nil {
		// validation falls back to per-call compilation
		logger.Error("llm.schema.compile_failed", "error", err)
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		validator:  validator,
		log:        logger,
	}
}

// Configured reports whether a credential is present. Fast mode uses this to
// decide between the LLM path and the regex heuristic.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}
