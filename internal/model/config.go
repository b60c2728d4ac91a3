package model

import (
	"fmt"
	"time"
)

// Config holds the full claimsift configuration, loaded by the CLI layer
// from flags, CLAIMSIFT_* environment variables and ~/.claimsift/config.yaml.
type Config struct {
	Mail     MailConfig     `yaml:"mail" mapstructure:"mail"`
	SMTP     SMTPConfig     `yaml:"smtp" mapstructure:"smtp"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Ledger   LedgerConfig   `yaml:"ledger" mapstructure:"ledger"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Probe    ProbeConfig    `yaml:"probe" mapstructure:"probe"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// MailConfig configures the inbound source. SpoolDir is the directory-based
// transport used by the built-in DirSource; an IMAP poller is an external
// collaborator behind the same seam.
type MailConfig struct {
	SpoolDir string `yaml:"spool_dir" mapstructure:"spool_dir"`
}

// SMTPConfig configures the outbound courier.
type SMTPConfig struct {
	Server    string `yaml:"server" mapstructure:"server"`
	Port      int    `yaml:"port" mapstructure:"port"`
	Sender    string `yaml:"sender" mapstructure:"sender"`
	Password  string `yaml:"password" mapstructure:"password"`
	Recipient string `yaml:"recipient" mapstructure:"recipient"`
}

// LLMConfig configures the text-analysis provider.
type LLMConfig struct {
	Provider  string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, ""
	Model     string  `yaml:"model" mapstructure:"model"`
	APIKey    string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RateRPS   float64 `yaml:"rate_rps" mapstructure:"rate_rps"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`

	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// PipelineConfig configures the intake loop.
type PipelineConfig struct {
	PollInterval       time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	ErrorBackoff       time.Duration `yaml:"error_backoff" mapstructure:"error_backoff"`
	MaxAttachmentBytes int64         `yaml:"max_attachment_bytes" mapstructure:"max_attachment_bytes"`
}

// LedgerConfig configures the processed-items ledger.
type LedgerConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig configures the artifact/response caches.
type CacheConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir         string        `yaml:"dir" mapstructure:"dir"`
	ResponseTTL time.Duration `yaml:"response_ttl" mapstructure:"response_ttl"`
}

// ProbeConfig configures the firm-website reachability probe.
type ProbeConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// OutputConfig configures reporting behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Mail: MailConfig{
			SpoolDir: "spool",
		},
		SMTP: SMTPConfig{
			Server: "smtp.gmail.com",
			Port:   587,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   60,
			MaxTokens: 4000,
			RateRPS:   1,
			RateBurst: 2,
		},
		Pipeline: PipelineConfig{
			PollInterval:       5 * time.Minute,
			ErrorBackoff:       time.Minute,
			MaxAttachmentBytes: 20 << 20, // 20MB, legal documents run large
		},
		Ledger: LedgerConfig{
			Path: "claimsift.db",
		},
		Cache: CacheConfig{
			Enabled:     true,
			Dir:         ".claimsift-cache",
			ResponseTTL: 24 * time.Hour,
		},
		Probe: ProbeConfig{
			Enabled:   true,
			Timeout:   10 * time.Second,
			UserAgent: "Claimsift/0.1 (+https://github.com/pkarpov/claimsift)",
		},
		Output: OutputConfig{},
	}
}

// Validate reports fatal configuration errors. These are detected once at
// startup and prevent the monitor loop from starting at all.
func (c *Config) Validate() error {
	if c.LLM.Provider != "" && c.LLM.Provider != "ollama" && c.LLM.APIKey == "" {
		return fmt.Errorf("llm provider %q requires an API key", c.LLM.Provider)
	}
	if c.SMTP.Recipient == "" {
		return fmt.Errorf("smtp recipient is required")
	}
	if c.SMTP.Sender == "" {
		return fmt.Errorf("smtp sender is required")
	}
	if c.Pipeline.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	return nil
}
