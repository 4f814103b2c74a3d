// Package config holds the configuration for the radar service
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultConfigFilePath is the config file read when no path is given
	DefaultConfigFilePath = "./config/.config.yaml"
	// EnvPrefix is the prefix of environment variables that override the config
	EnvPrefix = "RADAR_"
	// dotEnvFile is the local env file loaded before environment variables are read
	dotEnvFile = ".env"
)

// Config holds the radar service configuration
type Config struct {
	// Server contains the HTTP server settings
	Server Server `json:"server" koanf:"server"`
	// Analyzer contains the analysis pipeline settings
	Analyzer Analyzer `json:"analyzer" koanf:"analyzer"`
	// Fetch contains the policy page fetcher settings
	Fetch Fetch `json:"fetch" koanf:"fetch"`
	// AI contains the language model settings
	AI AI `json:"ai" koanf:"ai"`
	// Reputation contains the PrivacySpy lookup settings
	Reputation Reputation `json:"reputation" koanf:"reputation"`
	// Cache contains the analysis cache settings
	Cache Cache `json:"cache" koanf:"cache"`
	// Cloudflare contains the browser rendering fallback settings
	Cloudflare Cloudflare `json:"cloudflare" koanf:"cloudflare"`
	// Slack contains the high-risk notification settings
	Slack Slack `json:"slack" koanf:"slack"`
}

// Server holds the HTTP server settings
type Server struct {
	// Debug enables debug logging
	Debug bool `json:"debug" koanf:"debug" default:"false"`
	// Pretty enables human readable logging
	Pretty bool `json:"pretty" koanf:"pretty" default:"false"`
	// Listen is the address the server binds to
	Listen string `json:"listen" koanf:"listen" default:":8080"`
	// ReadTimeout bounds reading a request
	ReadTimeout time.Duration `json:"readTimeout" koanf:"readtimeout" default:"30s"`
	// WriteTimeout bounds writing a response
	WriteTimeout time.Duration `json:"writeTimeout" koanf:"writetimeout" default:"60s"`
	// ShutdownGracePeriod is how long in-flight requests may take to finish on shutdown
	ShutdownGracePeriod time.Duration `json:"shutdownGracePeriod" koanf:"shutdowngraceperiod" default:"10s"`
	// MaxBodySize limits request bodies in bytes
	MaxBodySize int64 `json:"maxBodySize" koanf:"maxbodysize" default:"102400"`
	// CORSOrigin is the allowed browser origin
	CORSOrigin string `json:"corsOrigin" koanf:"corsorigin" default:"*"`
}

// Analyzer holds the analysis pipeline settings
type Analyzer struct {
	// Timeout bounds a single analysis request
	Timeout time.Duration `json:"timeout" koanf:"timeout" default:"45s"`
	// AITimeout is how long the pipeline waits for the model summary
	AITimeout time.Duration `json:"aiTimeout" koanf:"aitimeout" default:"8s"`
	// MinTextLength is the shortest policy text that is analyzed
	MinTextLength int `json:"minTextLength" koanf:"mintextlength" default:"100"`
}

// Fetch holds the policy page fetcher settings
type Fetch struct {
	// Timeout bounds a single page request
	Timeout time.Duration `json:"timeout" koanf:"timeout" default:"15s"`
	// MaxRedirects is the number of redirects followed
	MaxRedirects int `json:"maxRedirects" koanf:"maxredirects" default:"5"`
	// MaxBodySize limits the page body read in bytes
	MaxBodySize int64 `json:"maxBodySize" koanf:"maxbodysize" default:"2097152"`
	// UserAgent is sent with page requests
	UserAgent string `json:"userAgent" koanf:"useragent" default:"Mozilla/5.0 (compatible; PrivacyRadar/1.0)"`
}

// AI holds the language model settings
type AI struct {
	// OpenAIAPIKey enables the hosted provider
	OpenAIAPIKey string `json:"openaiAPIKey" koanf:"openaiapikey" sensitive:"true"`
	// OpenAIModel is the hosted chat model
	OpenAIModel string `json:"openaiModel" koanf:"openaimodel" default:"gpt-4o-mini"`
	// OpenAIBaseURL overrides the hosted endpoint for compatible gateways
	OpenAIBaseURL string `json:"openaiBaseURL" koanf:"openaibaseurl"`
	// OllamaHost enables the local provider when no API key is set
	OllamaHost string `json:"ollamaHost" koanf:"ollamahost"`
	// OllamaModel is the local model name
	OllamaModel string `json:"ollamaModel" koanf:"ollamamodel" default:"llama3.1"`
	// RequestTimeout bounds a single model call
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requesttimeout" default:"20s"`
	// MaxInputChars is the policy text budget sent to the model
	MaxInputChars int `json:"maxInputChars" koanf:"maxinputchars" default:"120000"`
	// MaxTokens caps the model answer
	MaxTokens int `json:"maxTokens" koanf:"maxtokens" default:"1024"`
}

// Reputation holds the PrivacySpy lookup settings
type Reputation struct {
	// Enabled turns the reputation lookup on
	Enabled bool `json:"enabled" koanf:"enabled" default:"true"`
	// BaseURL is the API root
	BaseURL string `json:"baseURL" koanf:"baseurl" default:"https://privacyspy.org/api/v2"`
	// RequestTimeout bounds a single lookup
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requesttimeout" default:"10s"`
	// Weight is the share of the reputation score in the blended score
	Weight float64 `json:"weight" koanf:"weight" default:"0.7"`
	// MemoTTL is how long lookups are remembered in memory
	MemoTTL time.Duration `json:"memoTTL" koanf:"memottl" default:"1h"`
	// RequestsPerSecond is the outbound request rate
	RequestsPerSecond float64 `json:"requestsPerSecond" koanf:"requestspersecond" default:"5"`
	// Burst is the number of requests allowed above the steady rate
	Burst int `json:"burst" koanf:"burst" default:"10"`
}

// Cache holds the analysis cache settings
type Cache struct {
	// Driver is one of sqlite, redis or none
	Driver string `json:"driver" koanf:"driver" default:"sqlite"`
	// DSN is the SQLite file path or the Redis URL
	DSN string `json:"dsn" koanf:"dsn" default:"data/radar.db" sensitive:"true"`
	// TTL is how long a cached analysis stays fresh
	TTL time.Duration `json:"ttl" koanf:"ttl" default:"336h"`
	// ConnectAttempts bounds the startup connection attempts
	ConnectAttempts int `json:"connectAttempts" koanf:"connectattempts" default:"20"`
	// ConnectDelay is the pause between connection attempts
	ConnectDelay time.Duration `json:"connectDelay" koanf:"connectdelay" default:"1500ms"`
}

// Cloudflare holds the browser rendering fallback settings
type Cloudflare struct {
	// AccountID is the Cloudflare account identifier
	AccountID string `json:"accountID" koanf:"accountid"`
	// APIToken is the Cloudflare API token with Browser Rendering access
	APIToken string `json:"apiToken" koanf:"apitoken" sensitive:"true"`
	// NavigationTimeout is how long the headless browser waits for the page to settle
	NavigationTimeout time.Duration `json:"navigationTimeout" koanf:"navigationtimeout" default:"30s"`
	// RequestTimeout bounds a single render request and should exceed NavigationTimeout
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requesttimeout" default:"40s"`
}

// Slack holds the high-risk notification settings
type Slack struct {
	// WebhookURL is the incoming webhook that receives alerts
	WebhookURL string `json:"webhookURL" koanf:"webhookurl" sensitive:"true"`
	// RequestTimeout bounds a single webhook request
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requesttimeout" default:"10s"`
	// RiskThreshold is the lowest risk score that triggers an alert
	RiskThreshold float64 `json:"riskThreshold" koanf:"riskthreshold" default:"70"`
}

// Load builds the configuration from struct defaults, the YAML file at
// cfgFile when it exists, and RADAR_ prefixed environment variables, in that
// order of precedence
func Load(cfgFile *string) (*Config, error) {
	k := koanf.New(".")

	path := DefaultConfigFilePath
	if cfgFile != nil && *cfgFile != "" {
		path = *cfgFile
	}

	conf := &Config{}
	defaults.SetDefaults(conf)

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigFileLoad, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrConfigFileLoad, err)
	} else {
		log.Debug().Str("path", path).Msg("config file not found, using defaults")
	}

	if err := godotenv.Load(dotEnvFile); err == nil {
		log.Debug().Str("path", dotEnvFile).Msg("loaded env file")
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvLoad, err)
	}

	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return conf, nil
}

// envKey maps RADAR_SECTION_FIELD to section.field
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	return strings.Replace(key, "_", ".", 1), value
}
