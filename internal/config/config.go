package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// FeedSource identifies one RSS feed to aggregate.
type FeedSource struct {
	Name string
	URL  string
}

// ArxivConfig controls the ArXiv API fetcher.
type ArxivConfig struct {
	APIURL     string
	Categories []string
	MaxResults int
}

// LLMConfig holds settings for the OpenAI-compatible classification backend.
type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty means the default OpenAI endpoint
	Timeout time.Duration
}

// SecurityConfig represents security configuration
type SecurityConfig struct {
	EnableRateLimit       bool
	RateLimitPerSecond    float64
	RateLimitBurst        int
	EnableCORS            bool
	AllowedOrigins        []string
	EnableSecurityHeaders bool
	MaxRequestSize        int64
	EnableRequestID       bool
}

type Config struct {
	Port          int
	BaseURL       string
	DataDir       string
	CacheTTL      time.Duration
	PollInterval  time.Duration
	AdminToken    string
	EnableSwagger bool
	Feeds         []FeedSource
	Arxiv         ArxivConfig
	LLM           LLMConfig
	Security      SecurityConfig
}

func Load() *Config {
	return &Config{
		Port:          getEnvAsInt("PORT", 8080),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		CacheTTL:      getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		PollInterval:  getEnvAsDuration("POLL_INTERVAL", time.Hour),
		AdminToken:    getEnv("ADMIN_TOKEN", ""),
		EnableSwagger: getEnvAsBool("ENABLE_SWAGGER", true),
		Feeds:         loadFeedsFromEnv(),
		Arxiv: ArxivConfig{
			APIURL:     getEnv("ARXIV_API_URL", "http://export.arxiv.org/api/query"),
			Categories: getEnvAsStringSlice("ARXIV_CATEGORIES", []string{"cs.AI", "cs.LG", "cs.CL"}),
			MaxResults: getEnvAsInt("ARXIV_MAX_RESULTS", 20),
		},
		LLM: LLMConfig{
			APIKey:  getEnv("LLM_API_KEY", ""),
			Model:   getEnv("LLM_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("LLM_BASE_URL", ""),
			Timeout: getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Security: loadSecurityConfig(),
	}
}

func loadSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableRateLimit:       getEnvAsBool("ENABLE_RATE_LIMIT", true),
		RateLimitPerSecond:    getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10.0),
		RateLimitBurst:        getEnvAsInt("RATE_LIMIT_BURST", 20),
		EnableCORS:            getEnvAsBool("ENABLE_CORS", true),
		AllowedOrigins:        getEnvAsStringSlice("ALLOWED_ORIGINS", []string{"*"}),
		EnableSecurityHeaders: getEnvAsBool("ENABLE_SECURITY_HEADERS", true),
		MaxRequestSize:        getEnvAsInt64("MAX_REQUEST_SIZE", 10<<20), // 10MB
		EnableRequestID:       getEnvAsBool("ENABLE_REQUEST_ID", true),
	}
}

// loadFeedsFromEnv parses NEWS_FEEDS as "Name=URL;Name=URL". Entries
// without a '=' are ignored. An empty variable yields the default feeds.
func loadFeedsFromEnv() []FeedSource {
	raw := os.Getenv("NEWS_FEEDS")
	if raw == "" {
		return defaultFeeds()
	}

	var feeds []FeedSource
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		url := strings.TrimSpace(parts[1])
		if name == "" || url == "" {
			continue
		}
		feeds = append(feeds, FeedSource{Name: name, URL: url})
	}

	if len(feeds) == 0 {
		return defaultFeeds()
	}
	return feeds
}

func defaultFeeds() []FeedSource {
	return []FeedSource{
		{Name: "TechCrunch", URL: "https://techcrunch.com/category/artificial-intelligence/feed/"},
		{Name: "The Verge", URL: "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml"},
		{Name: "Wired", URL: "https://www.wired.com/feed/tag/ai/latest/rss"},
		{Name: "VentureBeat", URL: "https://venturebeat.com/category/ai/feed/"},
	}
}

func getEnv(key string, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		items := strings.Split(val, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		return items
	}
	return defaultVal
}
