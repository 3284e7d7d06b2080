package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Index    IndexConfig
	Catalog  CatalogConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	SessionLogFilePath string
	CorsAllowedOrigins string
	PublicDir          string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Groq         string
	Jina         string
	GoogleGemini string
	HuggingFace  string
	RebuildTopic string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama", "jina" or "gemini"
	EmbeddingModel    string
	EmbeddingBaseURL  string
	EmbeddingCacheTTL time.Duration
	LLMProvider       string // "groq", "huggingface", "ollama" or "gemini"
	LLMModel          string
	LLMBaseURL        string
	Temperature       float64
	MaxTokens         int
	CompletionTimeout time.Duration
	RetryAttempts     int
}

type IndexConfig struct {
	Backend      string // "file" or "pgvector"
	DataDir      string
	Path         string
	ChunkSize    int
	Overlap      int
	TopK         int
	Concurrency  int
	BuildOnStart bool
}

type CatalogConfig struct {
	Path              string
	DefaultUniversity string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			SessionLogFilePath: getEnv("SESSION_LOG_FILE_PATH", "logs/session.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			PublicDir:          getEnv("APP_PUBLIC_DIR", "./public"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Groq:         getEnv("GROQ_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HF_TOKEN", ""),
			RebuildTopic: getEnv("REBUILD_INDEX_TOPIC_NAME", "REBUILD_INDEX"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingBaseURL:  getEnv("EMBEDDING_BASE_URL", ""),
			EmbeddingCacheTTL: getEnvAsDuration("EMBEDDING_CACHE_TTL", time.Hour),
			LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
			LLMModel:          getEnv("LLM_MODEL", "qwen/qwen3-32b"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.05),
			MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 3000),
			CompletionTimeout: getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
			RetryAttempts:     getEnvAsInt("AI_RETRY_ATTEMPTS", 3),
		},
		Index: IndexConfig{
			Backend:      getEnv("INDEX_BACKEND", "file"),
			DataDir:      getEnv("INDEX_DATA_DIR", "./UNIVERSITY"),
			Path:         getEnv("INDEX_PATH", "./faiss_index"),
			ChunkSize:    getEnvAsInt("INDEX_CHUNK_SIZE", 1200),
			Overlap:      getEnvAsInt("INDEX_CHUNK_OVERLAP", 350),
			TopK:         getEnvAsInt("INDEX_TOP_K", 5),
			Concurrency:  getEnvAsInt("INDEX_EMBED_CONCURRENCY", 4),
			BuildOnStart: getEnvAsBool("INDEX_BUILD_ON_START", true),
		},
		Catalog: CatalogConfig{
			Path:              getEnv("CATALOG_PATH", ""),
			DefaultUniversity: getEnv("DEFAULT_UNIVERSITY", ""),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
