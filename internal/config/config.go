package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JwtSecret  string
	Issuer     string
	ServerPort string

	CookieSecure bool

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbSSLMode  string

	CORSAllowedOrigins []string
	AdminUsernames     []string

	EnabledForms []string
	FormsDir     string

	ResendAPIKey    string
	EmailFrom       string
	EmailFormFrom   string
	EmailTo         []string
	EmailBcc        []string
	DemoMode        bool
	DemoEmailTo     []string
	DemoEmailBcc    []string
	TeamsWebhookURL string

	LLMProvider     string
	LLMModel        string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GeminiAPIKey    string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	AuditRetentionDays int
	LogLevel           string

	NotifyRetryInterval    int
	NotifyRetryMaxAttempts int
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "genie-forms")
	ServerPort = getEnv("SERVER_PORT", "8080")
	CookieSecure = getBool("COOKIE_SECURE", false)

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "genie")
	DbSSLMode = getEnv("DB_SSLMODE", "disable")

	CORSAllowedOrigins = getList("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	AdminUsernames = getList("ADMIN_USERNAMES", "admin")

	EnabledForms = getList("ENABLED_FORMS", "marketing-request")
	FormsDir = getEnv("FORMS_DIR", "")

	ResendAPIKey = getEnv("RESEND_API_KEY", "")
	EmailFrom = getEnv("EMAIL_FROM", "Genie AI <noreply@mail.teampps.com.au>")
	EmailFormFrom = getEnv("EMAIL_FORM_FROM", "Genie Form <noreply@mail.teampps.com.au>")
	EmailTo = getList("EMAIL_TO", "tbikaun@teampps.com.au")
	EmailBcc = getList("EMAIL_BCC", "tbikaun@teampps.com.au")
	DemoMode = getBool("DEMO_MODE", false)
	DemoEmailTo = getList("DEMO_EMAIL_TO", "tbikaun+demo@teampps.com.au")
	DemoEmailBcc = getList("DEMO_EMAIL_BCC", "tbikaun+demo@teampps.com.au")
	TeamsWebhookURL = getEnv("TEAMS_WEBHOOK_URL", "")

	LLMProvider = getEnv("LLM_PROVIDER", "anthropic")
	LLMModel = getEnv("LLM_MODEL", "")
	AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", "")
	OpenAIAPIKey = getEnv("OPENAI_API_KEY", "")
	GeminiAPIKey = getEnv("GEMINI_API_KEY", "")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "genie-submissions")
	MinioUseSSL = getBool("MINIO_USE_SSL", false)

	AuditRetentionDays = getInt("AUDIT_RETENTION_DAYS", 30)
	LogLevel = getEnv("LOG_LEVEL", "info")

	NotifyRetryInterval = getInt("NOTIFY_RETRY_INTERVAL_SECONDS", 300)
	NotifyRetryMaxAttempts = getInt("NOTIFY_RETRY_MAX_ATTEMPTS", 3)
}

// LLMAPIKey returns the key of the configured provider.
func LLMAPIKey() string {
	switch strings.ToLower(LLMProvider) {
	case "openai":
		return OpenAIAPIKey
	case "gemini", "google":
		return GeminiAPIKey
	default:
		return AnthropicAPIKey
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getList(key, fallback string) []string {
	return SplitList(getEnv(key, fallback))
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
