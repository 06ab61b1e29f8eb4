package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EngineTesseract = "tesseract"
	EngineGemini    = "gemini"
)

type Config struct {
	Host     string
	Port     string
	LogLevel string

	OCREngine      string
	TesseractPath  string
	TesseractLang  string
	AIAPIKey       string
	GeminiOCRModel string

	PdftoppmPath   string
	PDFDPI         int
	PDFPageWorkers int
	CatpptPath     string

	URLFetchTimeout time.Duration
	MaxUploadMB     int
	MaxDownloadMB   int

	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string

	JWTSecret          string
	CORSAllowedOrigins []string
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	return &Config{
		Host:     getEnv("HOST", "0.0.0.0"),
		Port:     getEnv("PORT", "9000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		OCREngine:      strings.ToLower(getEnv("OCR_ENGINE", EngineTesseract)),
		TesseractPath:  getEnv("TESSERACT_PATH", "tesseract"),
		TesseractLang:  getEnv("TESSERACT_LANG", "eng"),
		AIAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiOCRModel: getEnv("GEMINI_OCR_MODEL", "gemini-1.5-flash"),

		PdftoppmPath:   getEnv("PDFTOPPM_PATH", "pdftoppm"),
		PDFDPI:         getEnvInt("PDF_DPI", 200),
		PDFPageWorkers: getEnvInt("PDF_PAGE_WORKERS", 2),
		CatpptPath:     getEnv("CATPPT_PATH", "catppt"),

		URLFetchTimeout: getEnvDuration("URL_FETCH_TIMEOUT", 15*time.Second),
		MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", 50),
		MaxDownloadMB:   getEnvInt("MAX_DOWNLOAD_MB", 100),

		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-2"),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.OCREngine {
	case EngineTesseract:
	case EngineGemini:
		if c.AIAPIKey == "" {
			errs = append(errs, errors.New("OCR_ENGINE=gemini requires GEMINI_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown OCR_ENGINE %q", c.OCREngine))
	}
	if c.PDFDPI <= 0 {
		errs = append(errs, fmt.Errorf("PDF_DPI must be positive, got %d", c.PDFDPI))
	}
	if c.PDFPageWorkers <= 0 {
		errs = append(errs, fmt.Errorf("PDF_PAGE_WORKERS must be positive, got %d", c.PDFPageWorkers))
	}
	if c.URLFetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("URL_FETCH_TIMEOUT must be positive, got %s", c.URLFetchTimeout))
	}
	if c.MaxUploadMB <= 0 || c.MaxDownloadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB and MAX_DOWNLOAD_MB must be positive"))
	}
	if (c.AwsAccessKey == "") != (c.AwsSecretKey == "") {
		errs = append(errs, errors.New("set both AWS_ACCESS_KEY and AWS_SECRET_KEY, or neither"))
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string { return c.Host + ":" + c.Port }

func (c *Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }

func (c *Config) MaxDownloadBytes() int64 { return int64(c.MaxDownloadMB) << 20 }

// S3Enabled reports whether s3:// URLs can be fetched.
func (c *Config) S3Enabled() bool { return c.AwsAccessKey != "" && c.AwsSecretKey != "" }

// AuthEnabled reports whether the OCR routes require a bearer token.
func (c *Config) AuthEnabled() bool { return c.JWTSecret != "" }

// SlogLevel maps LOG_LEVEL onto slog levels, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper to read environment variables with a default fallback.
// An empty value counts as unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("env value is not an int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("env value is not a duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
