package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPaths []string `validate:"required,min=1,dive,required"`
	SheetName  string

	// Empty range bounds fall back to the dataset defaults.
	RangeStart   string `validate:"omitempty,datetime=2006-01-02"`
	RangeEnd     string `validate:"omitempty,datetime=2006-01-02"`
	CompareStart string `validate:"omitempty,datetime=2006-01-02"`
	CompareEnd   string `validate:"omitempty,datetime=2006-01-02"`
	Granularity  string `validate:"oneof=daily weekly monthly quarterly"`

	TrendStart       string `validate:"omitempty,datetime=2006-01-02"`
	TrendEnd         string `validate:"omitempty,datetime=2006-01-02"`
	TrendGranularity string `validate:"oneof=daily weekly monthly quarterly"`
	InsightStart     string `validate:"omitempty,datetime=2006-01-02"`
	InsightEnd       string `validate:"omitempty,datetime=2006-01-02"`

	FunnelScope  string `validate:"oneof=all quarterly monthly"`
	FunnelPeriod string
	MonthA       string `validate:"omitempty,datetime=2006-01"`
	MonthB       string `validate:"omitempty,datetime=2006-01"`
	VideoMonth   string `validate:"omitempty,datetime=2006-01"`
	TopN         int    `validate:"min=1"`
	MonthlyTopN  int    `validate:"min=1"`

	MaxConcurrency int `validate:"min=1"`
	MaxRetries     int `validate:"min=1"`

	JSONOutputPath string
	CSVOutputPath  string
	LogLevel       string `validate:"oneof=debug info warn error disabled"`

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		InputPaths: getEnvList("INPUT_PATHS", []string{"./data/videos.xlsx"}),
		SheetName:  getEnv("SHEET_NAME", ""),

		RangeStart:   getEnv("RANGE_START", ""),
		RangeEnd:     getEnv("RANGE_END", ""),
		CompareStart: getEnv("COMPARE_START", ""),
		CompareEnd:   getEnv("COMPARE_END", ""),
		Granularity:  getEnv("GRANULARITY", "daily"),

		TrendStart:       getEnv("TREND_RANGE_START", ""),
		TrendEnd:         getEnv("TREND_RANGE_END", ""),
		TrendGranularity: getEnv("TREND_GRANULARITY", "daily"),
		InsightStart:     getEnv("INSIGHT_RANGE_START", ""),
		InsightEnd:       getEnv("INSIGHT_RANGE_END", ""),

		FunnelScope:  getEnv("FUNNEL_SCOPE", "all"),
		FunnelPeriod: getEnv("FUNNEL_PERIOD", ""),
		MonthA:       getEnv("MONTH_A", ""),
		MonthB:       getEnv("MONTH_B", ""),
		VideoMonth:   getEnv("VIDEO_MONTH", ""),
		TopN:         getEnvInt("TOP_N", 10),
		MonthlyTopN:  getEnvInt("MONTHLY_TOP_N", 5),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		JSONOutputPath: getEnv("JSON_OUTPUT_PATH", "./output/report.json"),
		CSVOutputPath:  getEnv("CSV_OUTPUT_PATH", "./output/detail_trend.csv"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "analytics"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "analytics"),
		PostgresDB:       getEnv("POSTGRES_DB", "video_analytics"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

var validate = validator.New()

// Validate checks field formats and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
