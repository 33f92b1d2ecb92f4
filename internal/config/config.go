package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultProductsPerPage = 6
	defaultMaxUploadMB     = 5
)

type Config struct {
	Port             string
	MongoURI         string
	MongoDB          string
	CloudinaryURL    string
	CloudinaryFolder string
	ProductsPerPage  int
	CORSOrigins      []string
	LogLevel         slog.Level
	MaxUploadBytes   int64
	ShutdownTimeout  time.Duration
}

// LoadConfig carga envFile si existe y luego lee las variables de entorno.
// En producción el archivo no existe y se usan las variables del sistema.
func LoadConfig(envFile string) *Config {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			slog.Warn("error loading env file", "file", envFile, "err", err)
		} else {
			slog.Info("env file loaded", "file", envFile)
		}
	} else {
		slog.Info("using system environment variables")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "productCatalog"),
		CloudinaryURL:    getEnv("CLOUDINARY_URL", ""),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "products"),
		ProductsPerPage:  getEnvInt("PRODUCTS_PER_PAGE", defaultProductsPerPage),
		CORSOrigins:      getEnvList("CORS_ORIGINS", []string{"*"}),
		LogLevel:         getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_MB", defaultMaxUploadMB)) << 20,
		ShutdownTimeout:  time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvInt ignora valores no numéricos o no positivos
func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv(key, ""))); err != nil {
		return fallback
	}
	return level
}
