package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRSpaceURL       string
	OCRSpaceAPIKey    string
	RefineURL         string
	RefineAPIKey      string
	RefineModel       string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata"),
		OCRSpaceURL:       getEnv("OCRSPACE_URL", "https://api.ocr.space/parse/image"),
		OCRSpaceAPIKey:    os.Getenv("OCRSPACE_API_KEY"),
		RefineURL:         os.Getenv("REFINE_URL"),
		RefineAPIKey:      os.Getenv("REFINE_API_KEY"),
		RefineModel:       getEnv("REFINE_MODEL", "gpt-4o-mini"),
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
	}
	if raw := os.Getenv("MAX_FILE_SIZE"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			cfg.MaxFileSize = n
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
