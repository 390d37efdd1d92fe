package app

import (
	"github.com/evelahealth/evela-backend/internal/platform/envutil"
)

type Config struct {
	ListenAddr     string
	UploadsDir     string
	MaxUploadBytes int64
}

func LoadConfig() Config {
	return Config{
		ListenAddr:     envutil.Str("LISTEN_ADDR", ":8080"),
		UploadsDir:     envutil.Str("UPLOADS_DIR", "uploads"),
		MaxUploadBytes: envutil.Int64("MAX_UPLOAD_BYTES", 10*1024*1024),
	}
}
