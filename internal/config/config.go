package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Default endpoints for external collaborators. Overridable for tests and
// self-hosted mirrors.
const (
	defaultSoundCloudOEmbedURL = "https://soundcloud.com/oembed"
	defaultTikTokOEmbedURL     = "https://www.tiktok.com/oembed"
)

// Config holds process configuration sourced from the environment.
type Config struct {
	Port                         string
	FirebaseProjectID            string
	FirebaseWebAPIKey            string
	GoogleApplicationCredentials string

	// Image host (Cloudinary-compatible) upload endpoint and unsigned preset.
	UploadBaseURL string
	UploadPreset  string

	// oEmbed endpoints for embeddable block markup.
	SoundCloudOEmbedURL string
	TikTokOEmbedURL     string
}

// Load reads configuration from a .env file (if present) and the process
// environment. Missing optional values fall back to defaults; required values
// are the caller's responsibility to validate.
func Load() Config {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	return Config{
		Port:                         getenv("PORT", "8080"),
		FirebaseProjectID:            os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseWebAPIKey:            os.Getenv("FIREBASE_WEB_API_KEY"),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		UploadBaseURL:                os.Getenv("UPLOAD_BASE_URL"),
		UploadPreset:                 os.Getenv("UPLOAD_PRESET"),
		SoundCloudOEmbedURL:          getenv("SOUNDCLOUD_OEMBED_URL", defaultSoundCloudOEmbedURL),
		TikTokOEmbedURL:              getenv("TIKTOK_OEMBED_URL", defaultTikTokOEmbedURL),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
