package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr            string        `yaml:"addr"`
	JWTSecret       string        `yaml:"jwt_secret"`
	APITimeout      time.Duration `yaml:"timeout"`
	DatabasePath    string        `yaml:"database_path"`
	MediaDir        string        `yaml:"media_dir"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	RateRPS         float64       `yaml:"rate_rps"`
	RateBurst       int           `yaml:"rate_burst"`
}

// Load builds the configuration from defaults, environment variables
// (SAXANSAXO_* prefix, with a .env file honored when present) and an
// optional YAML file that overrides both.
func Load(path string) (*Config, error) {
	// .env is optional; missing file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            getEnv("SAXANSAXO_ADDR", ":8080"),
		JWTSecret:       getEnv("SAXANSAXO_JWT_SECRET", "supersecretkey"),
		APITimeout:      15 * time.Second,
		DatabasePath:    getEnv("SAXANSAXO_DATABASE_PATH", "saxansaxo.db"),
		MediaDir:        getEnv("SAXANSAXO_MEDIA_DIR", "media"),
		AccessTokenTTL:  1 * time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		RateRPS:         getEnvFloat("SAXANSAXO_RATE_RPS", 5),
		RateBurst:       getEnvInt("SAXANSAXO_RATE_BURST", 10),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}

	return def
}
