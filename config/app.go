package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName   string
	Port      string
	Env       string
	Debug     bool
	LogLevel  string
	JWTSecret string
	// PriceCacheTTL is the supplier price cache lifetime in seconds; 0 disables caching.
	PriceCacheTTL       int64
	ElasticsearchHost   string
	ElasticsearchPrefix string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() *Config {
	once.Do(func() {
		ttl, err := strconv.ParseInt(GetEnv("PRICE_CACHE_TTL", "60"), 10, 64)
		if err != nil || ttl < 0 {
			ttl = 60
		}
		AppConfig = &Config{
			AppName:             GetEnv("APP_NAME", "procurement.GO"),
			Port:                GetEnv("PORT", "8080"),
			Env:                 os.Getenv("APP_ENV"),
			Debug:               os.Getenv("DEBUG") == "true",
			LogLevel:            GetEnv("LOG_LEVEL", "info"),
			JWTSecret:           os.Getenv("JWT_SECRET"),
			PriceCacheTTL:       ttl,
			ElasticsearchHost:   os.Getenv("ELASTICSEARCH_HOST"),
			ElasticsearchPrefix: GetEnv("ELASTICSEARCH_INDEX_PREFIX", "procurement"),
		}
	})
	return AppConfig
}
