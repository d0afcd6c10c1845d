package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// defaultResourceIDs are the datastore partition identifiers, current as of
// Apr 2023. The upstream dataset gets re-partitioned over time, so these can
// be overridden via RESOURCE_IDS rather than recompiling.
var defaultResourceIDs = []string{
	"f1765b54-a209-4718-8d38-a39237f502b3", // Jan 2017 - Present
	"1b702208-44bf-4829-b620-4615ee19b57c", // Jan 2015 - Dec 2016
	"83b2fc37-ce8c-4df4-968b-370fd818138b", // Mar 2012 - Dec 2014
	"8c00bf08-9124-479e-aeca-7cc411d884c4", // Jan 2000 - Feb 2012
	"adbbddd3-30e2-445f-a123-29bee150a6fe", // Jan 1990 - Dec 1999
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL     string
	ResourceIDs []string

	// FetchLimit is sent as the limit query param — large enough that every
	// partition comes back in a single response.
	FetchLimit int

	MaxConcurrency int
	RateLimitMs    int
	HTTPTimeoutSec int

	Debug bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL:     getEnv("DATAGOV_BASE_URL", "https://data.gov.sg/api/action/datastore_search"),
		ResourceIDs: getEnvList("RESOURCE_IDS", defaultResourceIDs),

		FetchLimit: getEnvInt("FETCH_LIMIT", 1_000_000_000),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 200),
		HTTPTimeoutSec: getEnvInt("HTTP_TIMEOUT_SEC", 0),

		Debug: getEnvBool("DEBUG", false),
	}
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
	var items []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
