package tago

import (
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultAPIURL      = "https://api.tago.io"
	defaultHTTPTimeout = 10 * time.Second
)

// IsTest returns true if running the test suite
func IsTest() bool {
	return os.Getenv("AUTO_TEST") == "true"
}

// Config contains the process level settings for talking to the platform.
type Config struct {
	APIURL      string
	HTTPTimeout time.Duration
	TableName   string
}

// LoadConfig reads the process environment.
func LoadConfig() Config {
	return Config{
		APIURL:      getEnv("TAGO_API_URL", defaultAPIURL),
		HTTPTimeout: parseDuration(getEnv("TAGO_HTTP_TIMEOUT", "10s")),
		TableName:   os.Getenv("DYNAMODB_TABLE_NAME"),
	}
}

// APIURL returns the platform URL for a path, rooted at base.
func APIURL(base, path string) *url.URL {
	uri, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || uri.Host == "" {
		uri, _ = url.Parse(defaultAPIURL)
	}
	uri.Path = uri.Path + path
	return uri
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultHTTPTimeout
	}
	return d
}
