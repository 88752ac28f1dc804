package config

import (
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

const (
	DefaultPath           = "config.txt"
	DefaultSessionFile    = "tg_session.json"
	DefaultMessagesDir    = "message"
	DefaultTickInterval   = 100 * time.Millisecond
	DefaultStartupTimeout = 15 * time.Second
)

// Config holds API credentials and local paths. Missing keys fall back to
// defaults; a zero APIID makes authorization fail downstream.
type Config struct {
	APIID          int
	APIHash        string
	SessionFile    string
	MessagesDir    string
	TickInterval   time.Duration
	StartupTimeout time.Duration
}

func Default() Config {
	return Config{
		SessionFile:    DefaultSessionFile,
		MessagesDir:    DefaultMessagesDir,
		TickInterval:   DefaultTickInterval,
		StartupTimeout: DefaultStartupTimeout,
	}
}

// PathFromEnv returns TG_CONFIG or the default config path
func PathFromEnv() string {
	if p := os.Getenv("TG_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads key=value lines from path. A missing file is not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), errors.Wrapf(err, "read config %q", path)
	}

	return Parse(string(data)), nil
}

// Parse is Load for already-read content. Lines without '=' are notes and
// are skipped, as is any line godotenv rejects, so one bad line never drops
// the rest of the file.
func Parse(content string) Config {
	cfg := Default()

	values := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "=") {
			continue
		}
		kv, err := godotenv.Unmarshal(line)
		if err != nil {
			continue
		}
		for k, v := range kv {
			values[k] = v
		}
	}

	apply(&cfg, values)
	return cfg
}

func apply(cfg *Config, values map[string]string) {
	cfg.APIID = getInt(values, "api_id", 0)
	cfg.APIHash = strings.TrimSpace(values["api_hash"])

	if v := strings.TrimSpace(values["session_file"]); v != "" {
		cfg.SessionFile = v
	}
	if v := strings.TrimSpace(values["messages_dir"]); v != "" {
		cfg.MessagesDir = v
	}
	if ms := getInt(values, "tick_interval_ms", 0); ms > 0 {
		cfg.TickInterval = time.Duration(ms) * time.Millisecond
	}
	if s := getInt(values, "startup_timeout_s", 0); s > 0 {
		cfg.StartupTimeout = time.Duration(s) * time.Second
	}
}

func getInt(values map[string]string, key string, def int) int {
	v, ok := values[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}
