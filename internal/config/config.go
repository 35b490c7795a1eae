package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	SessionStoreRedis = "redis"
	SessionStoreFile  = "file"
)

// Config is everything the console needs to reach the backend and keep
// its session between runs.
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Session  SessionConfig  `yaml:"session"`
	Redis    RedisConfig    `yaml:"redis"`
	Events   EventsConfig   `yaml:"events"`
	Visitors VisitorsConfig `yaml:"visitors"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type BackendConfig struct {
	// AuthURL serves POST /auth/login.
	AuthURL string `yaml:"auth_url"`
	// APIURL serves everything under /api.
	APIURL string `yaml:"api_url"`
}

type SessionConfig struct {
	// Store is "redis" or "file".
	Store string `yaml:"store"`
	// File is the JSON file used when Store is "file".
	File string `yaml:"file"`
	// Namespace prefixes every Redis key.
	Namespace string `yaml:"namespace"`
	// Secret signs the persisted identity blob.
	Secret string `yaml:"secret"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type EventsConfig struct {
	// RabbitMQURL enables meeting event publishing when set.
	RabbitMQURL string `yaml:"rabbitmq_url"`
	// Exchange is the topic exchange events are published to.
	Exchange string `yaml:"exchange"`
	// Queue is declared and bound to every meeting event; empty skips it.
	Queue string `yaml:"queue"`
}

type VisitorsConfig struct {
	RevalidateOnReschedule bool `yaml:"revalidate_on_reschedule"`
}

type MetricsConfig struct {
	// Textfile receives request metrics on exit, for a node_exporter
	// textfile collector.
	Textfile string `yaml:"textfile"`
}

func defaults() *Config {
	sessionFile := "intelicop-session.json"
	if dir, err := os.UserConfigDir(); err == nil {
		sessionFile = filepath.Join(dir, "intelicop", "session.json")
	}
	return &Config{
		Backend: BackendConfig{
			AuthURL: "http://localhost:8080",
			APIURL:  "http://localhost:8081",
		},
		Session: SessionConfig{
			Store:     SessionStoreRedis,
			File:      sessionFile,
			Namespace: "intelicop:console:",
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		Events: EventsConfig{
			Exchange: "intelicop.meetings",
			Queue:    "visitor-meetings",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or INTELICOP_CONFIG when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("INTELICOP_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Backend.AuthURL = getEnv("INTELICOP_AUTH_URL", c.Backend.AuthURL)
	c.Backend.APIURL = getEnv("INTELICOP_BACKEND_URL", c.Backend.APIURL)
	c.Session.Store = getEnv("SESSION_STORE", c.Session.Store)
	c.Session.File = getEnv("SESSION_FILE", c.Session.File)
	c.Session.Secret = getEnv("SESSION_SECRET", c.Session.Secret)
	c.Redis.Address = getEnv("REDIS_ADDR", c.Redis.Address)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Events.RabbitMQURL = getEnv("RABBITMQ_URL", c.Events.RabbitMQURL)
	c.Events.Exchange = getEnv("MEETING_EVENTS_EXCHANGE", c.Events.Exchange)
	c.Events.Queue = getEnv("MEETING_EVENTS_QUEUE", c.Events.Queue)
	c.Metrics.Textfile = getEnv("METRICS_TEXTFILE", c.Metrics.Textfile)

	db, err := getEnvInt("REDIS_DB", c.Redis.DB)
	if err != nil {
		return err
	}
	c.Redis.DB = db

	revalidate, err := getEnvBool("VISITORS_REVALIDATE_ON_RESCHEDULE", c.Visitors.RevalidateOnReschedule)
	if err != nil {
		return err
	}
	c.Visitors.RevalidateOnReschedule = revalidate
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Backend.AuthURL == "" {
		errs = append(errs, errors.New("backend auth URL is required"))
	}
	if c.Backend.APIURL == "" {
		errs = append(errs, errors.New("backend API URL is required"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required to sign the stored session"))
	}
	if c.Events.RabbitMQURL != "" && c.Events.Exchange == "" {
		errs = append(errs, errors.New("an exchange is required when RABBITMQ_URL is set"))
	}
	switch c.Session.Store {
	case SessionStoreRedis:
		if c.Redis.Address == "" {
			errs = append(errs, errors.New("redis address is required for the redis session store"))
		}
	case SessionStoreFile:
		if c.Session.File == "" {
			errs = append(errs, errors.New("session file is required for the file session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session store %q: want redis or file", c.Session.Store))
	}
	return errors.Join(errs...)
}

// String masks secrets.
func (c *Config) String() string {
	return fmt.Sprintf("Config{auth: %s, api: %s, session: %s, events: %t}",
		c.Backend.AuthURL, c.Backend.APIURL, c.Session.Store, c.Events.RabbitMQURL != "")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	return b, nil
}
