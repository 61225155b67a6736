package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/editoria"
	ConfigFileName    = "editoria.yml"
)

// Config holds all Editoria configuration settings
type Config struct {
	// BindAddress is the address the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP server port
	Port int `yaml:"port" json:"port"`

	// SessionIdleTimeoutSeconds is the sliding inactivity window for
	// sessions, in seconds
	SessionIdleTimeoutSeconds int `yaml:"session_idle_timeout" json:"session_idle_timeout"`

	// SessionLifetimeSeconds is the absolute cap on session age, in seconds
	SessionLifetimeSeconds int `yaml:"session_lifetime" json:"session_lifetime"`

	// SessionCookieName is the name of the session cookie
	SessionCookieName string `yaml:"session_cookie_name" json:"session_cookie_name"`

	// SessionCookieSecure marks the session cookie Secure
	SessionCookieSecure bool `yaml:"session_cookie_secure" json:"session_cookie_secure"`

	// EnforceArticleOwnership requires the session's editor to own an
	// article before updating or deleting it. Off by default: any
	// logged-in editor may mutate any article.
	EnforceArticleOwnership bool `yaml:"enforce_article_ownership" json:"enforce_article_ownership"`

	// ExposePasswordDigest serializes the stored password digest into
	// editor responses. Off by default; the digest has no business in a
	// response body.
	ExposePasswordDigest bool `yaml:"expose_password_digest" json:"expose_password_digest"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig mirrors Config for YAML parsing. Pointers distinguish "unset"
// from zero values so file booleans can override defaults.
type fileConfig struct {
	BindAddress               *string `yaml:"bind_address"`
	Port                      *int    `yaml:"port"`
	SessionIdleTimeoutSeconds *int    `yaml:"session_idle_timeout"`
	SessionLifetimeSeconds    *int    `yaml:"session_lifetime"`
	SessionCookieName         *string `yaml:"session_cookie_name"`
	SessionCookieSecure       *bool   `yaml:"session_cookie_secure"`
	EnforceArticleOwnership   *bool   `yaml:"enforce_article_ownership"`
	ExposePasswordDigest      *bool   `yaml:"expose_password_digest"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		BindAddress:               "0.0.0.0",
		Port:                      8080,
		SessionIdleTimeoutSeconds: 300,
		SessionLifetimeSeconds:    43200,
		SessionCookieName:         "editoria_session",
		SessionCookieSecure:       false,
		EnforceArticleOwnership:   false,
		ExposePasswordDigest:      false,
		sources:                   make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("EDITORIA_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "session_idle_timeout", "session_lifetime",
		"session_cookie_name", "session_cookie_secure",
		"enforce_article_ownership", "expose_password_digest",
	}
}

func (c *Config) applyFileConfig(file *fileConfig) {
	if file.BindAddress != nil {
		c.BindAddress = *file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != nil {
		c.Port = *file.Port
		c.sources["port"] = "file"
	}
	if file.SessionIdleTimeoutSeconds != nil {
		c.SessionIdleTimeoutSeconds = *file.SessionIdleTimeoutSeconds
		c.sources["session_idle_timeout"] = "file"
	}
	if file.SessionLifetimeSeconds != nil {
		c.SessionLifetimeSeconds = *file.SessionLifetimeSeconds
		c.sources["session_lifetime"] = "file"
	}
	if file.SessionCookieName != nil {
		c.SessionCookieName = *file.SessionCookieName
		c.sources["session_cookie_name"] = "file"
	}
	if file.SessionCookieSecure != nil {
		c.SessionCookieSecure = *file.SessionCookieSecure
		c.sources["session_cookie_secure"] = "file"
	}
	if file.EnforceArticleOwnership != nil {
		c.EnforceArticleOwnership = *file.EnforceArticleOwnership
		c.sources["enforce_article_ownership"] = "file"
	}
	if file.ExposePasswordDigest != nil {
		c.ExposePasswordDigest = *file.ExposePasswordDigest
		c.sources["expose_password_digest"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("EDITORIA_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("EDITORIA_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("EDITORIA_SESSION_IDLE_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionIdleTimeoutSeconds = i
			c.sources["session_idle_timeout"] = "environment"
		}
	}
	if val := os.Getenv("EDITORIA_SESSION_LIFETIME"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionLifetimeSeconds = i
			c.sources["session_lifetime"] = "environment"
		}
	}
	if val := os.Getenv("EDITORIA_SESSION_COOKIE_NAME"); val != "" {
		c.SessionCookieName = val
		c.sources["session_cookie_name"] = "environment"
	}
	if val := os.Getenv("EDITORIA_SESSION_COOKIE_SECURE"); val != "" {
		c.SessionCookieSecure = val == "true" || val == "1"
		c.sources["session_cookie_secure"] = "environment"
	}
	if val := os.Getenv("EDITORIA_ENFORCE_ARTICLE_OWNERSHIP"); val != "" {
		c.EnforceArticleOwnership = val == "true" || val == "1"
		c.sources["enforce_article_ownership"] = "environment"
	}
	if val := os.Getenv("EDITORIA_EXPOSE_PASSWORD_DIGEST"); val != "" {
		c.ExposePasswordDigest = val == "true" || val == "1"
		c.sources["expose_password_digest"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionIdleTimeout returns the session inactivity window as a duration
func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.SessionIdleTimeoutSeconds) * time.Second
}

// SessionLifetime returns the absolute session lifetime as a duration
func (c *Config) SessionLifetime() time.Duration {
	return time.Duration(c.SessionLifetimeSeconds) * time.Second
}

// Addr returns the bind address and port joined for net/http
func (c *Config) Addr() string {
	return c.BindAddress + ":" + strconv.Itoa(c.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.SessionIdleTimeoutSeconds <= 0 {
		return fmt.Errorf("session_idle_timeout must be positive, got %d", c.SessionIdleTimeoutSeconds)
	}
	if c.SessionLifetimeSeconds < c.SessionIdleTimeoutSeconds {
		return fmt.Errorf("session_lifetime (%d) must not be shorter than session_idle_timeout (%d)",
			c.SessionLifetimeSeconds, c.SessionIdleTimeoutSeconds)
	}
	if c.SessionCookieName == "" {
		return fmt.Errorf("session_cookie_name must not be empty")
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "session_idle_timeout", Value: strconv.Itoa(c.SessionIdleTimeoutSeconds), Source: c.Source("session_idle_timeout")},
		{Name: "session_lifetime", Value: strconv.Itoa(c.SessionLifetimeSeconds), Source: c.Source("session_lifetime")},
		{Name: "session_cookie_name", Value: c.SessionCookieName, Source: c.Source("session_cookie_name")},
		{Name: "session_cookie_secure", Value: strconv.FormatBool(c.SessionCookieSecure), Source: c.Source("session_cookie_secure")},
		{Name: "enforce_article_ownership", Value: strconv.FormatBool(c.EnforceArticleOwnership), Source: c.Source("enforce_article_ownership")},
		{Name: "expose_password_digest", Value: strconv.FormatBool(c.ExposePasswordDigest), Source: c.Source("expose_password_digest")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-25s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-25s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-25s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
