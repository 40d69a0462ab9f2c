package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvStateDev  = "dev"
	EnvStateProd = "prod"
)

// SecretsFileEnv overrides the secrets file search path.
const SecretsFileEnv = "SECRETS_FILE"

var secretsSearchPaths = []string{
	"/secrets/.env",
	filepath.Join("secrets", ".env"),
}

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Auth   AuthConfig
	CORS   CORSConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME" envDefault:"multi-auth-api"`
	EnvState              string `env:"ENV_STATE" envDefault:"dev"`
	Host                  string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port                  string `env:"APP_PORT" envDefault:"8000"`
	Version               string `env:"APP_VERSION" envDefault:"2.0.0"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	SecretKey                string    `env:"SECRET_KEY,required,notEmpty"`
	Algorithm                string    `env:"ALGORITHM" envDefault:"HS256"`
	AccessTokenExpireSeconds float64   `env:"ACCESS_TOKEN_EXPIRE_SECONDS" envDefault:"1800"`
	SimpleAPIToken           string    `env:"SIMPLE_API_TOKEN,required,notEmpty"`
	UserLogin                UserLogin `env:"USER_LOGIN,required,notEmpty"`
}

// CORSConfig lists allowed origins, comma separated.
type CORSConfig struct {
	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
}

// UserLogin maps usernames to their password (plaintext or bcrypt hash).
type UserLogin map[string]string

// Load reads configuration from the process environment, seeding it from the
// first secrets file found. Values already present in the environment win.
func Load() (*Config, error) {
	if path := findSecretsFile(); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load secrets file %s: %w", path, err)
		}
	}
	return parse(env.Options{})
}

// Parse builds a Config from an explicit environment instead of the process one.
func Parse(environment map[string]string) (*Config, error) {
	if environment == nil {
		environment = map[string]string{}
	}
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	opts.FuncMap = map[reflect.Type]env.ParserFunc{
		reflect.TypeOf(UserLogin{}): func(v string) (interface{}, error) {
			return parseUserLogin(v)
		},
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that would serve with undefined security behavior.
func (c *Config) Validate() error {
	var errs []error

	switch c.App.EnvState {
	case EnvStateDev, EnvStateProd:
	default:
		errs = append(errs, fmt.Errorf("invalid ENV_STATE %q: want %q or %q", c.App.EnvState, EnvStateDev, EnvStateProd))
	}
	if c.Auth.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	if _, ok := supportedAlgorithms[c.Auth.Algorithm]; !ok {
		errs = append(errs, fmt.Errorf("unsupported ALGORITHM %q", c.Auth.Algorithm))
	}
	if c.Auth.AccessTokenExpireSeconds <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_SECONDS must be positive"))
	}
	if c.Auth.SimpleAPIToken == "" {
		errs = append(errs, errors.New("SIMPLE_API_TOKEN is required"))
	}
	if len(c.Auth.UserLogin) == 0 {
		errs = append(errs, errors.New("USER_LOGIN must contain at least one user"))
	}

	return errors.Join(errs...)
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the service runs with ENV_STATE=prod.
func (a AppConfig) IsProduction() bool {
	return a.EnvState == EnvStateProd
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the default token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenExpireSeconds * float64(time.Second))
}

// Origins splits the configured origins list.
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// parseUserLogin accepts {"user":{"password":"pw"}} as well as {"user":"pw"}.
func parseUserLogin(raw string) (UserLogin, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("invalid USER_LOGIN: %w", err)
	}

	users := make(UserLogin, len(entries))
	for username, entry := range entries {
		if username == "" {
			return nil, errors.New("invalid USER_LOGIN: empty username")
		}

		var password string
		if err := json.Unmarshal(entry, &password); err != nil {
			var record struct {
				Password *string `json:"password"`
			}
			if err := json.Unmarshal(entry, &record); err != nil || record.Password == nil {
				return nil, fmt.Errorf("invalid USER_LOGIN entry for %q: want a password string or {\"password\": ...}", username)
			}
			password = *record.Password
		}
		if password == "" {
			return nil, fmt.Errorf("invalid USER_LOGIN entry for %q: empty password", username)
		}
		users[username] = password
	}
	return users, nil
}

func findSecretsFile() string {
	if path := os.Getenv(SecretsFileEnv); path != "" {
		return path
	}
	for _, path := range secretsSearchPaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
