package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig      `json:"server"`
	Database    DatabaseConfig    `json:"database"`
	Redis       RedisConfig       `json:"redis"`
	MercadoPago MercadoPagoConfig `json:"mercadopago"`
	Store       StoreConfig       `json:"store"`
	Admin       AdminConfig       `json:"admin"`
	Monitoring  MonitoringConfig  `json:"monitoring"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname"`
	SSLMode        string `json:"sslmode"`
	MigrationsPath string `json:"migrations_path"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`

	// TTLs for the browser-session-scoped slots.
	CartTTLHours     int `json:"cart_ttl_hours"`
	SnapshotTTLHours int `json:"snapshot_ttl_hours"`
}

type MercadoPagoConfig struct {
	BaseURL        string `json:"base_url"`
	AccessToken    string `json:"access_token"`
	PublicKey      string `json:"public_key"`
	WebhookSecret  string `json:"webhook_secret"`
	Environment    string `json:"environment"` // "sandbox" or "production"
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type StoreConfig struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	// BaseURL is the public site origin; callback and webhook URLs derive
	// from it.
	BaseURL string `json:"base_url"`
	// PreferenceExpirationMinutes bounds how long a hosted payment page
	// stays payable.
	PreferenceExpirationMinutes int `json:"preference_expiration_minutes"`
}

type AdminConfig struct {
	Token string `json:"token"`
}

type MonitoringConfig struct {
	Addr string `json:"addr"`
}

// LoadConfig reads the JSON config file and then overlays secrets from the
// environment (a .env file is honored when present). Environment always wins
// so deployments never need credentials inside the config file.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	config.applyEnvOverrides()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.MercadoPago.BaseURL == "" {
		c.MercadoPago.BaseURL = "https://api.mercadopago.com"
	}
	if c.MercadoPago.TimeoutSeconds == 0 {
		c.MercadoPago.TimeoutSeconds = 5
	}
	if c.MercadoPago.Environment == "" {
		c.MercadoPago.Environment = "sandbox"
	}
	if c.Store.Currency == "" {
		c.Store.Currency = "BRL"
	}
	if c.Store.PreferenceExpirationMinutes == 0 {
		c.Store.PreferenceExpirationMinutes = 30
	}
	if c.Redis.CartTTLHours == 0 {
		c.Redis.CartTTLHours = 24 * 30
	}
	if c.Redis.SnapshotTTLHours == 0 {
		c.Redis.SnapshotTTLHours = 24 * 7
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MERCADO_PAGO_ACCESS_TOKEN"); v != "" {
		c.MercadoPago.AccessToken = v
	}
	if v := os.Getenv("MERCADO_PAGO_PUBLIC_KEY"); v != "" {
		c.MercadoPago.PublicKey = v
	}
	if v := os.Getenv("MERCADO_PAGO_WEBHOOK_SECRET"); v != "" {
		c.MercadoPago.WebhookSecret = v
	}
	if v := os.Getenv("MERCADO_PAGO_ENVIRONMENT"); v != "" {
		c.MercadoPago.Environment = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.Admin.Token = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

func (c *Config) validate() error {
	if c.MercadoPago.AccessToken == "" {
		return fmt.Errorf("mercadopago access token is not configured")
	}
	if c.Store.BaseURL == "" {
		return fmt.Errorf("store base_url is not configured")
	}
	return nil
}

func (c *MercadoPagoConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *MercadoPagoConfig) IsProduction() bool {
	return c.Environment == "production"
}

// CallbackURLs are the post-payment landing pages the gateway redirects the
// shopper back to.
func (c *StoreConfig) CallbackURLs() (success, failure, pending string) {
	return c.BaseURL + "/pagamento/sucesso",
		c.BaseURL + "/pagamento/erro",
		c.BaseURL + "/pagamento/pendente"
}

func (c *StoreConfig) WebhookURL() string {
	return c.BaseURL + "/api/mercadopago/webhook"
}

func (c *StoreConfig) PreferenceExpiration() time.Duration {
	return time.Duration(c.PreferenceExpirationMinutes) * time.Minute
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
