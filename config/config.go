package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer    HttpServerConfig
	HttpClient    HttpClientConfig
	Retry         RetryConfig
	Airtable      AirtableConfig
	BookingStore  string `envconfig:"BOOKING_STORE" default:"airtable"`
	Database      DatabaseConfig
	Redis         RedisConfig
	MessageStream MessageStreamConfig
	Line          LineConfig
	SMTP          SMTPConfig
	Admin         AdminConfig
	Rooms         RoomSet `envconfig:"ROOMS" default:"room1:ห้องที่ 1,room2:ห้องที่ 2"`
}

type HttpServerConfig struct {
	Port string `envconfig:"HTTP_SERVER_PORT" default:"3000"`
}

type HttpClientConfig struct {
	// Type selects the breaker: threshold, consecutive or rate.
	Type       string        `envconfig:"HTTP_CLIENT_BREAKER_TYPE" default:"consecutive"`
	Timeout    time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	Threshold  int64         `envconfig:"HTTP_CLIENT_BREAKER_THRESHOLD" default:"10"`
	Rate       float64       `envconfig:"HTTP_CLIENT_BREAKER_RATE" default:"0.5"`
	MinSamples int64         `envconfig:"HTTP_CLIENT_BREAKER_MIN_SAMPLES" default:"20"`
}

type RetryConfig struct {
	MaxRetries   int           `envconfig:"RETRY_MAX_RETRIES" default:"3"`
	InitialDelay time.Duration `envconfig:"RETRY_INITIAL_DELAY" default:"500ms"`
	MaxDelay     time.Duration `envconfig:"RETRY_MAX_DELAY" default:"8s"`
}

type AirtableConfig struct {
	APIKey       string `envconfig:"AIRTABLE_API_KEY"`
	BaseID       string `envconfig:"AIRTABLE_BASE_ID"`
	Endpoint     string `envconfig:"AIRTABLE_ENDPOINT" default:"https://api.airtable.com/v0"`
	BookingTable string `envconfig:"AIRTABLE_TABLE_NAME" default:"Bookings"`
	StudentTable string `envconfig:"AIRTABLE_STUDENT_TABLE" default:"BillingInformation"`
	StudentView  string `envconfig:"AIRTABLE_STUDENT_VIEW" default:"Grid view"`
	// WriteTimeFields stores "Start Time"/"End Time" besides "Time Slot".
	// Leave off for bases that do not have those columns.
	WriteTimeFields bool `envconfig:"AIRTABLE_WRITE_TIME_FIELDS" default:"false"`
	// RequestKeyField holds the key that lets a retried create find the
	// record an earlier attempt already stored. Empty turns it off.
	RequestKeyField string `envconfig:"AIRTABLE_REQUEST_KEY_FIELD" default:"Request Key"`
}

type DatabaseConfig struct {
	Host         string `envconfig:"DB_HOST" default:"localhost"`
	Port         string `envconfig:"DB_PORT" default:"5432"`
	Username     string `envconfig:"DB_USERNAME" default:"postgres"`
	Password     string `envconfig:"DB_PASSWORD"`
	DBName       string `envconfig:"DB_NAME" default:"booking"`
	SSLMode      string `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MessageStreamConfig struct {
	Host     string `envconfig:"AMQP_HOST" default:"localhost"`
	Port     string `envconfig:"AMQP_PORT" default:"5672"`
	Username string `envconfig:"AMQP_USERNAME" default:"guest"`
	Password string `envconfig:"AMQP_PASSWORD" default:"guest"`
}

type LineConfig struct {
	ChannelSecret      string   `envconfig:"LINE_CHANNEL_SECRET"`
	ChannelAccessToken string   `envconfig:"LINE_CHANNEL_ACCESS_TOKEN"`
	Endpoint           string   `envconfig:"LINE_API_ENDPOINT" default:"https://api.line.me"`
	NotifyTargets      []string `envconfig:"LINE_USER_ID"`
	RequireSignature   bool     `envconfig:"LINE_REQUIRE_SIGNATURE" default:"true"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"GMAIL_USER"`
	Password string `envconfig:"GMAIL_APP_PASSWORD"`
	FromName string `envconfig:"SMTP_FROM_NAME" default:"Limitless Club"`
}

type AdminConfig struct {
	Username      string        `envconfig:"USER_NAME"`
	PasswordHash  string        `envconfig:"ADMIN_PASSWORD_HASH"`
	SessionSecret string        `envconfig:"SESSION_SECRET"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SecureCookie  bool          `envconfig:"SESSION_SECURE_COOKIE" default:"true"`
}

type Room struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricePerHour float64 `json:"pricePerHour,omitempty"`
}

// RoomSet is decoded from "id:name,id:name:pricePerHour".
type RoomSet []Room

func (r *RoomSet) Decode(value string) error {
	var rooms RoomSet
	seen := make(map[string]bool)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, name, found := strings.Cut(part, ":")
		id = strings.TrimSpace(id)
		if !found || id == "" {
			return fmt.Errorf("invalid room entry %q, want id:name", part)
		}
		if seen[id] {
			return fmt.Errorf("duplicate room id %q", id)
		}
		seen[id] = true

		room := Room{ID: id, Name: strings.TrimSpace(name)}
		if n, price, ok := strings.Cut(name, ":"); ok {
			p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
			if err != nil || p < 0 {
				return fmt.Errorf("invalid price in room entry %q", part)
			}
			room.Name, room.PricePerHour = strings.TrimSpace(n), p
		}
		rooms = append(rooms, room)
	}
	if len(rooms) == 0 {
		return fmt.Errorf("room set is empty")
	}
	*r = rooms
	return nil
}

func (r RoomSet) Find(id string) (Room, bool) {
	for _, room := range r {
		if room.ID == id {
			return room, true
		}
	}
	return Room{}, false
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c *MessageStreamConfig) URI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.Username, c.Password, c.Host, c.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func InitConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
