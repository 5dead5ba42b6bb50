package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	IsolationReadCommitted = "read_committed"
	IsolationSerializable  = "serializable"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-required:"true"`
	Storage    Storage    `yaml:"storage"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Enrollment Enrollment `yaml:"enrollment"`
}

type Storage struct {
	Driver    string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	Isolation string        `yaml:"isolation" env:"STORAGE_ISOLATION" env-default:"read_committed"`
	TxTimeout time.Duration `yaml:"tx_timeout" env:"STORAGE_TX_TIMEOUT" env-default:"5s"`
	SQLite    SQLite        `yaml:"sqlite"`
	Database  Database      `yaml:"postgres"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"./storage/workshops.db"`
}

type Database struct {
	Host         string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User         string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password     string `yaml:"password" env:"DB_PASSWORD"`
	DBName       string `yaml:"dbname" env:"DB_NAME" env-default:"workshops"`
	SSLMode      string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"20"`
	MaxIdleConns int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Enrollment struct {
	// SingleEnrollmentPerRegistrant limits every registrant to one active
	// enrollment across all sessions.
	SingleEnrollmentPerRegistrant bool `yaml:"single_enrollment_per_registrant" env:"SINGLE_ENROLLMENT_PER_REGISTRANT" env-default:"true"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("config path is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

// Load reads the YAML file at path and applies env overrides and defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// fetchConfigPath returns the -config flag value, falling back to CONFIG_PATH.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
