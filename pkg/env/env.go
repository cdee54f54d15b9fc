package env

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers for the persisted restaurant configuration.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port          string   `envconfig:"APP_PORT" default:"8080"`
	StoreDriver   string   `envconfig:"STORE_DRIVER" default:"file"`
	DataDir       string   `envconfig:"DATA_DIR" default:"./data"`
	DatabaseURL   string   `envconfig:"DATABASE_URL"`
	MongoURI      string   `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string   `envconfig:"MONGO_DATABASE" default:"pizza_pos"`
	JWTSecret     string   `envconfig:"JWT_SECRET"`
	LogLevel      string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins   []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	NodeID        int64    `envconfig:"NODE_ID" default:"1"`
}

// LoadDotenv reads .env into the process environment. A missing file is not
// an error; returns whether one was loaded.
func LoadDotenv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load fills Config from the environment and checks the driver settings.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)
	switch cfg.StoreDriver {
	case DriverFile, DriverMemory, DriverMongo:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("STORE_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return &cfg, nil
}
