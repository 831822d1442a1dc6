package config

import (
	"os"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Astemirdum/books-service/pkg/kafka"
	"github.com/Astemirdum/books-service/pkg/logger"
	"github.com/Astemirdum/books-service/pkg/postgres"
)

const (
	EnvProduction = "production"
	EnvTest       = "test"
)

type HTTPServer struct {
	Host            string        `yaml:"host" envconfig:"BOOKS_HTTP_HOST"`
	Port            string        `yaml:"port" envconfig:"BOOKS_HTTP_PORT"`
	ReadTimeout     time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" envconfig:"HTTP_SHUTDOWN"`
}

type Database struct {
	postgres.DB `yaml:",inline"`
	// TestName replaces NameDB when the service runs with APP_ENV=test.
	TestName string `yaml:"testName" envconfig:"DB_TEST_NAME"`
}

type Config struct {
	Env      string       `yaml:"env" envconfig:"APP_ENV"`
	Server   HTTPServer   `yaml:"server"`
	Database Database     `yaml:"db"`
	Kafka    kafka.Config `yaml:"kafka"`
	Log      logger.Log   `yaml:"log"`
}

// DB returns the connection settings of the database for the current env.
func (c *Config) DB() postgres.DB {
	db := c.Database.DB
	if c.Env == EnvTest && c.Database.TestName != "" {
		db.NameDB = c.Database.TestName
	}
	return db
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// NewConfig starts from defaults, applies the optional yaml file named by
// BOOKS_CONFIG_FILE, then environment, then ops.
func NewConfig(ops ...Option) (*Config, error) {
	once.Do(func() {
		cfg, cfgErr = load(os.Getenv("BOOKS_CONFIG_FILE"), ops...)
	})
	return cfg, cfgErr
}

func defaultConfig() Config {
	return Config{
		Env: EnvProduction,
		Server: HTTPServer{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: Database{
			DB: postgres.DB{
				Host:            "localhost",
				Port:            "5432",
				Username:        "postgres",
				NameDB:          "books",
				SSLMode:         "disable",
				MaxOpenConns:    10,
				ConnMaxLifetime: 5 * time.Minute,
			},
			TestName: "books_test",
		},
		Kafka: kafka.Config{
			Topic: "books.events",
		},
		Log: logger.Log{
			LogLevel: zapcore.InfoLevel,
		},
	}
}

func load(file string, ops ...Option) (*Config, error) {
	config := defaultConfig()
	if file != "" {
		if err := loadFile(file, &config); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.Wrap(err, "envconfig.Process")
	}
	for _, op := range ops {
		op(&config)
	}
	return &config, nil
}

func loadFile(name string, config *Config) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "open config file")
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return errors.Wrapf(err, "decode config file %s", name)
	}
	return nil
}
