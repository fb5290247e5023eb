package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"TICTACTOE_HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"TICTACTOE_SOCKET_PORT" env-default:"9091"`
	Storage    Storage `yaml:"storage"`
	Redis      Redis   `yaml:"redis"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"TICTACTOE_STORAGE_DRIVER" env-default:"file"`
	Key        string `yaml:"key" env:"TICTACTOE_STORAGE_KEY" env-default:"tictactoe:state"`
	Dir        string `yaml:"dir" env:"TICTACTOE_STORAGE_DIR"`
	SQLitePath string `yaml:"sqlite-path" env:"TICTACTOE_SQLITE_PATH"`
}

type Redis struct {
	Host string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads the config file at path, or only defaults and environment when the file does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	config.Storage.setDefaults()

	if err = config.Storage.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Storage) setDefaults() {
	if that.Dir == "" {
		that.Dir = filepath.Join(xdg.DataHome, "tictactoe")
	}

	if that.SQLitePath == "" {
		that.SQLitePath = filepath.Join(that.Dir, "state.db")
	}
}

func (that *Storage) Validate() error {
	switch that.Driver {
	case DriverFile, DriverRedis, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, that.Driver)
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
