package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string   `yaml:"log-level" env-default:"info"`
	HTTPPort          string   `yaml:"http-port" env-default:"9090"`
	Redis             Redis    `yaml:"redis"`
	Actuator          Actuator `yaml:"actuator"`
	Vision            Vision   `yaml:"vision"`
	Game              Game     `yaml:"game"`
	SQLiteStoragePath string   `yaml:"sqlite-storage-path" env-default:"./matches.db"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Actuator struct {
	Addr         string        `yaml:"addr" env-default:"localhost:7700"`
	DialTimeout  time.Duration `yaml:"dial-timeout" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write-timeout" env-default:"2s"`
}

type Vision struct {
	URL         string        `yaml:"url" env-default:"ws://localhost:7800/observations"`
	PollTimeout time.Duration `yaml:"poll-timeout" env-default:"500ms"`
}

type Game struct {
	MachineStarts   bool `yaml:"machine-starts" env-default:"false"`
	OpeningPosition int  `yaml:"opening-position" env-default:"4"`
	Continuous      bool `yaml:"continuous" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
