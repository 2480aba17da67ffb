package config

import (
	"github.com/spf13/viper"
)

// Config stores all runtime configuration for the service.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	DBPath      string `mapstructure:"DB_PATH"`
	LogPath     string `mapstructure:"LOG_PATH"`
}

// LoadConfig reads configuration from an optional .env file in path,
// falling back to environment variables and built-in defaults. The
// defaults match the historical hardcoded values, so the binary runs
// with no configuration at all.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DB_PATH", "tasks.db")
	viper.SetDefault("LOG_PATH", "logs/taskstore.log")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// The config file is optional; only its absence is tolerated.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
