/**
 * @description
 * Configuration for the mcp-server, the data-access relay the chatbot
 * queries instead of talking to the banking services directly.
 */
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the mcp-server.
type Config struct {
	ServerPort             string `mapstructure:"SERVER_PORT"`
	BeneficiaireServiceURL string `mapstructure:"BENEFICIAIRE_SERVICE_URL"`
	VirementServiceURL     string `mapstructure:"VIREMENT_SERVICE_URL"`
}

// LoadConfig reads configuration from environment variables from the given path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8083")
	viper.SetDefault("BENEFICIAIRE_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("VIREMENT_SERVICE_URL", "http://localhost:8082")

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("BENEFICIAIRE_SERVICE_URL")
	_ = viper.BindEnv("VIREMENT_SERVICE_URL")

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	err = viper.Unmarshal(&config)
	return config, err
}
