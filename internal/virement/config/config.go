/**
 * @description
 * Configuration for the virement-service, loaded from environment variables
 * (with optional .env file) through Viper. The beneficiaire client timeout
 * is explicit configuration rather than an unbounded call.
 */
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the virement-service.
type Config struct {
	ServerPort                  string `mapstructure:"SERVER_PORT"`
	DatabaseURL                 string `mapstructure:"DATABASE_URL"`
	BeneficiaireServiceURL      string `mapstructure:"BENEFICIAIRE_SERVICE_URL"`
	BeneficiaireTimeoutSeconds  int    `mapstructure:"BENEFICIAIRE_TIMEOUT_SECONDS"`
	RabbitMQURL                 string `mapstructure:"RABBITMQ_URL"`
	VirementEventExchange       string `mapstructure:"VIREMENT_EVENT_EXCHANGE"`
}

// LoadConfig reads configuration from environment variables from the given path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8082")
	viper.SetDefault("BENEFICIAIRE_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("BENEFICIAIRE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("VIREMENT_EVENT_EXCHANGE", "virement.events")

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("BENEFICIAIRE_SERVICE_URL")
	_ = viper.BindEnv("BENEFICIAIRE_TIMEOUT_SECONDS")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("VIREMENT_EVENT_EXCHANGE")

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	err = viper.Unmarshal(&config)
	return config, err
}
