/**
 * @description
 * Configuration for the gateway-service: the addresses of the downstream
 * services, the JWT verification secret, and the rate limit knobs.
 */
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the gateway-service.
type Config struct {
	ServerPort             string `mapstructure:"SERVER_PORT"`
	JWTSecret              string `mapstructure:"JWT_SECRET"`
	BeneficiaireServiceURL string `mapstructure:"BENEFICIAIRE_SERVICE_URL"`
	VirementServiceURL     string `mapstructure:"VIREMENT_SERVICE_URL"`
	ChatbotServiceURL      string `mapstructure:"CHATBOT_SERVICE_URL"`
	RateLimitPerMinute     int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

// LoadConfig reads configuration from environment variables from the given path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("BENEFICIAIRE_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("VIREMENT_SERVICE_URL", "http://localhost:8082")
	viper.SetDefault("CHATBOT_SERVICE_URL", "http://localhost:8084")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("BENEFICIAIRE_SERVICE_URL")
	_ = viper.BindEnv("VIREMENT_SERVICE_URL")
	_ = viper.BindEnv("CHATBOT_SERVICE_URL")
	_ = viper.BindEnv("RATE_LIMIT_PER_MINUTE")

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	err = viper.Unmarshal(&config)
	return config, err
}
