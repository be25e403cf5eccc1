/**
 * @description
 * Configuration for the chatbot-service: where the MCP relay lives and the
 * credentials for the external LLM chat endpoint.
 */
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the chatbot-service.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	MCPServerURL string `mapstructure:"MCP_SERVER_URL"`
	LLMAPIURL    string `mapstructure:"LLM_API_URL"`
	LLMAPIKey    string `mapstructure:"LLM_API_KEY"`
	LLMModel     string `mapstructure:"LLM_MODEL"`
}

// LoadConfig reads configuration from environment variables from the given path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "8084")
	viper.SetDefault("MCP_SERVER_URL", "http://localhost:8083/api/mcp")
	viper.SetDefault("LLM_MODEL", "gpt-oss:20b")

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("MCP_SERVER_URL")
	_ = viper.BindEnv("LLM_API_URL")
	_ = viper.BindEnv("LLM_API_KEY")
	_ = viper.BindEnv("LLM_MODEL")

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	err = viper.Unmarshal(&config)
	return config, err
}
