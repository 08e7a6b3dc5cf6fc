package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Scheduler struct {
		BatchSize  int32 `yaml:"batch_size"`
		NumWorkers int   `yaml:"num_workers"`
	} `yaml:"scheduler"`
	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`
	Catalog struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"catalog"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func defaultConfig() *Config {
	config := &Config{}
	config.Server.Port = getEnv("PORT", "8080")
	config.Scheduler.BatchSize = int32(getEnvAsInt("SCHEDULER_BATCH_SIZE", 50))
	config.Scheduler.NumWorkers = getEnvAsInt("SCHEDULER_NUM_WORKERS", 10)
	config.NATS.URL = getEnv("NATS_URL", "nats://localhost:4222")
	config.Catalog.BaseURL = getEnv("CATALOG_BASE_URL", "")
	return config
}
