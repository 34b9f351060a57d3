package config

import (
	"os"
	"strconv"
)

// Environment variables that override physics.json
const (
	EnvAPIAddr = "PLATFIGHT_API_ADDR"
	EnvTPS     = "PLATFIGHT_TPS"
)

// ApplyEnv overrides file values with environment variables
func ApplyEnv(cfg *PhysicsConfig) {
	if addr := os.Getenv(EnvAPIAddr); addr != "" {
		cfg.API.Addr = addr
		cfg.API.Enabled = true
	}
	if tps := getEnvInt(EnvTPS, 0); tps > 0 {
		cfg.Display.Framerate = tps
	}
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
