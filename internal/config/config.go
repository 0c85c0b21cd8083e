package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Chat   ChatConfig
	Log    LogConfig
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"WS_ALLOWED_ORIGINS" envSeparator:","`

	// Addr 由 Port 推导得出，不直接读取环境变量。
	Addr string
}

// ChatConfig 描述会话与模拟回复相关配置。
type ChatConfig struct {
	HistoryLimit     int           `env:"CHAT_HISTORY_LIMIT" envDefault:"10"`
	ResponseDelayMin time.Duration `env:"CHAT_RESPONSE_DELAY_MIN" envDefault:"1s"`
	ResponseDelayMax time.Duration `env:"CHAT_RESPONSE_DELAY_MAX" envDefault:"3s"`
}

// LogConfig 描述日志输出配置。
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	addr, err := resolveAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr

	if err := cfg.Chat.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveAddr 解析服务器监听地址。
func resolveAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

func (c ChatConfig) validate() error {
	if c.HistoryLimit < 1 {
		return fmt.Errorf("invalid CHAT_HISTORY_LIMIT value %d: must be at least 1", c.HistoryLimit)
	}
	if c.ResponseDelayMin < 0 {
		return fmt.Errorf("invalid CHAT_RESPONSE_DELAY_MIN value %s: must not be negative", c.ResponseDelayMin)
	}
	if c.ResponseDelayMax < c.ResponseDelayMin {
		return fmt.Errorf("invalid CHAT_RESPONSE_DELAY_MAX value %s: below minimum %s", c.ResponseDelayMax, c.ResponseDelayMin)
	}
	return nil
}
