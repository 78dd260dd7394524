package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`      // 服务器配置
	Postgres    PostgresConfig    `mapstructure:"postgres"`    // PostgreSQL配置
	Redis       RedisConfig       `mapstructure:"redis"`       // Redis缓存配置（可选）
	Engagement  EngagementConfig  `mapstructure:"engagement"`  // 互动规则配置
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"` // 排行榜配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// RedisConfig Redis配置，Addr为空时排行榜直接查库
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`     // Redis地址，如 127.0.0.1:6379
	Password string `mapstructure:"password"` // Redis密码
	DB       int    `mapstructure:"db"`       // Redis库编号
}

// EngagementConfig 互动规则配置
type EngagementConfig struct {
	CommentWindowDays    int `mapstructure:"comment_window_days"`    // Comment King 统计窗口（天）
	PredictionWindowDays int `mapstructure:"prediction_window_days"` // Prophet 统计窗口（天）
	MaxSubmissions       int `mapstructure:"max_submissions"`        // 比分预测最多提交次数
}

// LeaderboardConfig 排行榜配置
type LeaderboardConfig struct {
	TopN     int           `mapstructure:"top_n"`     // 榜单长度
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // Redis缓存过期时间
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

// applyDefaults 规则参数缺省值
func applyDefaults(cfg *Config) {
	if cfg.Engagement.CommentWindowDays <= 0 {
		cfg.Engagement.CommentWindowDays = 7
	}
	if cfg.Engagement.PredictionWindowDays <= 0 {
		cfg.Engagement.PredictionWindowDays = 30
	}
	if cfg.Engagement.MaxSubmissions <= 0 {
		cfg.Engagement.MaxSubmissions = 2
	}
	if cfg.Leaderboard.TopN <= 0 {
		cfg.Leaderboard.TopN = 10
	}
	if cfg.Leaderboard.CacheTTL <= 0 {
		cfg.Leaderboard.CacheTTL = 30 * time.Second
	}
}
