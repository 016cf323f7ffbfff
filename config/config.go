package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 应用配置
type Config struct {
	Port        int
	MongoURI    string
	MongoDB     string
	Debug       bool
	TimeZone    string
	LogFile     string
	OptionsFile string
	CORSOrigins []string
	// DigestAt 每日逾期跟进汇总的执行时间，格式 HH:MM:SS
	DigestAt string
}

// LoadConfig 从环境变量加载配置
func LoadConfig() *Config {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 {
		port = 8080
	}
	return &Config{
		Port:        port,
		MongoURI:    getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/crm"),
		MongoDB:     getEnv("MONGO_DB", "crm"),
		Debug:       getEnv("GIN_MODE", "debug") == "debug",
		TimeZone:    getEnv("TIME_ZONE", "Asia/Shanghai"),
		LogFile:     os.Getenv("LOG_FILE"),
		OptionsFile: os.Getenv("OPTIONS_FILE"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3001,http://localhost:5173")),
		DigestAt:    getEnv("FOLLOW_UP_DIGEST_AT", "08:30:00"),
	}
}

// Location 解析配置的时区，"今天"按该时区的日历日计算
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("无效的时区 %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// DigestClock 解析每日汇总时间
func (c *Config) DigestClock() (hour, minute, second int, err error) {
	t, err := time.Parse("15:04:05", c.DigestAt)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("无效的汇总时间 %q: %w", c.DigestAt, err)
	}
	return t.Hour(), t.Minute(), t.Second(), nil
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
