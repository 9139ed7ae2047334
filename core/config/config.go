package config

import (
	"sync"

	"courtbook/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort int
	LogLevel   string
	LogFormat  string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	S3Region    string
	S3Bucket    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	AsynqConcurrency int
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logger.Info("No .env file found, using environment variables")
		}

		v := viper.New()
		v.AutomaticEnv()

		v.SetDefault("SERVER_PORT", 7070)
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("DB_HOST", "localhost")
		v.SetDefault("DB_PORT", 5432)
		v.SetDefault("DB_USER", "postgres")
		v.SetDefault("DB_PASSWORD", "postgres")
		v.SetDefault("DB_NAME", "courtbook")
		v.SetDefault("REDIS_ADDR", "localhost:6379")
		v.SetDefault("REDIS_PASSWORD", "")
		v.SetDefault("REDIS_DB", 0)
		v.SetDefault("JWT_SECRET", "")
		v.SetDefault("S3_REGION", "ap-south-1")
		v.SetDefault("S3_BUCKET", "courtbook-proofs")
		v.SetDefault("S3_ENDPOINT", "")
		v.SetDefault("S3_ACCESS_KEY", "")
		v.SetDefault("S3_SECRET_KEY", "")
		v.SetDefault("ASYNQ_CONCURRENCY", 5)

		cfg = &Config{
			ServerPort:       v.GetInt("SERVER_PORT"),
			LogLevel:         v.GetString("LOG_LEVEL"),
			LogFormat:        v.GetString("LOG_FORMAT"),
			DBHost:           v.GetString("DB_HOST"),
			DBPort:           v.GetInt("DB_PORT"),
			DBUser:           v.GetString("DB_USER"),
			DBPassword:       v.GetString("DB_PASSWORD"),
			DBName:           v.GetString("DB_NAME"),
			RedisAddr:        v.GetString("REDIS_ADDR"),
			RedisPassword:    v.GetString("REDIS_PASSWORD"),
			RedisDB:          v.GetInt("REDIS_DB"),
			JWTSecret:        v.GetString("JWT_SECRET"),
			S3Region:         v.GetString("S3_REGION"),
			S3Bucket:         v.GetString("S3_BUCKET"),
			S3Endpoint:       v.GetString("S3_ENDPOINT"),
			S3AccessKey:      v.GetString("S3_ACCESS_KEY"),
			S3SecretKey:      v.GetString("S3_SECRET_KEY"),
			AsynqConcurrency: v.GetInt("ASYNQ_CONCURRENCY"),
		}
	})
	return cfg
}
