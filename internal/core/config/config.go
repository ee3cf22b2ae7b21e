package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
	CORSOrigins       []string `mapstructure:"cors_origins"`
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttl_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	Migrate            string // auto | sql
	LogLevel           string
}

type Buckets struct {
	Default string
	Avatars string
	Resumes string
	Logos   string
}

type Storage struct {
	Endpoint  string
	Port      int
	UseSSL    bool   `mapstructure:"use_ssl"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string
	PublicURL string `mapstructure:"public_url"`
	Buckets   Buckets
}

type LLM struct {
	Provider    string // groq | openai | gemini | openrouter
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	Model       string
	Temperature float64
	TopP        float64 `mapstructure:"top_p"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TimeoutSec  int     `mapstructure:"timeout_sec"`
}

type Upload struct {
	MaxFileMB int `mapstructure:"max_file_mb"`
	MaxFiles  int `mapstructure:"max_files"`
}

type Limits struct {
	RPS            float64
	Burst          int
	MaxConcurrent  int64   `mapstructure:"max_concurrent"`
	MaxBodyMB      int64   `mapstructure:"max_body_mb"`
	GuestChatRPS   float64 `mapstructure:"guest_chat_rps"`
	GuestChatBurst int     `mapstructure:"guest_chat_burst"`
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Storage Storage
	LLM     LLM `mapstructure:"llm"`
	Upload  Upload
	Limits  Limits
}

// 兜底默认值：没有配置文件也能起
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "jobboard")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 15)
	v.SetDefault("app.http.writetimeoutsec", 90)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.requesttimeoutsec", 30)
	v.SetDefault("app.http.cors_origins", []string{"*"})
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 8081)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxsizemb", 100)
	v.SetDefault("log.file.maxbackups", 7)
	v.SetDefault("log.file.maxagedays", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", "your-secret-key")
	v.SetDefault("jwt.issuer", "jobboard")
	v.SetDefault("jwt.accesstokenttlmin", 24*60)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "host=localhost user=postgres password=postgres dbname=recruitment port=5432 sslmode=disable")
	v.SetDefault("db.maxopenconns", 50)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.migrate", "auto")
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_sec", 300)

	v.SetDefault("storage.endpoint", "localhost")
	v.SetDefault("storage.port", 9000)
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.access_key", "minioadmin")
	v.SetDefault("storage.secret_key", "minioadmin123")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.public_url", "")
	v.SetDefault("storage.buckets.default", "recruitment-files")
	v.SetDefault("storage.buckets.avatars", "avatars")
	v.SetDefault("storage.buckets.resumes", "resumes")
	v.SetDefault("storage.buckets.logos", "company-logos")

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.top_p", 1.0)
	v.SetDefault("llm.max_tokens", 8192)
	v.SetDefault("llm.timeout_sec", 60)

	v.SetDefault("upload.max_file_mb", 10)
	v.SetDefault("upload.max_files", 5)

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.max_concurrent", 300)
	v.SetDefault("limits.max_body_mb", 55)
	v.SetDefault("limits.guest_chat_rps", 0.5)
	v.SetDefault("limits.guest_chat_burst", 5)
}

// 兼容老部署里的环境变量名
var legacyEnv = map[string]string{
	"jwt.secret":              "JWT_SECRET",
	"storage.endpoint":        "MINIO_ENDPOINT",
	"storage.port":            "MINIO_PORT",
	"storage.use_ssl":         "MINIO_USE_SSL",
	"storage.access_key":      "MINIO_ACCESS_KEY",
	"storage.secret_key":      "MINIO_SECRET_KEY",
	"storage.buckets.default": "MINIO_BUCKET_NAME",
	"llm.api_key":             "GROQ_API_KEY",
}

// Load 读取 yaml（可选）+ APP_ 前缀环境变量 + 默认值
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		_ = v.BindEnv(key, "APP_"+strings.ToUpper(strings.NewReplacer(".", "_").Replace(key)), env)
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
