package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "AIRQ"

type Config struct {
	DataPath       string   `mapstructure:"data_path" yaml:"data_path"`
	ReportPath     string   `mapstructure:"report_path" yaml:"report_path"`
	HTTPAddr       string   `mapstructure:"http_addr" yaml:"http_addr"`
	AppEnv         string   `mapstructure:"app_env" yaml:"app_env"`
	LogLevel       string   `mapstructure:"log_level" yaml:"log_level"`
	DbDsn          string   `mapstructure:"db_dsn" yaml:"db_dsn"`
	TgToken        string   `mapstructure:"tg_token" yaml:"tg_token"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	UploadDir      string   `mapstructure:"upload_dir" yaml:"upload_dir"`
	AssetsHost     string   `mapstructure:"assets_host" yaml:"assets_host"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration from defaults, an optional .env file, the environment and
// cfgFile (YAML) when given. A missing cfgFile is an error; a missing .env is not.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("data_path", "main_data.csv")
	v.SetDefault("report_path", "eda_report.html")
	v.SetDefault("http_addr", ":8005")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_dsn", "")
	v.SetDefault("tg_token", "")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("assets_host", "https://go-echarts.github.io/go-echarts-assets/assets/")

	// Unprefixed names kept from earlier deployments.
	_ = v.BindEnv("db_dsn", EnvPrefix+"_DB_DSN", "DB_DSN")
	_ = v.BindEnv("tg_token", EnvPrefix+"_TG_TOKEN", "TG_TOKEN")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.AllowedOrigins = splitList(strings.Join(c.AllowedOrigins, ","))
	return &c, nil
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
