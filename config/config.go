package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Catalog CatalogConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type StoreConfig struct {
	// Path is the SQLite file backing the durable key-value medium.
	Path string
}

type CatalogConfig struct {
	ListURL   string
	AppendURL string
	Timeout   time.Duration
}

// LoadConfig reads .env plus the process environment. A missing .env file is
// not an error: the tool must start offline with nothing but its defaults.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Best effort; environment variables still apply when the file is absent.
	_ = viper.ReadInConfig()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORE_PATH", "taiyim.db")
	viper.SetDefault("CATALOG_LIST_URL", "http://localhost:3000/taiyim/food-db.json")
	viper.SetDefault("CATALOG_APPEND_URL", "http://localhost:3000/api/foods")

	timeout, err := time.ParseDuration(viper.GetString("CATALOG_TIMEOUT"))
	if err != nil {
		timeout = 5 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Store: StoreConfig{
			Path: viper.GetString("STORE_PATH"),
		},
		Catalog: CatalogConfig{
			ListURL:   viper.GetString("CATALOG_LIST_URL"),
			AppendURL: viper.GetString("CATALOG_APPEND_URL"),
			Timeout:   timeout,
		},
	}

	return config, nil
}
