package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type catalog struct {
	SourceBaseURL string `mapstructure:"source_base_url"`
	PriceFillMin  int64  `mapstructure:"price_fill_min"`
	PriceFillMax  int64  `mapstructure:"price_fill_max"`
	PageSize      int    `mapstructure:"page_size"`
}

type geocoder struct {
	BaseURL string `mapstructure:"base_url"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	StoragePath    string     `mapstructure:"storage_path"`
	Catalog        catalog    `mapstructure:"catalog"`
	Geocoder       geocoder   `mapstructure:"geocoder"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	StoragePath=%q

	Catalog:
	SourceBaseURL=%q
	PriceFillMin=%d
	PriceFillMax=%d
	PageSize=%d

	Geocoder:
	BaseURL=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.StoragePath,
		c.Catalog.SourceBaseURL,
		c.Catalog.PriceFillMin,
		c.Catalog.PriceFillMax,
		c.Catalog.PageSize,
		c.Geocoder.BaseURL,
	)
}
