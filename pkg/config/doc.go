// Package config loads typed configuration structs from environment
// variables, with optional .env bootstrap for local development.
//
//	type AppConfig struct {
//	    Env      string `env:"APP_ENV" envDefault:"production"`
//	    RootHost string `env:"APP_ROOT_HOST,required"`
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// Each config type is parsed once per process and cached, so packages can
// load their own config independently without re-reading the environment.
package config
