// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env          string `yaml:"env"`
	RecordStore  `yaml:"record_store"`
	StoreServer  `yaml:"store_server"`
	Session      `yaml:"session"`
	SessionToken `yaml:"session_token"`
	ExternalAPI  `yaml:"external_api"`
}

// RecordStore структура для настройки клиента хранилища записей
type RecordStore struct {
	BaseURL      string        `yaml:"base_url"`
	TimeoutStore time.Duration `yaml:"timeout"`
}

// StoreServer структура для настройки встроенного сервера хранилища
type StoreServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	SeedPath    string        `yaml:"seed_path"`
}

// Session структура для настройки локального состояния сессии
type Session struct {
	StatePath string `yaml:"state_path"`
}

// SessionToken структура для работы с токеном сессии
type SessionToken struct {
	SecretKey string        `yaml:"secret_key"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// ExternalAPI структура для настройки внешнего сервиса подсказок
type ExternalAPI struct {
	SuggestionsURL  string        `yaml:"suggestions_url"`
	TimeoutExternal time.Duration `yaml:"timeout"`
}

// MustLoad функция для загрузки конфига, путь к файлу берется из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"RecordStore:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"StoreServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"  SeedPath: %s\n"+
			"Session:\n"+
			"  StatePath: %s\n"+
			"SessionToken:\n"+
			"  SecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"ExternalAPI:\n"+
			"  SuggestionsURL: %s\n"+
			"  Timeout: %s\n",
		c.Env,
		c.BaseURL,
		c.TimeoutStore,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.SeedPath,
		c.StatePath,
		c.SecretKey,
		c.TokenTTL,
		c.SuggestionsURL,
		c.TimeoutExternal,
	)
}
