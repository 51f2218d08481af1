package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB      string `yaml:"db_dsn"`
	Service struct {
		Host       string `yaml:"host"`
		PublicPort int    `yaml:"public_port"`
		AdminPort  int    `yaml:"admin_port"`
	} `yaml:"service"`
	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	// Биржа
	BinanceRESTBase string `yaml:"binance_rest_base"` // фьючерсный REST
	BinanceWSBase   string `yaml:"binance_ws_base"`   // стрим markPrice
	DefaultExchange string `yaml:"default_exchange"`  // ключи в реестре по умолчанию

	// Конвейер решений
	CandleInterval string // "15m"
	CandleLimit    int    // сколько баров тянем на оценку

	// Мониторинг позиций
	MonitorPeriod time.Duration // фиксированные 60s в этом дизайне

	// Символы для стрима цен
	WatchSymbols []string `yaml:"watch_symbols"`
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		BinanceRESTBase: getenvDefault("BINANCE_REST_BASE", "https://fapi.binance.com"),
		BinanceWSBase:   getenvDefault("BINANCE_WS_BASE", "wss://fstream.binance.com/ws"),
		DefaultExchange: getenvDefault("DEFAULT_EXCHANGE", "binancefutures"),

		CandleInterval: getenvDefault("CANDLE_INTERVAL", "15m"),
		CandleLimit:    intFromEnv("CANDLE_LIMIT", 100),

		MonitorPeriod: durationFromEnv("MONITOR_PERIOD", "60s"),
	}
	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	dsn := os.Getenv(databaseDSN)
	if dsn != "" {
		config.DB = dsn
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
