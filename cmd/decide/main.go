package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"signal_bot/internal/modules/binance_client/service"
	"signal_bot/internal/strategy"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Одноразовый прогон конвейера решения по символу, без поднятия сервиса:
//
//	go run ./cmd/decide BTCUSDT
func main() {
	_ = godotenv.Load()

	viper.SetConfigName("values_local")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")
	viper.SetDefault("binance_rest_base", "https://fapi.binance.com")
	viper.SetDefault("candle_interval", "15m")
	viper.SetDefault("candle_limit", 100)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		// без файла тоже работаем, на дефолтах
		fmt.Fprintf(os.Stderr, "config: %v, using defaults\n", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: decide SYMBOL")
		os.Exit(2)
	}
	symbol := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := service.NewClient(viper.GetString("binance_rest_base"))
	candles, err := client.GetCandles(ctx, symbol,
		viper.GetString("candle_interval"), viper.GetInt("candle_limit"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch candles: %v\n", err)
		os.Exit(1)
	}

	decision, in := strategy.Evaluate(candles)

	fmt.Printf("symbol:     %s\n", symbol)
	fmt.Printf("candles:    %d\n", len(candles))
	fmt.Printf("last price: %.4f\n", in.LastPrice)
	fmt.Printf("ma100/50/21: %.4f / %.4f / %.4f\n", in.MA100, in.MA50, in.MA21)
	fmt.Printf("pattern:    %s\n", in.Pattern)
	fmt.Printf("stochastic: %v\n", in.Stoch)
	fmt.Printf("levels:     spot=%d resistance=%d\n", len(in.SpotLevels), len(in.ResistanceLevels))
	fmt.Printf("decision:   %s\n", decision)
}
