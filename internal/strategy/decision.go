package strategy

import "signal_bot/internal/models"

const (
	maLongPeriod  = 100
	maMidPeriod   = 50
	maShortPeriod = 21

	levelVoteMin = 3
)

// Inputs — всё, что голосует за решение по символу.
// Флаги *OK помечают индикаторы, на которые не хватило данных.
type Inputs struct {
	LastPrice   float64
	LastPriceOK bool

	MA100   float64
	MA100OK bool
	MA50    float64
	MA50OK  bool
	MA21    float64
	MA21OK  bool

	Pattern Pattern

	Stoch   StochState
	StochOK bool

	SpotLevels       []float64
	ResistanceLevels []float64
}

func (in Inputs) complete() bool {
	return in.LastPriceOK && in.MA100OK && in.MA50OK && in.MA21OK && in.StochOK
}

// Aggregate counts one vote per rule and resolves by simple majority.
// A tie, including 0-0, is always Hold. If any indicator is unavailable the
// whole vote block is skipped and the result degrades to Hold.
func Aggregate(in Inputs) models.Decision {
	buy, sell := 0, 0

	if in.complete() {
		// режим скользящих средних
		if in.MA100 < in.MA50 && in.MA21 < in.MA50 {
			buy++
		}
		if in.MA100 > in.MA50 && in.MA21 > in.MA50 {
			sell++
		}

		// свечной паттерн
		if in.Pattern.Bullish() {
			buy++
		}
		if in.Pattern.Bearish() {
			sell++
		}

		// стохастик
		if in.Stoch == StochOversold {
			buy++
		}
		if in.Stoch == StochOverbought {
			sell++
		}

		// уровни
		if len(in.SpotLevels) >= levelVoteMin {
			buy++
		}
		if len(in.ResistanceLevels) >= levelVoteMin {
			sell++
		}
	}

	switch {
	case buy > sell:
		return models.DecisionBuy
	case sell > buy:
		return models.DecisionSell
	default:
		return models.DecisionHold
	}
}

// Evaluate прогоняет полный конвейер по серии свечей (oldest first)
// и возвращает решение вместе со снапшотом входов для логов.
func Evaluate(candles []models.Candle) (models.Decision, Inputs) {
	closes := models.Closes(candles)

	in := Inputs{
		Pattern: ClassifyPattern(candles),
	}

	if len(closes) > 0 {
		in.LastPrice = closes[len(closes)-1]
		in.LastPriceOK = true
	}
	in.MA100, in.MA100OK = MovingAverage(closes, maLongPeriod)
	in.MA50, in.MA50OK = MovingAverage(closes, maMidPeriod)
	in.MA21, in.MA21OK = MovingAverage(closes, maShortPeriod)
	in.Stoch, in.StochOK = StochasticState(closes)

	// Обе стороны считаются одной процедурой по одной и той же серии —
	// поведение исходного кол-сайта сохранено намеренно.
	in.SpotLevels = DetectRepeatedLevels(closes)
	in.ResistanceLevels = DetectRepeatedLevels(closes)

	return Aggregate(in), in
}
