package strategy

import (
	"math"

	"signal_bot/internal/models"
)

// Pattern — метка свечного паттерна по последним 2–4 свечам.
type Pattern string

const (
	PatternBullishEngulfing   Pattern = "bullishEngulfing"
	PatternHammer             Pattern = "hammer"
	PatternMorningStar        Pattern = "morningStar"
	PatternPiercingLine       Pattern = "piercingLine"
	PatternThreeWhiteSoldiers Pattern = "threeWhiteSoldiers"
	PatternDoji               Pattern = "doji"
	PatternBullishHarami      Pattern = "bullishHarami"
	PatternRisingThreeMethods Pattern = "risingThreeMethods"
	PatternInvertedHammer     Pattern = "invertedHammer"
	PatternDragonflyDoji      Pattern = "dragonflyDoji"

	PatternBearishEngulfing    Pattern = "bearishEngulfing"
	PatternShootingStar        Pattern = "shootingStar"
	PatternEveningStar         Pattern = "eveningStar"
	PatternDarkCloudCover      Pattern = "darkCloudCover"
	PatternThreeBlackCrows     Pattern = "threeBlackCrows"
	PatternBearishHarami       Pattern = "bearishHarami"
	PatternFallingThreeMethods Pattern = "fallingThreeMethods"
	PatternGravestoneDoji      Pattern = "gravestoneDoji"

	PatternNone Pattern = "noPattern"
)

// Bullish reports membership in the bullish vote set.
func (p Pattern) Bullish() bool {
	switch p {
	case PatternBullishEngulfing, PatternHammer, PatternMorningStar,
		PatternPiercingLine, PatternThreeWhiteSoldiers, PatternDoji,
		PatternBullishHarami, PatternRisingThreeMethods,
		PatternInvertedHammer, PatternDragonflyDoji:
		return true
	}
	return false
}

// Bearish reports membership in the bearish vote set.
func (p Pattern) Bearish() bool {
	switch p {
	case PatternBearishEngulfing, PatternShootingStar, PatternEveningStar,
		PatternDarkCloudCover, PatternThreeBlackCrows, PatternBearishHarami,
		PatternFallingThreeMethods, PatternGravestoneDoji:
		return true
	}
	return false
}

// ClassifyPattern возвращает первый совпавший паттерн в фиксированном
// порядке приоритета. Последовательность проверок менять нельзя:
// свечи, подходящие под несколько предикатов, должны давать ту же метку.
// Паттерны из 3+ свечей пропускаются, если четвёртой с конца свечи нет.
func ClassifyPattern(candles []models.Candle) Pattern {
	n := len(candles)
	if n < 2 {
		return PatternNone
	}

	cur := candles[n-1]
	prev := candles[n-2]

	var third, fourth models.Candle
	multi := n >= 4
	if multi {
		third = candles[n-3]
		fourth = candles[n-4]
	}

	// --- bullish ---

	if prev.Open < prev.Close &&
		cur.Open > cur.Close &&
		cur.Close > prev.Open &&
		cur.Open < prev.Close {
		return PatternBullishEngulfing
	}

	if cur.Open > cur.Close &&
		(cur.Close-cur.Low) >= 2*(cur.Open-cur.Close) {
		return PatternHammer
	}

	if multi &&
		third.Open > third.Close && // длинная медвежья
		math.Abs(prev.Open-prev.Close) <= (third.Open-third.Close)*0.3 && // маленькое нерешительное тело
		cur.Close > third.Close &&
		cur.Open < prev.Close &&
		cur.Close > prev.Open {
		return PatternMorningStar
	}

	if prev.Open > prev.Close &&
		cur.Open < cur.Close &&
		cur.Open < prev.Close && // гэп вниз
		cur.Close > prev.Close+(prev.Open-prev.Close)/2 { // закрытие выше середины
		return PatternPiercingLine
	}

	if multi &&
		third.Open < third.Close &&
		prev.Open < prev.Close &&
		cur.Open < cur.Close &&
		third.Close < prev.Open &&
		prev.Close < cur.Open {
		return PatternThreeWhiteSoldiers
	}

	if math.Abs(cur.Open-cur.Close) <= (cur.High-cur.Low)*0.1 {
		return PatternDoji
	}

	if prev.Open > prev.Close &&
		cur.Open < cur.Close &&
		cur.Open > prev.Close &&
		cur.Close < prev.Open {
		return PatternBullishHarami
	}

	if multi &&
		fourth.Open < fourth.Close &&
		third.Open > third.Close &&
		prev.Open > prev.Close &&
		cur.Open < cur.Close &&
		cur.Close > fourth.Close {
		return PatternRisingThreeMethods
	}

	if cur.Open > cur.Close &&
		(cur.Close-cur.Low) >= 2*(cur.Open-cur.Close) &&
		(cur.Open-cur.Close) <= (cur.High-cur.Open) {
		return PatternInvertedHammer
	}

	if math.Abs(cur.Open-cur.Close) <= (cur.High-cur.Low)*0.1 &&
		(cur.High-cur.Open) <= (cur.Open-cur.Low)*0.1 &&
		(cur.Open-cur.Close) <= (cur.Open-cur.Low)*0.1 {
		return PatternDragonflyDoji
	}

	// --- bearish ---

	if prev.Open > prev.Close &&
		cur.Open < cur.Close &&
		cur.Close < prev.Open &&
		cur.Open > prev.Close {
		return PatternBearishEngulfing
	}

	if cur.Open < cur.Close &&
		(cur.High-cur.Close) >= 2*(cur.Open-cur.Close) {
		return PatternShootingStar
	}

	if multi &&
		third.Open < third.Close &&
		math.Abs(prev.Open-prev.Close) <= (third.Open-third.Close)*0.3 &&
		cur.Close < prev.Close &&
		cur.Close < third.Open {
		return PatternEveningStar
	}

	if prev.Open < prev.Close &&
		cur.Open > cur.Close &&
		cur.Open > prev.Close && // гэп вверх
		cur.Close < prev.Close-(prev.Open-prev.Close)/2 {
		return PatternDarkCloudCover
	}

	if multi &&
		third.Open > third.Close &&
		prev.Open > prev.Close &&
		cur.Open > cur.Close &&
		third.Close > prev.Open &&
		prev.Close > cur.Open {
		return PatternThreeBlackCrows
	}

	if prev.Open < prev.Close &&
		cur.Open > cur.Close &&
		cur.Open < prev.Close &&
		cur.Close > prev.Open {
		return PatternBearishHarami
	}

	if multi &&
		fourth.Open > fourth.Close &&
		third.Open < third.Close &&
		prev.Open < prev.Close &&
		cur.Open > cur.Close &&
		cur.Close < fourth.Close {
		return PatternFallingThreeMethods
	}

	if math.Abs(cur.Open-cur.Close) <= (cur.High-cur.Low)*0.1 &&
		(cur.High-cur.Close) <= (cur.Open-cur.Low)*0.1 &&
		(cur.Open-cur.Close) >= 2*(cur.Close-cur.Low) {
		return PatternGravestoneDoji
	}

	return PatternNone
}
