package strategy

import (
	"testing"

	"signal_bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func c(open, high, low, close float64) models.Candle {
	return models.Candle{Open: open, High: high, Low: low, Close: close}
}

func TestClassifyPattern_TooFewCandles(t *testing.T) {
	assert.Equal(t, PatternNone, ClassifyPattern(nil))
	assert.Equal(t, PatternNone, ClassifyPattern([]models.Candle{c(10, 11, 9, 10.5)}))
}

func TestClassifyPattern_BullishEngulfing(t *testing.T) {
	candles := []models.Candle{
		c(10, 12.5, 9.5, 12),     // prev: бычья
		c(11.5, 11.8, 10.3, 10.5), // cur
	}
	assert.Equal(t, PatternBullishEngulfing, ClassifyPattern(candles))
}

func TestClassifyPattern_Hammer(t *testing.T) {
	candles := []models.Candle{
		c(11, 11.1, 10.7, 10.8),
		c(10.6, 10.7, 9.0, 10.4), // длинная нижняя тень
	}
	assert.Equal(t, PatternHammer, ClassifyPattern(candles))
}

func TestClassifyPattern_Doji(t *testing.T) {
	candles := []models.Candle{
		c(9, 9.6, 8.9, 9.5),
		c(10.0, 10.5, 9.6, 10.01), // open≈close
	}
	assert.Equal(t, PatternDoji, ClassifyPattern(candles))
}

// Свеча, удовлетворяющая всем условиям invertedHammer, одновременно
// удовлетворяет hammer — побеждает более ранний приоритет.
func TestClassifyPattern_PriorityHammerOverInvertedHammer(t *testing.T) {
	candles := []models.Candle{
		c(11, 11.1, 10.8, 10.9),
		c(10.5, 11.2, 9.7, 10.3),
	}
	assert.Equal(t, PatternHammer, ClassifyPattern(candles))
}

// Предикат bearishEngulfing совпадает с bullishHarami по множеству условий —
// классификатор всегда отдаёт более ранний bullishHarami.
func TestClassifyPattern_PriorityHaramiOverBearishEngulfing(t *testing.T) {
	candles := []models.Candle{
		c(12, 12.2, 9.8, 10),
		c(10.5, 11.2, 10.4, 11),
	}
	assert.Equal(t, PatternBullishHarami, ClassifyPattern(candles))
}

func TestClassifyPattern_MorningStarNeedsFourCandles(t *testing.T) {
	third := c(12, 12.1, 9.9, 10)
	prev := c(10.1, 10.35, 10.05, 10.3)
	cur := c(10.2, 11.6, 10.1, 11.5)

	// с четырьмя свечами — morningStar
	withFourth := []models.Candle{c(12.2, 12.6, 12.1, 12.4), third, prev, cur}
	assert.Equal(t, PatternMorningStar, ClassifyPattern(withFourth))

	// без четвёртой свечи проверка пропускается, матчится более поздний предикат
	withoutFourth := []models.Candle{third, prev, cur}
	assert.Equal(t, PatternShootingStar, ClassifyPattern(withoutFourth))
}

func TestClassifyPattern_ThreeBlackCrows(t *testing.T) {
	candles := []models.Candle{
		c(12.5, 12.6, 12.3, 12.4),
		c(12, 12.1, 10.9, 11),
		c(10.8, 10.9, 10.1, 10.2),
		c(10.0, 10.1, 9.4, 9.5),
	}
	assert.Equal(t, PatternThreeBlackCrows, ClassifyPattern(candles))
}

func TestClassifyPattern_NoPattern(t *testing.T) {
	candles := []models.Candle{
		c(10, 10.6, 9.9, 10.5),
		c(11.4, 11.5, 10.9, 11.0),
	}
	assert.Equal(t, PatternNone, ClassifyPattern(candles))
}

// Классификатор тотален: любой вход даёт ровно одну метку.
func TestClassifyPattern_AlwaysReturnsLabel(t *testing.T) {
	candles := []models.Candle{
		c(1, 2, 0.5, 1.5),
		c(1.5, 3, 1, 2.5),
		c(2.5, 4, 2, 3.5),
	}
	label := ClassifyPattern(candles)
	assert.NotEmpty(t, string(label))
}
