package strategy

const (
	rsiPeriod   = 14
	stochPeriod = 14
	kPeriod     = 3

	oversoldBelow   = 10
	overboughtAbove = 90
)

// StochState — состояние осциллятора Stochastic RSI.
type StochState string

const (
	StochOversold   StochState = "Oversold"
	StochOverbought StochState = "Overbought"
	StochNeutral    StochState = "Neutral"
)

// MovingAverage — среднее последних period значений.
// ok=false если данных меньше периода; ошибок не бывает.
func MovingAverage(series []float64, period int) (float64, bool) {
	if period <= 0 || len(series) < period {
		return 0, false
	}
	sum := 0.0
	for _, v := range series[len(series)-period:] {
		sum += v
	}
	return sum / float64(period), true
}

// StochasticState classifies the final smoothed %K of a 14/14/3 Stochastic RSI:
// k < 10 — Oversold, k > 90 — Overbought, otherwise Neutral.
// ok=false when the series is too short to produce a single %K value.
func StochasticState(series []float64) (StochState, bool) {
	k, ok := lastStochRSIK(series)
	if !ok {
		return "", false
	}
	switch {
	case k < oversoldBelow:
		return StochOversold, true
	case k > overboughtAbove:
		return StochOverbought, true
	default:
		return StochNeutral, true
	}
}

// lastStochRSIK: RSI(14) по Уайлдеру -> стохастик по окну 14 -> SMA(3) -> последний %K.
func lastStochRSIK(series []float64) (float64, bool) {
	rsi := rsiSeries(series, rsiPeriod)
	if len(rsi) < stochPeriod {
		return 0, false
	}

	stoch := make([]float64, 0, len(rsi)-stochPeriod+1)
	for i := stochPeriod - 1; i < len(rsi); i++ {
		window := rsi[i-stochPeriod+1 : i+1]
		lo, hi := window[0], window[0]
		for _, v := range window {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi == lo {
			stoch = append(stoch, 0)
			continue
		}
		stoch = append(stoch, (rsi[i]-lo)/(hi-lo)*100)
	}

	if len(stoch) < kPeriod {
		return 0, false
	}
	sum := 0.0
	for _, v := range stoch[len(stoch)-kPeriod:] {
		sum += v
	}
	return sum / float64(kPeriod), true
}

// rsiSeries — серия RSI со сглаживанием Уайлдера. Пустая, если данных < period+1.
func rsiSeries(series []float64, period int) []float64 {
	if len(series) < period+1 {
		return nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		diff := series[i] - series[i-1]
		if diff > 0 {
			avgGain += diff
		} else {
			avgLoss -= diff
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	out := make([]float64, 0, len(series)-period)
	out = append(out, rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(series); i++ {
		diff := series[i] - series[i-1]
		gain, loss := 0.0, 0.0
		if diff > 0 {
			gain = diff
		} else {
			loss = -diff
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, rsiValue(avgGain, avgLoss))
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
