package strategy

const levelRepeatMin = 3

// DetectRepeatedLevels scans consecutive closing prices and emits every level
// that repeats at least three times in a row. Match is exact float equality,
// so only literal repeats count. A run still open at the end of the series is
// not emitted.
//
// Поддержка и сопротивление считаются одной и той же процедурой; вызывающая
// сторона решает, запускать её один раз или дважды.
func DetectRepeatedLevels(series []float64) []float64 {
	levels := []float64{}
	consecutive := 0
	haveLevel := false
	var level float64

	for i := 0; i+1 < len(series); i++ {
		if !haveLevel {
			level = series[i]
			haveLevel = true
			consecutive = 1
			continue
		}
		if series[i+1] == level {
			consecutive++
			continue
		}
		if consecutive >= levelRepeatMin {
			levels = append(levels, level)
		}
		haveLevel = false
		consecutive = 0
	}

	return levels
}
