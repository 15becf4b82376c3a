package tracking

// IsNormal reports whether value lies within [low, high]. Without both
// bounds a reading counts as normal.
func IsNormal(value float64, low, high *float64) bool {
	if low == nil || high == nil {
		return true
	}
	return *low <= value && value <= *high
}

// BuildProgress groups measurements by metric. measurements must be ordered
// by date, oldest first; each metric's baseline comes from its first reading.
func BuildProgress(measurements []Measurement) map[string]MetricProgress {
	progress := make(map[string]MetricProgress)
	for _, m := range measurements {
		p, ok := progress[m.MetricName]
		if !ok {
			p = MetricProgress{
				Baseline:     m.BaselineValue,
				Measurements: []Point{},
			}
		}
		p.Measurements = append(p.Measurements, Point{
			Value: m.MetricValue,
			Date:  m.MeasurementDate,
			Notes: m.Notes,
		})
		progress[m.MetricName] = p
	}
	return progress
}

// BuildTrend projects biomarker readings onto a trend series.
func BuildTrend(name string, days int, readings []Biomarker) Trend {
	points := make([]TrendPoint, len(readings))
	for i, b := range readings {
		points[i] = TrendPoint{
			Value:    b.Value,
			Date:     b.MeasurementDate,
			IsNormal: b.IsNormal,
		}
	}
	return Trend{
		BiomarkerName: name,
		PeriodDays:    days,
		Measurements:  points,
	}
}
