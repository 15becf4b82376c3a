package tracking_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/longevity/internal/tracking"
)

func ptr[T any](v T) *T { return &v }

func TestIsNormal(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		low, high *float64
		want      bool
	}{
		{"within", 5, ptr(1.0), ptr(10.0), true},
		{"at low bound", 1, ptr(1.0), ptr(10.0), true},
		{"at high bound", 10, ptr(1.0), ptr(10.0), true},
		{"below", 0.5, ptr(1.0), ptr(10.0), false},
		{"above", 11, ptr(1.0), ptr(10.0), false},
		{"zero low bound is present", -1, ptr(0.0), ptr(10.0), false},
		{"only low bound", -100, ptr(1.0), nil, true},
		{"only high bound", 100, nil, ptr(10.0), true},
		{"no bounds", 42, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tracking.IsNormal(tt.value, tt.low, tt.high); got != tt.want {
				t.Errorf("IsNormal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildProgress(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 1, d, 8, 0, 0, 0, time.UTC)
	}

	ms := []tracking.Measurement{
		{MetricName: "weight", MetricValue: 82, MeasurementDate: day(1), BaselineValue: ptr(84.0)},
		{MetricName: "hrv", MetricValue: 41, MeasurementDate: day(2)},
		{MetricName: "weight", MetricValue: 81, MeasurementDate: day(8), BaselineValue: ptr(99.0)},
		{MetricName: "weight", MetricValue: 80, MeasurementDate: day(15), Notes: ptr("fasted")},
	}

	progress := tracking.BuildProgress(ms)

	if len(progress) != 2 {
		t.Fatalf("metrics = %d, want 2", len(progress))
	}

	weight := progress["weight"]
	if weight.Baseline == nil || *weight.Baseline != 84 {
		t.Errorf("weight baseline = %v, want 84", weight.Baseline)
	}
	if len(weight.Measurements) != 3 {
		t.Fatalf("weight points = %d, want 3", len(weight.Measurements))
	}
	for i, want := range []float64{82, 81, 80} {
		if weight.Measurements[i].Value != want {
			t.Errorf("weight[%d] = %v, want %v", i, weight.Measurements[i].Value, want)
		}
	}
	if weight.Measurements[2].Notes == nil || *weight.Measurements[2].Notes != "fasted" {
		t.Errorf("notes not carried")
	}

	if hrv := progress["hrv"]; hrv.Baseline != nil || len(hrv.Measurements) != 1 {
		t.Errorf("hrv = %+v", hrv)
	}
}

func TestBuildProgressEmpty(t *testing.T) {
	if got := tracking.BuildProgress(nil); got == nil || len(got) != 0 {
		t.Errorf("BuildProgress(nil) = %v, want empty map", got)
	}
}

func TestBuildTrend(t *testing.T) {
	readings := []tracking.Biomarker{
		{Value: 120, IsNormal: false},
		{Value: 95, IsNormal: true},
	}

	trend := tracking.BuildTrend("ldl", 30, readings)

	if trend.BiomarkerName != "ldl" || trend.PeriodDays != 30 {
		t.Errorf("trend header = %q/%d", trend.BiomarkerName, trend.PeriodDays)
	}
	if len(trend.Measurements) != 2 || trend.Measurements[1].Value != 95 || !trend.Measurements[1].IsNormal {
		t.Errorf("measurements = %+v", trend.Measurements)
	}

	if empty := tracking.BuildTrend("ldl", 7, nil); empty.Measurements == nil {
		t.Error("empty trend measurements should be [] not null")
	}
}
