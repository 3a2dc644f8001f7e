package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceSeriesAppend(t *testing.T) {
	var s ResourceSeries

	assert.Equal(t, int64(0), s.Latest())
	assert.Equal(t, int64(0), s.Maximum())
	assert.Equal(t, TrendStable, s.Trend())

	s.Append(10)
	assert.Equal(t, int64(10), s.Latest())
	assert.Equal(t, int64(10), s.Maximum())

	s.Append(4)
	assert.Equal(t, int64(4), s.Latest())
	assert.Equal(t, int64(10), s.Maximum(), "maximum keeps the historical high")

	s.Append(25)
	assert.Equal(t, int64(25), s.Latest())
	assert.Equal(t, int64(25), s.Maximum())

	assert.Equal(t, []int64{10, 4, 25}, s.Values())
	assert.Equal(t, 3, s.Len())
}

func TestResourceSeriesTrend(t *testing.T) {
	tests := []struct {
		name    string
		appends []int64
		want    Trend
	}{
		{"first append equal to zero baseline", []int64{0}, TrendStable},
		{"first append above zero baseline", []int64{5}, TrendIncreasing},
		{"first append below zero baseline", []int64{-3}, TrendDecreasing},
		{"repeated value", []int64{7, 7}, TrendStable},
		{"rising value", []int64{7, 9}, TrendIncreasing},
		{"falling value", []int64{9, 7}, TrendDecreasing},
		{"fall after rise", []int64{3, 9, 8}, TrendDecreasing},
		{"rise back below maximum", []int64{9, 2, 5}, TrendIncreasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ResourceSeries
			for _, v := range tt.appends {
				s.Append(v)
			}
			assert.Equal(t, tt.want, s.Trend())
		})
	}
}

func TestResourceSeriesMaximumAndLatestInvariant(t *testing.T) {
	samples := []int64{3, 11, 11, 2, 7, 0, 6}

	var s ResourceSeries
	max := int64(0)
	for _, v := range samples {
		s.Append(v)
		if v > max {
			max = v
		}
		assert.Equal(t, v, s.Latest())
		assert.Equal(t, max, s.Maximum())
	}

	assert.Equal(t, samples, s.Values())
}

func TestResourceSeriesValuesIsACopy(t *testing.T) {
	var s ResourceSeries
	s.Append(1)
	s.Append(2)

	got := s.Values()
	got[0] = 99

	assert.Equal(t, []int64{1, 2}, s.Values())
}

func TestTrendString(t *testing.T) {
	assert.Equal(t, "stable", TrendStable.String())
	assert.Equal(t, "increasing", TrendIncreasing.String())
	assert.Equal(t, "decreasing", TrendDecreasing.String())
}
