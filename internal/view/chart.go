package view

const (
	chartWidth    = 200.0
	chartHeight   = 100.0
	chartBaseline = 82.0
	chartTop      = 14.0
	barWidth      = 56.0
	barGap        = 88.0
	barLeft       = 28.0
)

// SponsoredPassedChart lays out the two-bar Sponsored/Passed chart shown on
// representative cards. The tallest bar reaches chartTop; zero values draw a
// flat bar on the baseline.
func SponsoredPassedChart(sponsored, passed int) BarChart {
	return barChart([]Bar{
		{Label: "Sponsored", Value: sponsored, Fill: "#007bff", Stroke: "#0056b3"},
		{Label: "Passed", Value: passed, Fill: "#28a745", Stroke: "#1e7e34"},
	})
}

func barChart(bars []Bar) BarChart {
	maxValue := 0
	for _, b := range bars {
		if b.Value > maxValue {
			maxValue = b.Value
		}
	}

	span := chartBaseline - chartTop
	for i := range bars {
		h := 0.0
		if maxValue > 0 && bars[i].Value > 0 {
			h = float64(bars[i].Value) / float64(maxValue) * span
		}
		bars[i].X = barLeft + float64(i)*barGap
		bars[i].W = barWidth
		bars[i].H = h
		bars[i].Y = chartBaseline - h
		bars[i].LabelX = bars[i].X + barWidth/2
		bars[i].LabelY = chartHeight - 4
	}

	return BarChart{Width: chartWidth, Height: chartHeight, Bars: bars}
}
