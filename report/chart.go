package report

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/deckbound/kuhnsolver/cfr"
)

const (
	chartWidth  = 640
	chartHeight = 360
	chartMargin = 40
)

// Chart renders the aggressive-action (bet or call) frequency of every
// information set's average strategy as a PNG bar chart.
type Chart struct {
	W io.Writer
}

// Report implements Sink.
func (c Chart) Report(s *cfr.Summary) error {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	bottom := float64(chartHeight - chartMargin)
	plotW := float64(chartWidth - 2*chartMargin)
	plotH := float64(chartHeight - 2*chartMargin - 40)

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(
		fmt.Sprintf("bet/call frequency after %d iterations", s.Iters),
		chartWidth/2, 24, 0.5, 0.5)

	// Axes, with ticks at 0, 1/2 and 1.
	dc.SetLineWidth(1)
	dc.DrawLine(chartMargin, bottom, chartWidth-chartMargin, bottom)
	dc.DrawLine(chartMargin, bottom, chartMargin, bottom-plotH)
	dc.Stroke()
	for _, v := range []float64{0, 0.5, 1} {
		y := bottom - v*plotH
		dc.DrawLine(chartMargin-4, y, chartMargin, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", v), chartMargin-8, y, 1, 0.5)
	}

	if n := len(s.InfoSets); n > 0 {
		slot := plotW / float64(n)
		for i, is := range s.InfoSets {
			p := float64(is.AvgStrategy[1])
			x := chartMargin + float64(i)*slot + 4
			barW := slot - 8
			barH := p * plotH

			dc.SetRGB(0.25, 0.45, 0.85)
			dc.DrawRectangle(x, bottom-barH, barW, barH)
			dc.Fill()

			dc.SetRGB(0, 0, 0)
			dc.DrawStringAnchored(fmt.Sprintf("%.2f", p), x+barW/2, bottom-barH-4, 0.5, 0)
			dc.DrawStringAnchored(is.Key.String(), x+barW/2, bottom+6, 0.5, 1)
		}
	}

	return dc.EncodePNG(c.W)
}
