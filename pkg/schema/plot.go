package schema

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// Plot dimensions and colors.
const (
	PlotWidth = 1200
	plotHeight = 220
	barColor  = "#87CEEB"
	axisColor = "#333333"
)

const (
	marginLeft  = 70.0
	marginRight = 20.0
	marginTop   = 40.0
	labelGap    = 8.0
)

// Plot draws report as a PNG bar chart with one bar per class, in report
// order, and writes it to w. Class names are drawn under the bars at 45
// degrees; the image grows downward to fit the longest name.
func Plot(w io.Writer, report *Report) error {
	measure := gg.NewContext(1, 1)
	longest := 0.0
	for _, c := range report.Classes {
		lw, _ := measure.MeasureString(c.Name)
		longest = max(longest, lw)
	}
	bottom := longest*math.Sin(math.Pi/4) + 50
	height := int(marginTop + plotHeight + bottom)

	dc := gg.NewContext(PlotWidth, height)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	dc.SetHexColor(axisColor)
	dc.DrawStringAnchored("Number of Properties per Class (including inheritance)", PlotWidth/2, marginTop/2, 0.5, 0.5)

	originX, originY := marginLeft, marginTop+plotHeight
	plotW := PlotWidth - marginLeft - marginRight

	peak := 0
	for _, c := range report.Classes {
		peak = max(peak, c.Properties)
	}
	if n := len(report.Classes); n > 0 && peak > 0 {
		slot := plotW / float64(n)
		barW := math.Max(1, math.Floor(slot*0.8))
		dc.SetHexColor(barColor)
		for i, c := range report.Classes {
			h := math.Round(float64(c.Properties) / float64(peak) * plotHeight)
			x := math.Round(originX + float64(i)*slot + (slot-barW)/2)
			dc.DrawRectangle(x, originY-h, barW, h)
			dc.Fill()
		}
		dc.SetHexColor(axisColor)
		for i, c := range report.Classes {
			cx := originX + (float64(i)+0.5)*slot
			dc.Push()
			dc.RotateAbout(gg.Radians(-45), cx, originY+labelGap)
			dc.DrawStringAnchored(c.Name, cx, originY+labelGap, 1, 0.5)
			dc.Pop()
		}
		dc.DrawStringAnchored(fmt.Sprint(peak), originX-labelGap, marginTop, 1, 0.5)
	}

	dc.SetHexColor(axisColor)
	dc.SetLineWidth(1)
	dc.DrawLine(originX, marginTop, originX, originY)
	dc.DrawLine(originX, originY, originX+plotW, originY)
	dc.Stroke()
	dc.DrawStringAnchored("0", originX-labelGap, originY, 1, 0.5)
	dc.DrawStringAnchored("Class Name", originX+plotW/2, float64(height)-12, 0.5, 0.5)

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 20, originY-plotHeight/2)
	dc.DrawStringAnchored("Number of Properties", 20, originY-plotHeight/2, 0.5, 0.5)
	dc.Pop()

	return dc.EncodePNG(w)
}
