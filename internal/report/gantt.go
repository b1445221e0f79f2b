package report

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Freeeeeet/roomplan/internal/model"
)

// Layout constants
const (
	chartWidth      = 1200
	rowHeight       = 64
	headerHeight    = 56
	footerHeight    = 36
	leftLabelsWidth = 140
	rightPadding    = 24
	barPaddingY     = 10.0
	barCornerRadius = 5.0
	hourPadding     = 1
)

// Color scheme
var (
	chartBgColor    = color.RGBA{245, 246, 248, 255}
	chartTextColor  = color.RGBA{80, 85, 90, 255}
	hourLabelColor  = color.RGBA{110, 115, 120, 255}
	hourLineColor   = color.NRGBA{200, 200, 200, 255}
	rowEvenColor    = color.NRGBA{240, 240, 240, 255}
	rowOddColor     = color.NRGBA{228, 228, 230, 255}
	barBorderColor  = color.RGBA{60, 64, 68, 255}
	barTextColor    = color.RGBA{20, 24, 28, 255}
	unassignedColor = color.RGBA{120, 40, 50, 255}

	// Bar palette, cycled per event in input order.
	barPalette = []color.RGBA{
		{133, 193, 85, 255},
		{255, 182, 193, 255},
		{121, 168, 222, 255},
		{240, 200, 110, 255},
		{188, 152, 210, 255},
		{126, 202, 192, 255},
		{235, 148, 108, 255},
	}
)

// hourRange is the hour axis span of the chart.
type hourRange struct {
	start int
	end   int
}

// Gantt renders the assignment as a PNG chart: one row per room, one colored
// bar per placed event with a centered label, and an hour axis spanning the
// schedule. Unassigned events are listed in the footer.
func Gantt(a *model.Assignment) ([]byte, error) {
	rooms := a.Rooms()
	hours := calculateHourRange(a)
	unassigned := a.Unassigned()

	height := headerHeight + rowHeight*max(len(rooms), 1) + footerHeight
	dc := gg.NewContext(chartWidth, height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(chartBgColor)
	dc.Clear()

	drawHeader(dc, a)
	drawRows(dc, rooms)
	drawHourAxis(dc, hours, len(rooms))
	drawBars(dc, a, rooms, hours)
	drawFooter(dc, unassigned, height)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

// calculateHourRange spans all placed events and falls back to the events'
// own windows when nothing was placed.
func calculateHourRange(a *model.Assignment) hourRange {
	minHour, maxHour := 0, 0
	first := true
	for _, it := range a.Items {
		if first || it.Start < minHour {
			minHour = it.Start
		}
		if first || it.End > maxHour {
			maxHour = it.End
		}
		first = false
	}
	if first {
		minHour, maxHour = 8, 18
	}
	return hourRange{start: minHour - hourPadding, end: maxHour + hourPadding}
}

func hourToX(hours hourRange, h float64) float64 {
	span := float64(hours.end - hours.start)
	plot := float64(chartWidth - leftLabelsWidth - rightPadding)
	return float64(leftLabelsWidth) + (h-float64(hours.start))/span*plot
}

func drawHeader(dc *gg.Context, a *model.Assignment) {
	dc.SetColor(chartTextColor)
	title := fmt.Sprintf("Event Schedule (%s strategy)", a.Strategy)
	dc.DrawStringAnchored(title, float64(chartWidth)/2, float64(headerHeight)/2, 0.5, 0.5)
}

func drawRows(dc *gg.Context, rooms []*model.Room) {
	for i, room := range rooms {
		top := float64(headerHeight + i*rowHeight)
		if i%2 == 0 {
			dc.SetColor(rowEvenColor)
		} else {
			dc.SetColor(rowOddColor)
		}
		dc.DrawRectangle(float64(leftLabelsWidth), top, float64(chartWidth-leftLabelsWidth-rightPadding), float64(rowHeight))
		dc.Fill()

		dc.SetColor(chartTextColor)
		dc.DrawStringAnchored(room.Name, float64(leftLabelsWidth)/2, top+float64(rowHeight)/2, 0.5, 0.5)
	}
}

func drawHourAxis(dc *gg.Context, hours hourRange, roomCount int) {
	bottom := float64(headerHeight + max(roomCount, 1)*rowHeight)
	for h := hours.start; h <= hours.end; h++ {
		x := hourToX(hours, float64(h))
		dc.SetColor(hourLineColor)
		dc.SetLineWidth(1)
		dc.DrawLine(x, float64(headerHeight), x, bottom)
		dc.Stroke()

		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(fmt.Sprintf("%dh", h), x, float64(headerHeight)-10, 0.5, 0.5)
	}
}

func drawBars(dc *gg.Context, a *model.Assignment, rooms []*model.Room, hours hourRange) {
	rowOf := make(map[*model.Room]int, len(rooms))
	for i, room := range rooms {
		rowOf[room] = i
	}
	for idx, it := range a.Items {
		if !it.Assigned() {
			continue
		}
		row := rowOf[it.Room]
		x := hourToX(hours, float64(it.Start))
		w := hourToX(hours, float64(it.End)) - x
		y := float64(headerHeight+row*rowHeight) + barPaddingY
		h := float64(rowHeight) - 2*barPaddingY

		dc.SetColor(barPalette[idx%len(barPalette)])
		dc.DrawRoundedRectangle(x, y, w, h, barCornerRadius)
		dc.Fill()

		dc.SetColor(barBorderColor)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(x, y, w, h, barCornerRadius)
		dc.Stroke()

		dc.SetColor(barTextColor)
		dc.DrawStringAnchored(it.Event.Name, x+w/2, y+h/2, 0.5, 0.5)
	}
}

func drawFooter(dc *gg.Context, unassigned []*model.Event, height int) {
	if len(unassigned) == 0 {
		return
	}
	names := ""
	for i, ev := range unassigned {
		if i > 0 {
			names += ", "
		}
		names += ev.Name
	}
	dc.SetColor(unassignedColor)
	dc.DrawStringAnchored("Unassigned: "+names, float64(leftLabelsWidth), float64(height)-float64(footerHeight)/2, 0, 0.5)
}
