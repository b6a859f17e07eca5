// Package layout computes the fixed pixel geometry of the dashboard canvas.
//
// Every region is derived from the 8px grid unit and the 1600×900 canvas.
// Positions are pure functions of these constants and never depend on config
// content; the same geometry is produced on every call.
package layout

import "image"

// Grid and canvas constants. All region formulas below derive from these.
const (
	// GridUnit is the base spacing unit in pixels.
	GridUnit = 8

	// CanvasWidth and CanvasHeight fix the output raster size.
	CanvasWidth  = 1600
	CanvasHeight = 900
)

// Card and panel styling constants.
const (
	// CardMargin is the gap between the canvas edge and the content card.
	CardMargin = 4 * GridUnit

	// CardRadius is the corner radius of the content card.
	CardRadius = 2 * GridUnit

	// PanelPadding is the inset of the chart inside its surface panel.
	PanelPadding = 2 * GridUnit

	// PanelRadius is the corner radius of the chart surface panel.
	PanelRadius = 12

	// Shadow parameters for the card drop shadow.
	ShadowBlur    = 16
	ShadowOffsetX = 0
	ShadowOffsetY = 4
	ShadowAlpha   = 38
)

// Logo constraints.
const (
	// LogoMaxWidth is the horizontal budget reserved in the top-right corner.
	LogoMaxWidth = 200

	// LogoMaxHeight caps the logo at 15% of the canvas height.
	LogoMaxHeight = CanvasHeight * 3 / 20
)

// Positions holds the named pixel regions of the dashboard.
// All values are absolute canvas coordinates.
type Positions struct {
	Title    image.Point     // top-left anchor of the title text
	Subtitle image.Point     // top-left anchor of the subtitle text
	Logo     image.Point     // top-left corner of the logo bounding box
	Graph    image.Rectangle // chart region (the raster handed to renderers)
	Panel    image.Rectangle // surface panel behind the chart
	Card     image.Rectangle // content card
	FooterY  int             // top anchor of the footer text; x is centered from measured width
}

// Compute derives all dashboard regions from the grid constants.
func Compute() Positions {
	graph := image.Rect(
		8*GridUnit,
		32*GridUnit,
		CanvasWidth-8*GridUnit,
		CanvasHeight-32*GridUnit,
	)

	return Positions{
		Title:    image.Pt(8*GridUnit, 8*GridUnit),
		Subtitle: image.Pt(8*GridUnit, 16*GridUnit),
		Logo:     image.Pt(CanvasWidth-8*GridUnit-LogoMaxWidth, 8*GridUnit),
		Graph:    graph,
		Panel:    graph.Inset(-PanelPadding),
		Card: image.Rect(
			CardMargin,
			CardMargin,
			CanvasWidth-CardMargin,
			CanvasHeight-CardMargin,
		),
		FooterY: CanvasHeight - 12*GridUnit,
	}
}
