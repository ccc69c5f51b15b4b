// Package export plans how a rendered BEO image is tiled across fixed-size
// PDF pages. Rasterising the view and writing the PDF happen elsewhere.
package export

import (
	"errors"
	"math"
	"regexp"
)

// A4 portrait geometry in millimetres.
const (
	A4WidthMM       = 210.0
	A4HeightMM      = 297.0
	DefaultMarginMM = 10.0
)

// MaxPages bounds a single plan.
const MaxPages = 1000

var (
	ErrInvalidPageHeight = errors.New("export: usable page height must be positive")
	ErrInvalidCanvas     = errors.New("export: canvas width must be positive and height non-negative")
	ErrInvalidHeight     = errors.New("export: image height must be a finite number")
	ErrTooManyPages      = errors.New("export: image needs more pages than allowed")
)

// Slice is the part of the source image shown on one page.
type Slice struct {
	Page   int     `json:"page"`
	Offset float64 `json:"offset"`
	Height float64 `json:"height"`
	// Y is where the top of the full image is drawn on this page.
	Y float64 `json:"y"`
}

// Plan is the page layout for one export.
type Plan struct {
	FileName     string  `json:"fileName,omitempty"`
	PageWidth    float64 `json:"pageWidth"`
	PageHeight   float64 `json:"pageHeight"`
	Margin       float64 `json:"margin"`
	ImageWidth   float64 `json:"imageWidth"`
	ImageHeight  float64 `json:"imageHeight"`
	UsableHeight float64 `json:"usableHeight"`
	Pages        []Slice `json:"pages"`
}

// Paginate splits an image of the given height into page slices of the
// usable page height. Offsets advance by usable while image remains, so a
// 2500-high image on 1000-high pages yields offsets 0, 1000 and 2000.
// There is always at least one page and never more than MaxPages.
func Paginate(total, usable float64) ([]Slice, error) {
	if math.IsNaN(usable) || math.IsInf(usable, 0) || usable <= 0 {
		return nil, ErrInvalidPageHeight
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, ErrInvalidHeight
	}
	if total < 0 {
		total = 0
	}

	n := max(int(math.Min(math.Ceil(total/usable), MaxPages+1)), 1)
	if n > MaxPages {
		return nil, ErrTooManyPages
	}

	pages := make([]Slice, n)
	for i := range pages {
		offset := float64(i) * usable
		pages[i] = Slice{
			Page:   i + 1,
			Offset: offset,
			Height: min(usable, max(total-offset, 0)),
			Y:      -offset,
		}
	}
	return pages, nil
}

// PlanA4 scales a canvas of the given pixel size to the printable width of
// an A4 page with default margins and paginates it.
func PlanA4(canvasWidth, canvasHeight int) (Plan, error) {
	if canvasWidth <= 0 || canvasHeight < 0 {
		return Plan{}, ErrInvalidCanvas
	}

	p := Plan{
		PageWidth:  A4WidthMM,
		PageHeight: A4HeightMM,
		Margin:     DefaultMarginMM,
	}
	p.ImageWidth = p.PageWidth - 2*p.Margin
	p.ImageHeight = float64(canvasHeight) * p.ImageWidth / float64(canvasWidth)
	p.UsableHeight = p.PageHeight - 2*p.Margin

	pages, err := Paginate(p.ImageHeight, p.UsableHeight)
	if err != nil {
		return Plan{}, err
	}
	for i := range pages {
		pages[i].Y += p.Margin
	}
	p.Pages = pages
	return p, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName returns the download name for an event's BEO.
func FileName(eventName string) string {
	return "BEO-" + whitespace.ReplaceAllString(eventName, "_") + ".pdf"
}
