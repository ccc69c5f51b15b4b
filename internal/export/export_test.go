package export

import (
	"errors"
	"math"
	"testing"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		usable  float64
		offsets []float64
	}{
		{"three pages", 2500, 1000, []float64{0, 1000, 2000}},
		{"exact fit", 2000, 1000, []float64{0, 1000}},
		{"shorter than a page", 300, 1000, []float64{0}},
		{"empty image still yields a page", 0, 1000, []float64{0}},
		{"negative height treated as empty", -5, 1000, []float64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := Paginate(tt.total, tt.usable)
			if err != nil {
				t.Fatalf("paginate: %v", err)
			}
			if len(pages) != len(tt.offsets) {
				t.Fatalf("expected %d pages, got %d", len(tt.offsets), len(pages))
			}
			for i, p := range pages {
				if p.Page != i+1 || p.Offset != tt.offsets[i] {
					t.Fatalf("page %d: got page=%d offset=%v, want offset %v", i, p.Page, p.Offset, tt.offsets[i])
				}
			}
		})
	}
}

func TestPaginateSliceHeights(t *testing.T) {
	pages, err := Paginate(2500, 1000)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	want := []float64{1000, 1000, 500}
	for i, p := range pages {
		if p.Height != want[i] {
			t.Fatalf("page %d height = %v, want %v", i+1, p.Height, want[i])
		}
	}
}

func TestPaginatePageCountIsCeil(t *testing.T) {
	for _, h := range []float64{1, 999, 1000, 1001, 4321, 10000} {
		pages, err := Paginate(h, 1000)
		if err != nil {
			t.Fatalf("paginate: %v", err)
		}
		if want := int(math.Ceil(h / 1000)); len(pages) != want {
			t.Fatalf("height %v: got %d pages, want %d", h, len(pages), want)
		}
	}
}

func TestPaginateRejectsNonPositivePageHeight(t *testing.T) {
	for _, usable := range []float64{0, -1} {
		if _, err := Paginate(100, usable); !errors.Is(err, ErrInvalidPageHeight) {
			t.Fatalf("usable=%v: expected ErrInvalidPageHeight, got %v", usable, err)
		}
	}
}

func TestPaginateRejectsNonFiniteInput(t *testing.T) {
	tests := []struct {
		name   string
		total  float64
		usable float64
		want   error
	}{
		{"nan height", math.NaN(), 1000, ErrInvalidHeight},
		{"infinite height", math.Inf(1), 1000, ErrInvalidHeight},
		{"negative infinite height", math.Inf(-1), 1000, ErrInvalidHeight},
		{"nan page height", 1000, math.NaN(), ErrInvalidPageHeight},
		{"infinite page height", 1000, math.Inf(1), ErrInvalidPageHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Paginate(tt.total, tt.usable); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPaginateCapsPageCount(t *testing.T) {
	pages, err := Paginate(MaxPages*1000, 1000)
	if err != nil {
		t.Fatalf("paginate at the limit: %v", err)
	}
	if len(pages) != MaxPages {
		t.Fatalf("expected %d pages, got %d", MaxPages, len(pages))
	}
	if _, err := Paginate(MaxPages*1000+1, 1000); !errors.Is(err, ErrTooManyPages) {
		t.Fatalf("expected ErrTooManyPages, got %v", err)
	}
	if _, err := Paginate(1, 1e-300); !errors.Is(err, ErrTooManyPages) {
		t.Fatalf("expected ErrTooManyPages for a tiny page height, got %v", err)
	}
}

func TestPlanA4RejectsHugeCanvas(t *testing.T) {
	if _, err := PlanA4(1, 1<<40); !errors.Is(err, ErrTooManyPages) {
		t.Fatalf("expected ErrTooManyPages, got %v", err)
	}
}

func TestPlanA4(t *testing.T) {
	// 1900x5540 px scales to 190x554 mm; 554 / 277 = 2 pages.
	plan, err := PlanA4(1900, 5540)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan.ImageWidth != 190 || plan.UsableHeight != 277 {
		t.Fatalf("unexpected geometry: %+v", plan)
	}
	if math.Abs(plan.ImageHeight-554) > 1e-9 {
		t.Fatalf("image height = %v, want 554", plan.ImageHeight)
	}
	if len(plan.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(plan.Pages))
	}
	if plan.Pages[0].Y != 10 || plan.Pages[1].Y != 10-277 {
		t.Fatalf("unexpected placements: %+v", plan.Pages)
	}
}

func TestPlanA4RejectsBadCanvas(t *testing.T) {
	if _, err := PlanA4(0, 100); !errors.Is(err, ErrInvalidCanvas) {
		t.Fatalf("expected ErrInvalidCanvas, got %v", err)
	}
	if _, err := PlanA4(100, -1); !errors.Is(err, ErrInvalidCanvas) {
		t.Fatalf("expected ErrInvalidCanvas, got %v", err)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("Smith  Wedding\tReception"); got != "BEO-Smith_Wedding_Reception.pdf" {
		t.Fatalf("unexpected file name %q", got)
	}
}
