package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/patients?"+query, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContextDefaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Page != 1 || p.PerPage != DefaultPerPage {
		t.Errorf("params = %+v", p)
	}
}

func TestFromContextClampsPerPage(t *testing.T) {
	p := paramsFor(t, "page=3&per_page=5000")
	if p.Page != 3 || p.PerPage != MaxPerPage {
		t.Errorf("params = %+v", p)
	}
}

func TestFromContextRejectsNonPositive(t *testing.T) {
	p := paramsFor(t, "page=-1&per_page=0")
	if p.Page != 1 || p.PerPage != DefaultPerPage {
		t.Errorf("params = %+v", p)
	}
}

func TestBounds(t *testing.T) {
	cases := []struct {
		name           string
		p              Params
		length, lo, hi int
	}{
		{"first page", Params{Page: 1, PerPage: 10}, 25, 0, 10},
		{"partial last page", Params{Page: 3, PerPage: 10}, 25, 20, 25},
		{"past the end", Params{Page: 9, PerPage: 10}, 25, 25, 25},
		{"empty collection", Params{Page: 1, PerPage: 10}, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := tc.p.Bounds(tc.length)
			if lo != tc.lo || hi != tc.hi {
				t.Errorf("Bounds(%d) = %d,%d want %d,%d", tc.length, lo, hi, tc.lo, tc.hi)
			}
		})
	}
}

func TestTotalPagesRoundsUp(t *testing.T) {
	r := NewResponse(nil, 25, Params{Page: 1, PerPage: 10})
	if r.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", r.TotalPages)
	}
	if NewResponse(nil, 0, Params{Page: 1, PerPage: 10}).TotalPages != 0 {
		t.Error("empty collection must have 0 pages")
	}
}
