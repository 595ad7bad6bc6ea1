package pagination

import "testing"

func TestValidateClampsParams(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	if p.Page != 1 || p.PerPage != 15 {
		t.Errorf("got page %d per_page %d, want 1/15", p.Page, p.PerPage)
	}

	p = &PaginationParams{Page: 2, PerPage: 500}
	p.Validate()
	if p.PerPage != 100 {
		t.Errorf("PerPage = %d, want 100", p.PerPage)
	}
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 15}
	if got := p.Offset(); got != 30 {
		t.Errorf("Offset() = %d, want 30", got)
	}
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 35)
	if pag.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", pag.TotalPages)
	}
	if !pag.HasNext || !pag.HasPrev {
		t.Errorf("HasNext = %v HasPrev = %v, want true/true", pag.HasNext, pag.HasPrev)
	}

	last := NewPagination(4, 10, 35)
	if last.HasNext {
		t.Error("last page must not have next")
	}
}
