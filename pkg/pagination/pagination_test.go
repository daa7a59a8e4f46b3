package pagination

import "testing"

func TestValidateNormalizes(t *testing.T) {
	tests := []struct {
		name        string
		in          Params
		wantPage    int
		wantPerPage int
	}{
		{"zero values", Params{}, 1, 20},
		{"negative page", Params{Page: -3, PerPage: 10}, 1, 10},
		{"per page above cap", Params{Page: 2, PerPage: 500}, 2, 100},
		{"valid passes through", Params{Page: 4, PerPage: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			if tt.in.Page != tt.wantPage || tt.in.PerPage != tt.wantPerPage {
				t.Errorf("got page=%d per_page=%d, want page=%d per_page=%d",
					tt.in.Page, tt.in.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}
}

func TestNewPaginatedResultTotalPages(t *testing.T) {
	params := &Params{Page: 1, PerPage: 20}

	r := NewPaginatedResult([]int{1, 2, 3}, params, 41)
	if r.Pagination.TotalPages != 3 {
		t.Errorf("expected 3 pages for 41 items, got %d", r.Pagination.TotalPages)
	}

	r = NewPaginatedResult([]int{1}, params, 40)
	if r.Pagination.TotalPages != 2 {
		t.Errorf("expected 2 pages for 40 items, got %d", r.Pagination.TotalPages)
	}
}

func TestNewPaginatedResultNilData(t *testing.T) {
	r := NewPaginatedResult[int](nil, &Params{Page: 1, PerPage: 20}, 0)
	if r.Data == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if len(r.Data) != 0 {
		t.Errorf("expected no items, got %d", len(r.Data))
	}
}
