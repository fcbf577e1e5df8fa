package pagination

import "testing"

func TestDefaults(t *testing.T) {
	var req PageRequest
	req.Defaults()
	if req.Page != 1 || req.Limit != 10 {
		t.Errorf("expected defaults 1/10, got %d/%d", req.Page, req.Limit)
	}

	req = PageRequest{Page: 3, Limit: 25}
	req.Defaults()
	if req.Page != 3 || req.Limit != 25 {
		t.Errorf("expected supplied values untouched, got %d/%d", req.Page, req.Limit)
	}
}

func TestOffset(t *testing.T) {
	req := PageRequest{Page: 3, Limit: 10}
	if got := req.Offset(); got != 20 {
		t.Errorf("expected offset 20, got %d", got)
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first_of_three", 1, 10, 25, 3, true, false},
		{"middle", 2, 10, 25, 3, true, true},
		{"last", 3, 10, 25, 3, false, true},
		{"exact_fit", 2, 10, 20, 2, false, true},
		{"empty", 1, 10, 0, 0, false, false},
		{"past_the_end", 5, 10, 25, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(tt.page, tt.limit, tt.total)
			if m.TotalPages != tt.totalPages {
				t.Errorf("expected %d total pages, got %d", tt.totalPages, m.TotalPages)
			}
			if m.HasNext != tt.hasNext || m.HasPrev != tt.hasPrev {
				t.Errorf("expected hasNext=%v hasPrev=%v, got %v %v",
					tt.hasNext, tt.hasPrev, m.HasNext, m.HasPrev)
			}
			if m.TotalEntries != tt.total || m.CurrentPage != tt.page {
				t.Errorf("unexpected meta: %+v", m)
			}
		})
	}
}

func TestNewPageNilItems(t *testing.T) {
	p := NewPage[int](nil, 1, 10, 0)
	if p.Entries == nil {
		t.Error("expected non-nil entries slice")
	}
	if len(p.Entries) != 0 {
		t.Errorf("expected empty entries, got %d", len(p.Entries))
	}
}
