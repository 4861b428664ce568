package window

import "testing"

func TestRange(t *testing.T) {
	tests := []struct {
		name   string
		w      Window
		offset int
		want   Range
	}{
		{
			name: "Empty",
			w:    Window{Count: 0, RowHeight: 24, ViewportHeight: 240},
			want: Range{},
		},
		{
			name: "Top",
			w:    Window{Count: 1000, RowHeight: 24, Overscan: 5, ViewportHeight: 240},
			want: Range{Start: 0, End: 15, Offset: 0, TotalSize: 24000},
		},
		{
			name:   "Middle",
			w:      Window{Count: 1000, RowHeight: 24, Overscan: 5, ViewportHeight: 240},
			offset: 2400,
			want:   Range{Start: 95, End: 115, Offset: 2280, TotalSize: 24000},
		},
		{
			name:   "PartialRow",
			w:      Window{Count: 1000, RowHeight: 24, ViewportHeight: 240},
			offset: 12,
			want:   Range{Start: 0, End: 11, Offset: 0, TotalSize: 24000},
		},
		{
			name:   "ClampedPastEnd",
			w:      Window{Count: 100, RowHeight: 10, Overscan: 2, ViewportHeight: 100},
			offset: 5000,
			want:   Range{Start: 88, End: 100, Offset: 880, TotalSize: 1000},
		},
		{
			name:   "NegativeOffset",
			w:      Window{Count: 100, RowHeight: 10, ViewportHeight: 50},
			offset: -30,
			want:   Range{Start: 0, End: 5, Offset: 0, TotalSize: 1000},
		},
		{
			name: "ShortList",
			w:    Window{Count: 3, RowHeight: 24, Overscan: 20, ViewportHeight: 600},
			want: Range{Start: 0, End: 3, Offset: 0, TotalSize: 72},
		},
		{
			name: "DefaultRowHeight",
			w:    Window{Count: 10, ViewportHeight: 48},
			want: Range{Start: 0, End: 2, Offset: 0, TotalSize: 240},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Range(tt.offset); got != tt.want {
				t.Errorf("Range(%d) = %+v, want %+v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestScrollTo(t *testing.T) {
	w := Window{Count: 100, RowHeight: 10, ViewportHeight: 50}

	tests := []struct {
		name    string
		index   int
		current int
		want    int
	}{
		{"AlreadyVisible", 2, 0, 0},
		{"Above", 3, 200, 30},
		{"Below", 20, 0, 160},
		{"LastRow", 99, 0, 950},
		{"ClampedIndex", 500, 0, 950},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.ScrollTo(tt.index, tt.current); got != tt.want {
				t.Errorf("ScrollTo(%d, %d) = %d, want %d", tt.index, tt.current, got, tt.want)
			}
		})
	}
}
