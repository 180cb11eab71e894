package source

import "testing"

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 9}, Span{File: 1, Start: 2, End: 9}},
		{"nested", Span{File: 1, Start: 0, End: 10}, Span{File: 1, Start: 3, End: 4}, Span{File: 1, Start: 0, End: 10}},
		{"reversed", Span{File: 1, Start: 8, End: 9}, Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 2, End: 9}},
		{"other file ignored", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{File: 3, Start: 10, End: 20}
	if !outer.Contains(Span{File: 3, Start: 10, End: 20}) {
		t.Error("span must contain itself")
	}
	if !outer.Contains(Span{File: 3, Start: 12, End: 15}) {
		t.Error("inner span not contained")
	}
	if outer.Contains(Span{File: 3, Start: 9, End: 15}) {
		t.Error("span starting before outer reported as contained")
	}
	if outer.Contains(Span{File: 4, Start: 12, End: 15}) {
		t.Error("span from another file reported as contained")
	}
}

func TestSpan_EmptyLenString(t *testing.T) {
	s := Span{File: 2, Start: 5, End: 5}
	if !s.Empty() || s.Len() != 0 {
		t.Fatalf("zero-length span: Empty=%v Len=%d", s.Empty(), s.Len())
	}
	s.End = 9
	if s.Empty() || s.Len() != 4 {
		t.Fatalf("span 5..9: Empty=%v Len=%d", s.Empty(), s.Len())
	}
	if got := s.String(); got != "2:5-9" {
		t.Fatalf("String() = %q", got)
	}
}
