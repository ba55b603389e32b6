package common

import "testing"

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		template string
		index    int
		want     string
	}{
		{"https://site.com/p.{n}/index.html", 1, "https://site.com/p.1/index.html"},
		{"https://site.com/p.{n}/index.html", 42, "https://site.com/p.42/index.html"},
		{"https://site.com/page?n={n}", 7, "https://site.com/page?n=7"},
	}

	for _, tt := range tests {
		got := ExpandTemplate(tt.template, tt.index)
		if got != tt.want {
			t.Errorf("ExpandTemplate(%q, %d) = %q, want %q", tt.template, tt.index, got, tt.want)
		}
	}
}

func TestFilenameForIndex(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{1, "page_0001.html"},
		{42, "page_0042.html"},
		{9999, "page_9999.html"},
		{12345, "page_12345.html"},
	}

	for _, tt := range tests {
		got := FilenameForIndex(tt.index)
		if got != tt.want {
			t.Errorf("FilenameForIndex(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestFilenameForIndex_Injective(t *testing.T) {
	seen := make(map[string]int)
	for i := 1; i <= 20000; i++ {
		name := FilenameForIndex(i)
		if prev, ok := seen[name]; ok {
			t.Fatalf("FilenameForIndex collision: indices %d and %d both map to %q", prev, i, name)
		}
		seen[name] = i
	}
}

func TestIndexForFilename(t *testing.T) {
	for _, i := range []int{1, 42, 9999, 12345} {
		idx, ok := IndexForFilename(FilenameForIndex(i))
		if !ok {
			t.Fatalf("IndexForFilename(%q) not recognized", FilenameForIndex(i))
		}
		if idx != i {
			t.Errorf("IndexForFilename round trip = %d, want %d", idx, i)
		}
	}

	for _, bad := range []string{"page_1.html", "page_0001.txt", "other.html", ""} {
		if _, ok := IndexForFilename(bad); ok {
			t.Errorf("IndexForFilename(%q) = ok, want not recognized", bad)
		}
	}
}
