package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", " debug ")
	c := New().Prefix("LOG_")
	if got := c.Get("LEVEL", "info"); got != "debug" {
		t.Fatalf("Get = %q", got)
	}
	if got := c.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("Get default = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("LOG_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"YES", false, true},
		{"1", false, true},
		{"no", true, false},
		{"", true, true},
	}
	for _, tc := range cases {
		t.Setenv("LOG_CALLER", tc.val)
		if got := c.GetBool("CALLER", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q,%v) = %v", tc.val, tc.def, got)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	cases := map[string]int{"5": 5, " 7 ": 7, "-3": 9, "x": 9, "": 9}
	for val, want := range cases {
		t.Setenv("LOG_SAMPLE_EVERY", val)
		if got := c.GetInt("SAMPLE_EVERY", 9); got != want {
			t.Fatalf("GetInt(%q) = %d, want %d", val, got, want)
		}
	}
}
