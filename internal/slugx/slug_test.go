package slugx

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  About  Us  ", "about-us"},
		{"Release v2.0!", "release-v2-0"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"Café Posts", "caf-posts"},
	}
	for _, tc := range tests {
		if got := Make(tc.in); got != tc.want {
			t.Fatalf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValid(t *testing.T) {
	valid := []string{"about", "blog-post-1", "x"}
	for _, s := range valid {
		if !Valid(s) {
			t.Fatalf("Valid(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "About", "two--hyphens", "-leading", "trailing-", "with space"}
	for _, s := range invalid {
		if Valid(s) {
			t.Fatalf("Valid(%q) = true, want false", s)
		}
	}
}
