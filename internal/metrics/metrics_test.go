package metrics

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/todo", "/todo"},
		{"/todo/123", "/todo/{id}"},
		{"/todo/123/done", "/todo/{id}/done"},
		{"/auth/login", "/auth/login"},
		{"/", "/"},
	}
	for _, c := range cases {
		if got := NormalizePath(c.in); got != c.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
