package middleware

import "testing"

func TestBearerTokenFromHeader(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"case insensitive scheme", "bearer token123", "token123", true},
		{"missing", "", "", false},
		{"no scheme", "abc.def.ghi", "", false},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", false},
		{"empty token", "Bearer   ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := bearerTokenFromHeader(tc.header)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("bearerTokenFromHeader(%q) = (%q, %v), want (%q, %v)", tc.header, got, ok, tc.want, tc.ok)
			}
		})
	}
}
