package httpapi

import "testing"

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "healthz", path: "/healthz", want: false},
		{name: "health", path: "/health", want: false},
		{name: "readyz", path: "/readyz", want: false},
		{name: "livez", path: "/livez", want: false},
		{name: "healthz with spaces", path: "  /healthz  ", want: false},
		{name: "stats route", path: "/v1/clubs/brookweald-cc/stats/seasons/2026", want: true},
		{name: "import route", path: "/v1/clubs/brookweald-cc/imports/seasons/2026", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldTraceRequest(tt.path); got != tt.want {
				t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
			}
		})
	}
}
