package dialogue

import "testing"

func TestQueryAllowed(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"plain travel ask", "mau ke jogja 2 hari", true},
		{"off-domain", "gimana prospek saham minggu ini", false},
		{"off-domain uppercase", "Bahas POLITIK dong", false},
		{"off-domain rescued by travel context", "liburan sambil belajar politik lokal boleh?", true},
		{"ambiguous passes through", "aku bingung", true},
		{"budget talk is on-domain", "budget 5 juta cukup nggak?", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := queryAllowed(tt.message); got != tt.want {
				t.Errorf("queryAllowed(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}
