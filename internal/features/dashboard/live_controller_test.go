package dashboard

import (
	"testing"
	"time"
)

func TestStreamInterval(t *testing.T) {
	tests := []struct {
		query string
		want  time.Duration
	}{
		{"", defaultRefreshInterval},
		{"bogus", defaultRefreshInterval},
		{"30", 30 * time.Second},
		{"5", 5 * time.Second},
		{"1", time.Second},
		{"0.2", time.Second},
		{"0", time.Second},
		{"-3", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := streamInterval(tt.query); got != tt.want {
				t.Errorf("streamInterval(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
