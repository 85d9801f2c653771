package httpapi

import "testing"

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "httpapi.Handler.SelectPlayers", want: true},
		{in: "httpapi.Handler.RunScoreMatchJob", want: true},
		{in: "httpapi.RequireInternalJobToken", want: false},
		{in: "httpapi.RequestLogging", want: false},
		{in: "usecase.ScoringService.ScoreMatch", want: false},
	}

	for _, tt := range tests {
		if got := shouldCreateHTTPAPISpan(tt.in); got != tt.want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}
