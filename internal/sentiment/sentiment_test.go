package sentiment

import (
	"testing"

	"FanPulse/internal/model"
)

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		compound float64
		want     model.Sentiment
	}{
		{0.06, model.SentimentPositive},
		{0.05, model.SentimentPositive},
		{0.0, model.SentimentNeutral},
		{0.04, model.SentimentNeutral},
		{-0.04, model.SentimentNeutral},
		{-0.05, model.SentimentNegative},
		{-0.06, model.SentimentNegative},
	}
	for _, c := range cases {
		if got := Classify(c.compound); got != c.want {
			t.Fatalf("Classify(%v) = %s, want %s", c.compound, got, c.want)
		}
	}
}

func TestVaderScorerPolarity(t *testing.T) {
	s := NewVaderScorer()
	if got := s.Score("What a fantastic win, I love this team!"); got <= 0 {
		t.Fatalf("expected positive compound, got %v", got)
	}
	if got := s.Score("That was a terrible, awful performance."); got >= 0 {
		t.Fatalf("expected negative compound, got %v", got)
	}
}
