package level

import "testing"

func TestScoreBonuses(t *testing.T) {
	s := NewScoreKeeper(60, 3)
	s.AddPlayTime(20.4)
	s.AddPlayTime(10)
	s.IncrementDeaths()
	s.ReportCoins(4, 5)
	s.ReportStars(1, 1)

	if got := s.TimeBonus(); got != 30 {
		t.Errorf("Expected time bonus ceil(29.6) = 30, got %d", got)
	}
	if got := s.DeathsBonus(); got != 20 {
		t.Errorf("Expected deaths bonus 20, got %d", got)
	}
	if got := s.CoinBonus(); got != 20 {
		t.Errorf("Expected coin bonus 20, got %d", got)
	}
	if got := s.StarsBonus(); got != 20 {
		t.Errorf("Expected stars bonus 20, got %d", got)
	}
	if got := s.Score(); got != 70 {
		t.Errorf("Expected score 70 without stars, got %d", got)
	}
	if s.TotalCoins != 5 || s.TotalStars != 1 {
		t.Errorf("Expected totals 5 and 1, got %d and %d", s.TotalCoins, s.TotalStars)
	}
}

func TestScoreBonusesNeverNegative(t *testing.T) {
	s := NewScoreKeeper(10, 1)
	s.AddPlayTime(100)
	for i := 0; i < 5; i++ {
		s.IncrementDeaths()
	}
	if s.TimeBonus() != 0 || s.DeathsBonus() != 0 {
		t.Errorf("Expected zero bonuses past par, got %d and %d", s.TimeBonus(), s.DeathsBonus())
	}
}

func TestFormatPlayTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{9.99, "0:09"},
		{65, "1:05"},
		{605.5, "10:05"},
	}
	for _, tt := range tests {
		s := NewScoreKeeper(0, 0)
		s.AddPlayTime(tt.seconds)
		if got := s.FormatPlayTime(); got != tt.want {
			t.Errorf("FormatPlayTime(%v): expected %s, got %s", tt.seconds, tt.want, got)
		}
	}
}
