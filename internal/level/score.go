package level

import (
	"fmt"
	"log"
	"math"
)

// ScoreKeeper accumulates results across the levels of a course.
type ScoreKeeper struct {
	ParTime   float64
	ParDeaths int

	Deaths   int
	PlayTime float64

	CoinsCollected int
	TotalCoins     int
	StarsCollected int
	TotalStars     int

	Debug bool
}

func NewScoreKeeper(parTime float64, parDeaths int) *ScoreKeeper {
	return &ScoreKeeper{ParTime: parTime, ParDeaths: parDeaths}
}

func (s *ScoreKeeper) IncrementDeaths() {
	s.Deaths++
	s.debugf("Score: deaths increased to %d", s.Deaths)
}

func (s *ScoreKeeper) AddPlayTime(t float64) {
	s.PlayTime += t
	s.debugf("Score: play time increased by %.2f to %.2f", t, s.PlayTime)
}

func (s *ScoreKeeper) ReportCoins(collected, total int) {
	s.CoinsCollected += collected
	s.TotalCoins += total
	s.debugf("Score: %d / %d coins collected", collected, total)
}

func (s *ScoreKeeper) ReportStars(collected, total int) {
	s.StarsCollected += collected
	s.TotalStars += total
	s.debugf("Score: %d / %d stars collected", collected, total)
}

// FormatPlayTime renders the play time as m:ss.
func (s *ScoreKeeper) FormatPlayTime() string {
	minutes := int(math.Floor(s.PlayTime / 60))
	seconds := int(math.Floor(s.PlayTime - float64(minutes)*60))
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func (s *ScoreKeeper) TimeBonus() int {
	return int(math.Ceil(math.Max(s.ParTime-s.PlayTime, 0)))
}

func (s *ScoreKeeper) DeathsBonus() int {
	return 10 * max(s.ParDeaths-s.Deaths, 0)
}

func (s *ScoreKeeper) CoinBonus() int {
	return 5 * s.CoinsCollected
}

// StarsBonus is reported alongside the score but not part of it.
func (s *ScoreKeeper) StarsBonus() int {
	return 20 * s.StarsCollected
}

func (s *ScoreKeeper) Score() int {
	return s.TimeBonus() + s.DeathsBonus() + s.CoinBonus()
}

func (s *ScoreKeeper) debugf(format string, args ...any) {
	if s.Debug {
		log.Printf(format, args...)
	}
}
