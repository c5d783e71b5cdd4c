// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// RandomSource is the only randomness the flight model consumes.
type RandomSource interface {
	Float64() float64
}

// PRNGService — обёртка над стандартным генератором, чтобы весь полёт
// можно было воспроизвести по сиду.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создаёт сервис с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 возвращает случайное число в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Signed maps a draw from src onto [-1, 1).
func Signed(src RandomSource) float64 {
	return (src.Float64() - 0.5) * 2
}

// Centered maps a draw from src onto [-0.5, 0.5).
func Centered(src RandomSource) float64 {
	return src.Float64() - 0.5
}

// SequenceSource replays fixed draws in order and wraps around.
// Tests use it to drive probability gates deterministically.
type SequenceSource struct {
	values []float64
	next   int
}

// NewSequenceSource returns a source that yields values cyclically.
// With no values every draw is 0.5.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0.5
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws reports how many values were consumed.
func (s *SequenceSource) Draws() int {
	return s.next
}
