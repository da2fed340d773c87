// Package assign define la estrategia de selección para la auto-asignación
// de leads entre los asesores disponibles. La estrategia es inyectable para
// que los tests usen una determinista; producción usa aleatoria uniforme.
package assign

import (
	"math/rand"
	"sync"
	"time"
)

// Selector elige un índice en [0, n). Pick con n <= 0 devuelve -1.
type Selector interface {
	Pick(n int) int
}

type randomSelector struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSelector crea el selector uniforme de producción.
func NewRandomSelector() Selector {
	return &randomSelector{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *randomSelector) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Fixed devuelve un selector determinista que siempre elige i (acotado a n-1).
// Pensado para tests.
func Fixed(i int) Selector { return fixedSelector(i) }

type fixedSelector int

func (f fixedSelector) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}
