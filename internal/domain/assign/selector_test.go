package assign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/autosqp-api/internal/domain/assign"
)

func TestRandomSelector_SiempreEnRango(t *testing.T) {
	s := assign.NewRandomSelector()
	for i := 0; i < 1000; i++ {
		idx := s.Pick(5)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 5)
	}
}

func TestRandomSelector_SinCandidatos(t *testing.T) {
	s := assign.NewRandomSelector()
	assert.Equal(t, -1, s.Pick(0), "sin candidatos debe devolver -1")
	assert.Equal(t, -1, s.Pick(-3))
}

// Con suficientes tiradas todos los índices deben salir al menos una vez:
// detecta un selector degenerado que siempre elige el mismo.
func TestRandomSelector_CubreTodosLosIndices(t *testing.T) {
	s := assign.NewRandomSelector()
	seen := make(map[int]int)
	for i := 0; i < 2000; i++ {
		seen[s.Pick(4)]++
	}
	for idx := 0; idx < 4; idx++ {
		assert.Greater(t, seen[idx], 0, "el índice %d nunca fue elegido", idx)
	}
}

func TestFixed_Determinista(t *testing.T) {
	s := assign.Fixed(2)
	assert.Equal(t, 2, s.Pick(5))
	assert.Equal(t, 2, s.Pick(5), "Fixed debe elegir siempre el mismo índice")
}

func TestFixed_AcotadoAlUltimo(t *testing.T) {
	s := assign.Fixed(10)
	assert.Equal(t, 2, s.Pick(3), "un índice fuera de rango se acota a n-1")
}

func TestFixed_SinCandidatos(t *testing.T) {
	assert.Equal(t, -1, assign.Fixed(0).Pick(0))
}
