package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
)

// El reparto de la comisión usa división entera truncada y el residuo queda
// del lado de la utilidad: comisión + utilidad == precio, siempre.
func TestSplitCommission_CasoTipico(t *testing.T) {
	commission, net := entity.SplitCommission(50_000_000, 5)

	assert.Equal(t, int64(2_500_000), commission, "el 5 por ciento de 50.000.000 son 2.500.000")
	assert.Equal(t, int64(47_500_000), net)
	assert.Equal(t, int64(50_000_000), commission+net, "comisión + utilidad debe dar el precio exacto")
}

func TestSplitCommission_ResiduoQuedaEnUtilidad(t *testing.T) {
	// 33 * 7 / 100 = 2 (truncado); la utilidad absorbe el residuo.
	commission, net := entity.SplitCommission(33, 7)

	assert.Equal(t, int64(2), commission)
	assert.Equal(t, int64(31), net)
	assert.Equal(t, int64(33), commission+net)
}

func TestSplitCommission_PorcentajeCero(t *testing.T) {
	commission, net := entity.SplitCommission(1_000_000, 0)

	assert.Equal(t, int64(0), commission)
	assert.Equal(t, int64(1_000_000), net)
}

func TestSplitCommission_CienPorCiento(t *testing.T) {
	commission, net := entity.SplitCommission(1_000_000, 100)

	assert.Equal(t, int64(1_000_000), commission)
	assert.Equal(t, int64(0), net)
}

// La suma debe cerrar exacta para cualquier combinación razonable.
func TestSplitCommission_SumaSiempreCierra(t *testing.T) {
	prices := []int64{1, 99, 101, 12_345_678, 50_000_000, 999_999_999}
	for _, price := range prices {
		for pct := int64(0); pct <= 100; pct += 7 {
			commission, net := entity.SplitCommission(price, pct)
			assert.Equal(t, price, commission+net,
				"precio %d con %d%% debe repartirse sin perder pesos", price, pct)
		}
	}
}
