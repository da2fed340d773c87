package sales

import (
	"context"

	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Una venta nunca persiste sin el cambio de
// estado del vehículo que la acompaña.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		vehicleRepo repository.VehicleRepository,
		leadRepo repository.LeadRepository,
	) error) error
}

// ReceiptGenerator renderiza el comprobante PDF de una venta aprobada.
type ReceiptGenerator interface {
	GenerateSaleReceipt(sale *entity.Sale, vehicle *entity.Vehicle, seller *entity.User, company *entity.Company) ([]byte, error)
}
