package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
	"github.com/tu-usuario/autosqp-api/pkg/textutil"
)

// SaleUseCase casos de uso de ventas: registro con snapshot de comisión,
// aprobación, listado con alcance por rol y comprobante PDF.
type SaleUseCase struct {
	saleRepo    repository.SaleRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	txRunner    TxRunner
	receipts    ReceiptGenerator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	saleRepo repository.SaleRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	txRunner TxRunner,
	receipts ReceiptGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		saleRepo:    saleRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		txRunner:    txRunner,
		receipts:    receipts,
	}
}

// Create registra una venta pendiente: inserta la venta, reserva el vehículo
// y (si hay lead) lo marca vendido, todo en la misma transacción. El intento
// de un caller sin privilegio de fijar otro vendedor se ignora en silencio.
func (uc *SaleUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.SalePrice <= 0 {
		return nil, domain.ErrInvalidInput
	}
	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	if !id.CanAccessCompany(vehicle.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if vehicle.Status == entity.VehicleStatusSold {
		return nil, domain.ErrConflict
	}

	sellerID := id.UserID
	if in.SellerID != "" && in.SellerID != id.UserID && id.Role.Capabilities().CanOverrideSeller {
		target, err := uc.userRepo.GetByID(in.SellerID)
		if err != nil {
			return nil, err
		}
		if target == nil || !id.CanAccessCompany(target.CompanyID) {
			return nil, domain.ErrInvalidInput
		}
		sellerID = in.SellerID
	}

	seller, err := uc.userRepo.GetByID(sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrNotFound
	}

	salePrice := in.SalePrice
	commission, net := entity.SplitCommission(salePrice, seller.CommissionPercentage)

	sale := &entity.Sale{
		ID:                   uuid.New().String(),
		VehicleID:            vehicle.ID,
		LeadID:               in.LeadID,
		SellerID:             sellerID,
		CompanyID:            vehicle.CompanyID,
		SalePrice:            salePrice,
		CommissionPercentage: seller.CommissionPercentage,
		CommissionAmount:     commission,
		NetRevenue:           net,
		Status:               entity.SaleStatusPending,
		SaleDate:             time.Now(),
		CreatedAt:            time.Now(),
	}

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		vehicleRepo repository.VehicleRepository,
		leadRepo repository.LeadRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		vehicle.Status = entity.VehicleStatusReserved
		vehicle.UpdatedAt = time.Now()
		if err := vehicleRepo.Update(vehicle); err != nil {
			return err
		}
		if in.LeadID == "" {
			return nil
		}
		lead, err := leadRepo.GetByID(in.LeadID)
		if err != nil {
			return err
		}
		if lead == nil || lead.CompanyID != vehicle.CompanyID {
			return domain.ErrInvalidInput
		}
		// Escritura directa: este cambio de estado no genera historial.
		lead.Status = entity.LeadStatusSold
		return leadRepo.Update(lead)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Approve aprueba una venta pendiente: fija aprobador y fecha, y pasa el
// vehículo a vendido en la misma transacción. Una venta ya aprobada no se
// re-aprueba: segunda llamada devuelve ErrConflict sin tocar nada.
func (uc *SaleUseCase) Approve(ctx context.Context, id authz.Identity, saleID string) (*dto.SaleResponse, error) {
	if !id.Role.Capabilities().CanApproveSales {
		return nil, domain.ErrForbidden
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !id.CanAccessCompany(sale.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if sale.Status == entity.SaleStatusApproved {
		return nil, domain.ErrConflict
	}

	sale.Status = entity.SaleStatusApproved
	sale.ApprovedByID = id.UserID
	sale.SaleDate = time.Now()

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		vehicleRepo repository.VehicleRepository,
		_ repository.LeadRepository,
	) error {
		if err := saleRepo.Update(sale); err != nil {
			return err
		}
		vehicle, err := vehicleRepo.GetByID(sale.VehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return domain.ErrNotFound
		}
		vehicle.Status = entity.VehicleStatusSold
		vehicle.UpdatedAt = time.Now()
		return vehicleRepo.Update(vehicle)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Reject rechaza una venta pendiente. El vehículo no se revierte: queda
// reservado hasta una decisión manual.
func (uc *SaleUseCase) Reject(id authz.Identity, saleID string) (*dto.SaleResponse, error) {
	if !id.Role.Capabilities().CanApproveSales {
		return nil, domain.ErrForbidden
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !id.CanAccessCompany(sale.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if sale.Status != entity.SaleStatusPending {
		return nil, domain.ErrConflict
	}
	sale.Status = entity.SaleStatusRejected
	sale.ApprovedByID = id.UserID
	if err := uc.saleRepo.Update(sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Get devuelve una venta dentro del alcance del caller.
func (uc *SaleUseCase) Get(id authz.Identity, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.loadScoped(id, saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// List lista ventas. Admin ve toda su empresa; el resto solo las propias.
// Month acota a un mes calendario (formato YYYY-MM).
func (uc *SaleUseCase) List(id authz.Identity, in dto.ListSalesRequest) ([]*dto.SaleResponse, int, error) {
	in.DefaultPage()
	filter := repository.SaleFilter{
		CompanyID: id.CompanyID,
		Status:    in.Status,
		Query:     textutil.FoldSearchTerm(in.Query),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if !id.Role.Capabilities().CanViewAllCompanySales {
		filter.SellerID = id.UserID
	}
	if in.Month != "" {
		start, err := time.Parse("2006-01", in.Month)
		if err != nil {
			return nil, 0, domain.ErrInvalidInput
		}
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filter.PeriodStart = &start
		filter.PeriodEnd = &end
	}
	list, total, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, total, nil
}

// Receipt genera el comprobante PDF de una venta aprobada.
// Devuelve (pdf, nombre de archivo, error).
func (uc *SaleUseCase) Receipt(id authz.Identity, saleID string) ([]byte, string, error) {
	sale, err := uc.loadScoped(id, saleID)
	if err != nil {
		return nil, "", err
	}
	if sale.Status != entity.SaleStatusApproved {
		return nil, "", domain.ErrInvalidInput
	}
	vehicle, err := uc.vehicleRepo.GetByID(sale.VehicleID)
	if err != nil {
		return nil, "", err
	}
	seller, err := uc.userRepo.GetByID(sale.SellerID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(sale.CompanyID)
	if err != nil {
		return nil, "", err
	}
	if vehicle == nil || seller == nil || company == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.receipts.GenerateSaleReceipt(sale, vehicle, seller, company)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, fmt.Sprintf("venta_%s.pdf", sale.ID), nil
}

func (uc *SaleUseCase) loadScoped(id authz.Identity, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !id.CanAccessCompany(sale.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if !id.Role.Capabilities().CanViewAllCompanySales && sale.SellerID != id.UserID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:                   s.ID,
		VehicleID:            s.VehicleID,
		LeadID:               s.LeadID,
		SellerID:             s.SellerID,
		CompanyID:            s.CompanyID,
		SalePrice:            s.SalePrice,
		CommissionPercentage: s.CommissionPercentage,
		CommissionAmount:     s.CommissionAmount,
		NetRevenue:           s.NetRevenue,
		Status:               s.Status,
		ApprovedByID:         s.ApprovedByID,
		SaleDate:             s.SaleDate,
		CreatedAt:            s.CreatedAt,
	}
}
