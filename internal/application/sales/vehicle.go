package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
	"github.com/tu-usuario/autosqp-api/pkg/textutil"
)

// VehicleUseCase casos de uso de inventario de vehículos, incluida la ruta
// secundaria de venta directa al editar el estado a "sold".
type VehicleUseCase struct {
	vehicleRepo repository.VehicleRepository
	saleRepo    repository.SaleRepository
	userRepo    repository.UserRepository
	txRunner    TxRunner
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(
	vehicleRepo repository.VehicleRepository,
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	txRunner TxRunner,
) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo: vehicleRepo,
		saleRepo:    saleRepo,
		userRepo:    userRepo,
		txRunner:    txRunner,
	}
}

// Create registra un vehículo disponible en el inventario de la empresa.
func (uc *VehicleUseCase) Create(id authz.Identity, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if in.Make == "" || in.Model == "" || in.Year <= 0 || in.Price < 0 {
		return nil, domain.ErrInvalidInput
	}
	companyID := id.ResolveCompany(in.CompanyID)
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !id.CanAccessCompany(companyID) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:          uuid.New().String(),
		Make:        in.Make,
		Model:       in.Model,
		Year:        in.Year,
		Price:       in.Price,
		Plate:       in.Plate,
		Mileage:     in.Mileage,
		Color:       in.Color,
		Description: in.Description,
		Status:      entity.VehicleStatusAvailable,
		Photos:      in.Photos,
		CompanyID:   companyID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// Get devuelve un vehículo dentro del alcance del caller.
func (uc *VehicleUseCase) Get(id authz.Identity, vehicleID string) (*dto.VehicleResponse, error) {
	vehicle, err := uc.loadScoped(id, vehicleID)
	if err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// List lista vehículos de la empresa. Un asesor que filtra por vendidos
// solo ve los vehículos que vendió él.
func (uc *VehicleUseCase) List(id authz.Identity, in dto.ListVehiclesRequest) ([]*dto.VehicleResponse, int, error) {
	in.DefaultPage()
	filter := repository.VehicleFilter{
		CompanyID: id.CompanyID,
		Status:    in.Status,
		Query:     textutil.FoldSearchTerm(in.Query),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.Status == entity.VehicleStatusSold && id.Role.Capabilities().SeesOnlyAssigned {
		filter.SoldBySellerID = id.UserID
	}
	list, total, err := uc.vehicleRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVehicleResponse(v))
	}
	return out, total, nil
}

// Update aplica una edición parcial. Pasar el estado a "sold" sobre un
// vehículo que no lo estaba, y sin venta previa, crea además una venta ya
// aprobada al precio de lista en la misma transacción.
func (uc *VehicleUseCase) Update(ctx context.Context, id authz.Identity, vehicleID string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.loadScoped(id, vehicleID)
	if err != nil {
		return nil, err
	}

	wasSold := vehicle.Status == entity.VehicleStatusSold
	if in.Make != nil {
		vehicle.Make = *in.Make
	}
	if in.Model != nil {
		vehicle.Model = *in.Model
	}
	if in.Year != nil {
		vehicle.Year = *in.Year
	}
	if in.Price != nil {
		vehicle.Price = *in.Price
	}
	if in.Plate != nil {
		vehicle.Plate = *in.Plate
	}
	if in.Mileage != nil {
		vehicle.Mileage = *in.Mileage
	}
	if in.Color != nil {
		vehicle.Color = *in.Color
	}
	if in.Description != nil {
		vehicle.Description = *in.Description
	}
	if in.Photos != nil {
		vehicle.Photos = *in.Photos
	}
	if in.Status != nil {
		if !entity.ValidVehicleStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		vehicle.Status = *in.Status
	}
	vehicle.UpdatedAt = time.Now()

	directSold := in.Status != nil && *in.Status == entity.VehicleStatusSold && !wasSold
	if !directSold {
		if err := uc.vehicleRepo.Update(vehicle); err != nil {
			return nil, err
		}
		return toVehicleResponse(vehicle), nil
	}

	existing, err := uc.saleRepo.GetByVehicleID(vehicle.ID)
	if err != nil {
		return nil, err
	}

	seller, err := uc.userRepo.GetByID(id.UserID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrNotFound
	}
	commission, net := entity.SplitCommission(vehicle.Price, seller.CommissionPercentage)

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		vehicleRepo repository.VehicleRepository,
		_ repository.LeadRepository,
	) error {
		if err := vehicleRepo.Update(vehicle); err != nil {
			return err
		}
		if existing != nil {
			// El vehículo ya tiene venta: no se duplica.
			return nil
		}
		now := time.Now()
		return saleRepo.Create(&entity.Sale{
			ID:                   uuid.New().String(),
			VehicleID:            vehicle.ID,
			SellerID:             id.UserID,
			CompanyID:            vehicle.CompanyID,
			SalePrice:            vehicle.Price,
			CommissionPercentage: seller.CommissionPercentage,
			CommissionAmount:     commission,
			NetRevenue:           net,
			Status:               entity.SaleStatusApproved,
			ApprovedByID:         id.UserID,
			SaleDate:             now,
			CreatedAt:            now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// Delete elimina un vehículo del inventario.
func (uc *VehicleUseCase) Delete(id authz.Identity, vehicleID string) error {
	if _, err := uc.loadScoped(id, vehicleID); err != nil {
		return err
	}
	return uc.vehicleRepo.Delete(vehicleID)
}

func (uc *VehicleUseCase) loadScoped(id authz.Identity, vehicleID string) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	if !id.CanAccessCompany(vehicle.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return vehicle, nil
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	photos := v.Photos
	if photos == nil {
		photos = []string{}
	}
	return &dto.VehicleResponse{
		ID:          v.ID,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		Price:       v.Price,
		Plate:       v.Plate,
		Mileage:     v.Mileage,
		Color:       v.Color,
		Description: v.Description,
		Status:      v.Status,
		Photos:      photos,
		CompanyID:   v.CompanyID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
