package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/application/sales"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales      map[string]*entity.Sale
	lastFilter repository.SaleFilter
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	// Emula el constraint único sobre vehicle_id.
	for _, s := range r.sales {
		if s.VehicleID == sale.VehicleID {
			return domain.ErrConflict
		}
	}
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetByVehicleID(vehicleID string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.VehicleID == vehicleID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) Update(sale *entity.Sale) error {
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	r.lastFilter = filter
	var out []*entity.Sale
	for _, s := range r.sales {
		if filter.CompanyID != "" && s.CompanyID != filter.CompanyID {
			continue
		}
		if filter.SellerID != "" && s.SellerID != filter.SellerID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

type fakeVehicleRepo struct {
	vehicles map[string]*entity.Vehicle
}

func newFakeVehicleRepo(vehicles ...*entity.Vehicle) *fakeVehicleRepo {
	r := &fakeVehicleRepo{vehicles: make(map[string]*entity.Vehicle)}
	for _, v := range vehicles {
		r.vehicles[v.ID] = v
	}
	return r
}

func (r *fakeVehicleRepo) Create(v *entity.Vehicle) error { r.vehicles[v.ID] = v; return nil }

func (r *fakeVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) Update(v *entity.Vehicle) error {
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) Delete(id string) error { delete(r.vehicles, id); return nil }

func (r *fakeVehicleRepo) List(filter repository.VehicleFilter) ([]*entity.Vehicle, int, error) {
	var out []*entity.Vehicle
	for _, v := range r.vehicles {
		if filter.CompanyID != "" && v.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		out = append(out, v)
	}
	return out, len(out), nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) List(repository.UserFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) ListAdvisors(companyID string) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) TouchLastActive(id string, at time.Time) error { return nil }

type fakeLeadRepo struct {
	leads map[string]*entity.Lead
}

func (r *fakeLeadRepo) Create(l *entity.Lead) error { r.leads[l.ID] = l; return nil }
func (r *fakeLeadRepo) GetByID(id string) (*entity.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}
func (r *fakeLeadRepo) FindByPhone(string, string) (*entity.Lead, error) { return nil, nil }
func (r *fakeLeadRepo) Update(l *entity.Lead) error {
	cp := *l
	r.leads[l.ID] = &cp
	return nil
}
func (r *fakeLeadRepo) List(repository.LeadFilter) ([]*entity.Lead, int, error) {
	return nil, 0, nil
}
func (r *fakeLeadRepo) BulkAssign([]string, string, string) (int64, error) { return 0, nil }

type fakeTxRunner struct {
	saleRepo    repository.SaleRepository
	vehicleRepo repository.VehicleRepository
	leadRepo    repository.LeadRepository
}

func (tx *fakeTxRunner) RunSale(_ context.Context, fn func(repository.SaleRepository, repository.VehicleRepository, repository.LeadRepository) error) error {
	return fn(tx.saleRepo, tx.vehicleRepo, tx.leadRepo)
}

type fakeReceipts struct{}

func (fakeReceipts) GenerateSaleReceipt(*entity.Sale, *entity.Vehicle, *entity.User, *entity.Company) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc          *sales.SaleUseCase
	vehicleUC   *sales.VehicleUseCase
	saleRepo    *fakeSaleRepo
	vehicleRepo *fakeVehicleRepo
	leadRepo    *fakeLeadRepo
	userRepo    *fakeUserRepo
}

func newFixture(users ...*entity.User) *fixture {
	saleRepo := newFakeSaleRepo()
	vehicleRepo := newFakeVehicleRepo()
	leadRepo := &fakeLeadRepo{leads: make(map[string]*entity.Lead)}
	userRepo := newFakeUserRepo(users...)
	companyRepo := &fakeCompanyRepo{}
	tx := &fakeTxRunner{saleRepo: saleRepo, vehicleRepo: vehicleRepo, leadRepo: leadRepo}
	return &fixture{
		uc:          sales.NewSaleUseCase(saleRepo, vehicleRepo, userRepo, companyRepo, tx, fakeReceipts{}),
		vehicleUC:   sales.NewVehicleUseCase(vehicleRepo, saleRepo, userRepo, tx),
		saleRepo:    saleRepo,
		vehicleRepo: vehicleRepo,
		leadRepo:    leadRepo,
		userRepo:    userRepo,
	}
}

type fakeCompanyRepo struct{}

func (fakeCompanyRepo) Create(*entity.Company) error { return nil }
func (fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return &entity.Company{ID: id, Name: "AutoSQP"}, nil
}
func (fakeCompanyRepo) GetByName(string) (*entity.Company, error) { return nil, nil }
func (fakeCompanyRepo) First() (*entity.Company, error)           { return nil, nil }
func (fakeCompanyRepo) Update(*entity.Company) error              { return nil }
func (fakeCompanyRepo) List(string, int, int) ([]*entity.Company, int, error) {
	return nil, 0, nil
}

func seller(id, companyID string, commissionPct int64) *entity.User {
	return &entity.User{
		ID: id, Email: id + "@test.co", RoleName: authz.RoleVendedor,
		CompanyID: companyID, CommissionPercentage: commissionPct,
	}
}

func availableVehicle(id, companyID string, price int64) *entity.Vehicle {
	return &entity.Vehicle{
		ID: id, Make: "Toyota", Model: "Corolla", Year: 2022,
		Price: price, Status: entity.VehicleStatusAvailable, CompanyID: companyID,
	}
}

var (
	sellerC1 = authz.Identity{UserID: "v1", CompanyID: "c1", Role: authz.KindAdvisor}
	adminC1  = authz.Identity{UserID: "admin-1", CompanyID: "c1", Role: authz.KindAdmin}
	ctx      = context.Background()
)

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleCreate_ReservaVehiculoYRepartaComision(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 50_000_000)))

	out, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 50_000_000})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusPending, out.Status)
	assert.Equal(t, int64(50_000_000), out.SalePrice)
	assert.Equal(t, int64(5), out.CommissionPercentage, "snapshot del perfil del vendedor")
	assert.Equal(t, int64(2_500_000), out.CommissionAmount)
	assert.Equal(t, int64(47_500_000), out.NetRevenue)

	veh, _ := fx.vehicleRepo.GetByID("veh-1")
	assert.Equal(t, entity.VehicleStatusReserved, veh.Status, "la venta pendiente reserva el vehículo")
}

// El precio negociado es obligatorio: sin él la venta se rechaza en vez de
// caer en el precio de lista (eso solo aplica a la venta directa del vehículo).
func TestSaleCreate_SinPrecioEsInvalido(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 50_000_000)))

	_, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	veh, _ := fx.vehicleRepo.GetByID("veh-1")
	assert.Equal(t, entity.VehicleStatusAvailable, veh.Status, "el rechazo no toca el vehículo")
}

func TestSaleCreate_VehiculoVendidoEsConflicto(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	veh := availableVehicle("veh-1", "c1", 10_000_000)
	veh.Status = entity.VehicleStatusSold
	require.NoError(t, fx.vehicleRepo.Create(veh))

	_, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 10_000_000})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSaleCreate_MarcaLeadComoVendido(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))
	require.NoError(t, fx.leadRepo.Create(&entity.Lead{
		ID: "lead-1", Name: "Cliente", Status: entity.LeadStatusQualified, CompanyID: "c1",
	}))

	_, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", LeadID: "lead-1", SalePrice: 10_000_000})
	require.NoError(t, err)

	lead, _ := fx.leadRepo.GetByID("lead-1")
	assert.Equal(t, entity.LeadStatusSold, lead.Status)
}

// El vendedor raso no puede registrar ventas a nombre de otro: el seller_id
// ajeno se ignora en silencio y la venta queda a su nombre.
func TestSaleCreate_VendedorNoPuedeFijarOtroVendedor(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5), seller("v2", "c1", 10))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))

	out, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SellerID: "v2", SalePrice: 10_000_000})
	require.NoError(t, err)
	assert.Equal(t, "v1", out.SellerID)
	assert.Equal(t, int64(5), out.CommissionPercentage, "la comisión es la del vendedor efectivo")
}

func TestSaleCreate_AdminPuedeFijarOtroVendedor(t *testing.T) {
	fx := newFixture(seller("admin-1", "c1", 0), seller("v2", "c1", 10))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))

	out, err := fx.uc.Create(ctx, adminC1, dto.CreateSaleRequest{VehicleID: "veh-1", SellerID: "v2", SalePrice: 10_000_000})
	require.NoError(t, err)
	assert.Equal(t, "v2", out.SellerID)
	assert.Equal(t, int64(10), out.CommissionPercentage)
}

func TestSaleCreate_SegundaVentaDelMismoVehiculo(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))

	_, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 10_000_000})
	require.NoError(t, err)

	// El vehículo quedó reservado, no vendido: la segunda venta la frena el
	// constraint único sobre vehicle_id, no el estado.
	_, err = fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 10_000_000})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve / Reject
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleApprove_PasaVehiculoAVendido(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))
	created, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 10_000_000})
	require.NoError(t, err)

	out, err := fx.uc.Approve(ctx, adminC1, created.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusApproved, out.Status)
	assert.Equal(t, "admin-1", out.ApprovedByID)

	veh, _ := fx.vehicleRepo.GetByID("veh-1")
	assert.Equal(t, entity.VehicleStatusSold, veh.Status)
}

func TestSaleApprove_SegundaAprobacionEsConflicto(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))
	created, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 10_000_000})
	require.NoError(t, err)

	_, err = fx.uc.Approve(ctx, adminC1, created.ID)
	require.NoError(t, err)
	_, err = fx.uc.Approve(ctx, adminC1, created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una venta aprobada no se re-aprueba")
}

func TestSaleApprove_VendedorNoPuedeAprobar(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))
	created, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 10_000_000})
	require.NoError(t, err)

	_, err = fx.uc.Approve(ctx, sellerC1, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSaleReject_NoRevierteElVehiculo(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))
	created, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 10_000_000})
	require.NoError(t, err)

	out, err := fx.uc.Reject(adminC1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusRejected, out.Status)

	veh, _ := fx.vehicleRepo.GetByID("veh-1")
	assert.Equal(t, entity.VehicleStatusReserved, veh.Status,
		"el rechazo deja el vehículo reservado hasta una decisión manual")
}

// ──────────────────────────────────────────────────────────────────────────────
// List — alcance por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleList_VendedorSoloVeLasSuyas(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5), seller("v2", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-2", "c1", 20_000_000)))

	_, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 10_000_000})
	require.NoError(t, err)
	otherSeller := authz.Identity{UserID: "v2", CompanyID: "c1", Role: authz.KindAdvisor}
	_, err = fx.uc.Create(ctx, otherSeller, dto.CreateSaleRequest{VehicleID: "veh-2", SalePrice: 20_000_000})
	require.NoError(t, err)

	list, total, err := fx.uc.List(sellerC1, dto.ListSalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "v1", list[0].SellerID)

	listAdmin, totalAdmin, err := fx.uc.List(adminC1, dto.ListSalesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, totalAdmin, "admin ve todas las ventas de su empresa")
	assert.Len(t, listAdmin, 2)
}

func TestSaleList_MesInvalido(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	_, _, err := fx.uc.List(adminC1, dto.ListSalesRequest{Month: "2026/01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición directa del vehículo a "sold"
// ──────────────────────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func TestVehicleUpdate_VentaDirectaCreaVentaAprobada(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 30_000_000)))

	_, err := fx.vehicleUC.Update(ctx, sellerC1, "veh-1", dto.UpdateVehicleRequest{
		Status: strPtr(entity.VehicleStatusSold),
	})
	require.NoError(t, err)

	sale, err := fx.saleRepo.GetByVehicleID("veh-1")
	require.NoError(t, err)
	require.NotNil(t, sale, "la venta directa debe quedar registrada")
	assert.Equal(t, entity.SaleStatusApproved, sale.Status, "la venta directa nace aprobada")
	assert.Equal(t, "v1", sale.SellerID)
	assert.Equal(t, "v1", sale.ApprovedByID)
	assert.Equal(t, int64(30_000_000), sale.SalePrice, "se usa el precio de lista")
	assert.Equal(t, int64(1_500_000), sale.CommissionAmount)
}

func TestVehicleUpdate_VentaDirectaConVentaExistenteNoDuplica(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 30_000_000)))

	created, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 28_000_000})
	require.NoError(t, err)

	_, err = fx.vehicleUC.Update(ctx, sellerC1, "veh-1", dto.UpdateVehicleRequest{
		Status: strPtr(entity.VehicleStatusSold),
	})
	require.NoError(t, err)

	sale, _ := fx.saleRepo.GetByVehicleID("veh-1")
	assert.Equal(t, created.ID, sale.ID, "la venta existente se conserva sin duplicar")

	veh, _ := fx.vehicleRepo.GetByID("veh-1")
	assert.Equal(t, entity.VehicleStatusSold, veh.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receipt
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleReceipt_SoloVentasAprobadas(t *testing.T) {
	fx := newFixture(seller("v1", "c1", 5))
	require.NoError(t, fx.vehicleRepo.Create(availableVehicle("veh-1", "c1", 10_000_000)))
	created, err := fx.uc.Create(ctx, sellerC1, dto.CreateSaleRequest{VehicleID: "veh-1", SalePrice: 10_000_000})
	require.NoError(t, err)

	_, _, err = fx.uc.Receipt(sellerC1, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una venta pendiente no tiene comprobante")

	_, err = fx.uc.Approve(ctx, adminC1, created.ID)
	require.NoError(t, err)

	pdf, filename, err := fx.uc.Receipt(sellerC1, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "venta_"+created.ID+".pdf", filename)
}
