package leads_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/application/leads"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/assign"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLeadRepo struct {
	leads      map[string]*entity.Lead
	lastFilter repository.LeadFilter
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]*entity.Lead)}
}

func (r *fakeLeadRepo) Create(lead *entity.Lead) error {
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) GetByID(id string) (*entity.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeadRepo) FindByPhone(companyID, phone string) (*entity.Lead, error) {
	for _, l := range r.leads {
		if l.CompanyID == companyID && l.Phone == phone {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLeadRepo) Update(lead *entity.Lead) error {
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) List(filter repository.LeadFilter) ([]*entity.Lead, int, error) {
	r.lastFilter = filter
	var out []*entity.Lead
	for _, l := range r.leads {
		if filter.CompanyID != "" && l.CompanyID != filter.CompanyID {
			continue
		}
		if filter.AssignedToID != "" && l.AssignedToID != filter.AssignedToID {
			continue
		}
		if filter.OwnOrReferredID != "" &&
			l.CreatedByID != filter.OwnOrReferredID && l.AssignedToID != filter.OwnOrReferredID {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(l.Name), filter.Query) {
			continue
		}
		out = append(out, l)
	}
	return out, len(out), nil
}

func (r *fakeLeadRepo) BulkAssign(leadIDs []string, assignedToID, companyID string) (int64, error) {
	var count int64
	for _, id := range leadIDs {
		l, ok := r.leads[id]
		if !ok {
			continue
		}
		if companyID != "" && l.CompanyID != companyID {
			continue
		}
		l.AssignedToID = assignedToID
		count++
	}
	return count, nil
}

type fakeHistoryRepo struct {
	rows []*entity.LeadHistory
}

func (r *fakeHistoryRepo) Create(h *entity.LeadHistory) error {
	cp := *h
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeHistoryRepo) ListByLead(leadID string) ([]*entity.LeadHistory, error) {
	var out []*entity.LeadHistory
	for _, h := range r.rows {
		if h.LeadID == leadID {
			out = append(out, h)
		}
	}
	return out, nil
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

func (r *fakeUserRepo) List(filter repository.UserFilter) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range r.users {
		if filter.CompanyID != "" && u.CompanyID != filter.CompanyID {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) ListAdvisors(companyID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID != companyID {
			continue
		}
		if u.RoleName == authz.RoleAsesor || u.RoleName == authz.RoleVendedor {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) TouchLastActive(id string, at time.Time) error { return nil }

// fakeTxRunner ejecuta el callback directamente sobre los mismos repos.
type fakeTxRunner struct {
	leadRepo    repository.LeadRepository
	historyRepo repository.LeadHistoryRepository
}

func (tx *fakeTxRunner) RunLeadUpdate(_ context.Context, fn func(repository.LeadRepository, repository.LeadHistoryRepository) error) error {
	return fn(tx.leadRepo, tx.historyRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func advisor(id, companyID string) *entity.User {
	return &entity.User{ID: id, Email: id + "@test.co", RoleName: authz.RoleAsesor, CompanyID: companyID}
}

func buildLeadUseCase(userRepo *fakeUserRepo, selector assign.Selector) (*leads.LeadUseCase, *fakeLeadRepo, *fakeHistoryRepo) {
	leadRepo := newFakeLeadRepo()
	historyRepo := &fakeHistoryRepo{}
	tx := &fakeTxRunner{leadRepo: leadRepo, historyRepo: historyRepo}
	return leads.NewLeadUseCase(leadRepo, historyRepo, userRepo, tx, selector), leadRepo, historyRepo
}

var adminC1 = authz.Identity{UserID: "admin-1", CompanyID: "c1", Role: authz.KindAdmin}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Create — auto-asignación
// ──────────────────────────────────────────────────────────────────────────────

// Sin assigned_to_id el lead debe quedar con un asesor de la empresa elegido
// por el selector; un selector aleatorio debe repartir entre todos.
func TestLeadCreate_AutoAsignaEntreAsesores(t *testing.T) {
	userRepo := newFakeUserRepo(advisor("u1", "c1"), advisor("u2", "c1"), advisor("u3", "c2"))
	uc, _, _ := buildLeadUseCase(userRepo, assign.NewRandomSelector())

	seen := make(map[string]int)
	for i := 0; i < 200; i++ {
		out, err := uc.Create(adminC1, dto.CreateLeadRequest{Name: "Cliente", Source: "web"})
		require.NoError(t, err)
		seen[out.AssignedToID]++
	}

	// Solo asesores de c1; el de c2 jamás debe aparecer.
	assert.NotContains(t, seen, "u3", "un asesor de otra empresa no puede recibir el lead")
	assert.NotContains(t, seen, "", "con asesores disponibles el lead no puede quedar sin asignar")
	assert.Greater(t, seen["u1"], 0, "u1 debe recibir leads con una estrategia uniforme")
	assert.Greater(t, seen["u2"], 0, "u2 debe recibir leads con una estrategia uniforme")
}

func TestLeadCreate_SinAsesoresQuedaSinAsignar(t *testing.T) {
	uc, _, _ := buildLeadUseCase(newFakeUserRepo(), assign.NewRandomSelector())

	out, err := uc.Create(adminC1, dto.CreateLeadRequest{Name: "Cliente", Source: "web"})
	require.NoError(t, err)
	assert.Empty(t, out.AssignedToID)
	assert.Equal(t, entity.LeadStatusNew, out.Status)
}

func TestLeadCreate_AsignacionExplicitaDeOtraEmpresa(t *testing.T) {
	userRepo := newFakeUserRepo(advisor("u3", "c2"))
	uc, _, _ := buildLeadUseCase(userRepo, assign.Fixed(0))

	_, err := uc.Create(adminC1, dto.CreateLeadRequest{
		Name: "Cliente", Source: "web", AssignedToID: "u3",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"no se puede asignar a un usuario de otra empresa")
}

func TestLeadCreate_NormalizaTelefonoYSourceDesconocido(t *testing.T) {
	uc, _, _ := buildLeadUseCase(newFakeUserRepo(), assign.Fixed(0))

	out, err := uc.Create(adminC1, dto.CreateLeadRequest{
		Name: "Cliente", Phone: "+57 300 123 4567",
	})
	require.NoError(t, err)
	assert.Equal(t, "573001234567", out.Phone)
	assert.Equal(t, entity.LeadSourceOther, out.Source, "source vacío cae en other")

	_, err = uc.Create(adminC1, dto.CreateLeadRequest{Name: "Cliente", Source: "telegrama"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "source desconocido se rechaza")
}

func TestLeadCreate_SinNombre(t *testing.T) {
	uc, _, _ := buildLeadUseCase(newFakeUserRepo(), assign.Fixed(0))
	_, err := uc.Create(adminC1, dto.CreateLeadRequest{Source: "web"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — historial
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadUpdate_CambioDeEstadoGeneraHistorial(t *testing.T) {
	uc, leadRepo, historyRepo := buildLeadUseCase(newFakeUserRepo(), assign.Fixed(0))
	out, err := uc.Create(adminC1, dto.CreateLeadRequest{Name: "Cliente", Source: "web"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), adminC1, out.ID, dto.UpdateLeadRequest{
		Status: strPtr(entity.LeadStatusContacted),
	})
	require.NoError(t, err)

	require.Len(t, historyRepo.rows, 1, "el cambio de estado debe dejar una fila de historial")
	h := historyRepo.rows[0]
	assert.Equal(t, entity.LeadStatusNew, h.PreviousStatus)
	assert.Equal(t, entity.LeadStatusContacted, h.NewStatus)
	assert.Equal(t, adminC1.UserID, h.UserID)

	updated, _ := leadRepo.GetByID(out.ID)
	assert.Equal(t, entity.LeadStatusContacted, updated.Status)
}

func TestLeadUpdate_SoloComentarioGeneraHistorial(t *testing.T) {
	uc, _, historyRepo := buildLeadUseCase(newFakeUserRepo(), assign.Fixed(0))
	out, err := uc.Create(adminC1, dto.CreateLeadRequest{Name: "Cliente", Source: "web"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), adminC1, out.ID, dto.UpdateLeadRequest{
		Comment: "llamar mañana",
	})
	require.NoError(t, err)

	require.Len(t, historyRepo.rows, 1)
	h := historyRepo.rows[0]
	assert.Equal(t, entity.LeadStatusNew, h.PreviousStatus, "sin cambio de estado prev == new")
	assert.Equal(t, entity.LeadStatusNew, h.NewStatus)
	assert.Equal(t, "llamar mañana", h.Comment)
}

func TestLeadUpdate_SinCambioNiComentarioNoGeneraHistorial(t *testing.T) {
	uc, _, historyRepo := buildLeadUseCase(newFakeUserRepo(), assign.Fixed(0))
	out, err := uc.Create(adminC1, dto.CreateLeadRequest{Name: "Cliente", Source: "web"})
	require.NoError(t, err)

	// Mismo estado y una edición de nombre: no hay nada que historiar.
	_, err = uc.Update(context.Background(), adminC1, out.ID, dto.UpdateLeadRequest{
		Name:   strPtr("Cliente Editado"),
		Status: strPtr(entity.LeadStatusNew),
	})
	require.NoError(t, err)
	assert.Empty(t, historyRepo.rows)
}

func TestLeadUpdate_OtraEmpresaProhibido(t *testing.T) {
	uc, _, _ := buildLeadUseCase(newFakeUserRepo(), assign.Fixed(0))
	out, err := uc.Create(adminC1, dto.CreateLeadRequest{Name: "Cliente", Source: "web"})
	require.NoError(t, err)

	otherAdmin := authz.Identity{UserID: "admin-2", CompanyID: "c2", Role: authz.KindAdmin}
	_, err = uc.Update(context.Background(), otherAdmin, out.ID, dto.UpdateLeadRequest{
		Comment: "intruso",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// List — alcance por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadList_AsesorSoloVeLoAsignado(t *testing.T) {
	userRepo := newFakeUserRepo(advisor("u1", "c1"), advisor("u2", "c1"))
	uc, leadRepo, _ := buildLeadUseCase(userRepo, assign.Fixed(0))

	_, err := uc.Create(adminC1, dto.CreateLeadRequest{Name: "A", Source: "web", AssignedToID: "u1"})
	require.NoError(t, err)
	_, err = uc.Create(adminC1, dto.CreateLeadRequest{Name: "B", Source: "web", AssignedToID: "u2"})
	require.NoError(t, err)

	asesor := authz.Identity{UserID: "u1", CompanyID: "c1", Role: authz.KindAdvisor}
	list, total, err := uc.List(asesor, dto.ListLeadsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].AssignedToID)
	assert.Equal(t, "u1", leadRepo.lastFilter.AssignedToID, "el filtro debe fijarse desde la identidad")
}

func TestLeadList_AliadoVeLoPropioOReferido(t *testing.T) {
	userRepo := newFakeUserRepo(advisor("u1", "c1"))
	uc, leadRepo, _ := buildLeadUseCase(userRepo, assign.Fixed(0))

	aliado := authz.Identity{UserID: "p1", CompanyID: "c1", Role: authz.KindPartner}
	_, err := uc.Create(aliado, dto.CreateLeadRequest{Name: "Referido", Source: "web"})
	require.NoError(t, err)
	_, err = uc.Create(adminC1, dto.CreateLeadRequest{Name: "Ajeno", Source: "web"})
	require.NoError(t, err)

	list, _, err := uc.List(aliado, dto.ListLeadsRequest{})
	require.NoError(t, err)

	require.Len(t, list, 1, "el aliado solo ve los leads creados por él o asignados a él")
	assert.Equal(t, "Referido", list[0].Name)
	assert.Equal(t, "p1", leadRepo.lastFilter.OwnOrReferredID)
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkAssign
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkAssign_AsignaYCuentaSoloLosDeSuEmpresa(t *testing.T) {
	userRepo := newFakeUserRepo(advisor("u1", "c1"))
	uc, leadRepo, _ := buildLeadUseCase(userRepo, assign.Fixed(0))

	a, err := uc.Create(adminC1, dto.CreateLeadRequest{Name: "A", Source: "web"})
	require.NoError(t, err)
	b, err := uc.Create(adminC1, dto.CreateLeadRequest{Name: "B", Source: "web"})
	require.NoError(t, err)

	// Un lead de otra empresa metido a mano en el repo: debe excluirse en silencio.
	require.NoError(t, leadRepo.Create(&entity.Lead{ID: "lead-c2", Name: "C", CompanyID: "c2"}))

	out, err := uc.BulkAssign(adminC1, dto.BulkAssignRequest{
		LeadIDs:      []string{a.ID, b.ID, "lead-c2", "no-existe"},
		AssignedToID: "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Assigned, "solo cuentan los leads realmente actualizados")

	foreign, _ := leadRepo.GetByID("lead-c2")
	assert.Empty(t, foreign.AssignedToID, "el lead de otra empresa no debe tocarse")
}

func TestBulkAssign_TargetDeOtraEmpresa(t *testing.T) {
	userRepo := newFakeUserRepo(advisor("u3", "c2"))
	uc, _, _ := buildLeadUseCase(userRepo, assign.Fixed(0))

	_, err := uc.BulkAssign(adminC1, dto.BulkAssignRequest{
		LeadIDs:      []string{"x"},
		AssignedToID: "u3",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
