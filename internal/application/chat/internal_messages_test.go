package chat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/autosqp-api/internal/application/chat"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInternalRepo struct {
	rows []*entity.InternalMessage
}

func (r *fakeInternalRepo) Create(msg *entity.InternalMessage) error {
	cp := *msg
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeInternalRepo) ListVisible(companyID, userID string, from, to time.Time) ([]*entity.InternalMessage, error) {
	var out []*entity.InternalMessage
	for _, m := range r.rows {
		if m.CompanyID != companyID {
			continue
		}
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		if m.RecipientID != "" && m.RecipientID != userID && m.SenderID != userID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func buildInternalUseCase(userRepo *fakeUserRepo) (*chat.InternalMessageUseCase, *fakeInternalRepo) {
	repo := &fakeInternalRepo{}
	return chat.NewInternalMessageUseCase(repo, userRepo), repo
}

func member(id, companyID string) *entity.User {
	return &entity.User{ID: id, Email: id + "@test.co", RoleName: authz.RoleAsesor, CompanyID: companyID}
}

// ──────────────────────────────────────────────────────────────────────────────
// Send
// ──────────────────────────────────────────────────────────────────────────────

// Sin destinatario el mensaje es difusión a toda la empresa.
func TestInternalSend_SinDestinatarioEsDifusion(t *testing.T) {
	uc, repo := buildInternalUseCase(newFakeUserRepo(member("u1", "c1")))

	out, err := uc.Send(asesorC1, dto.SendInternalMessageRequest{
		Content: "Reunión de ventas a las 9",
	})
	require.NoError(t, err)

	assert.Empty(t, out.RecipientID)
	assert.Equal(t, "u1", out.SenderID)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "c1", repo.rows[0].CompanyID)
}

func TestInternalSend_DirectoAColegaDeLaEmpresa(t *testing.T) {
	uc, _ := buildInternalUseCase(newFakeUserRepo(member("u1", "c1"), member("u2", "c1")))

	out, err := uc.Send(asesorC1, dto.SendInternalMessageRequest{
		RecipientID: "u2",
		Content:     "¿Me cubres la cita de las 3?",
	})
	require.NoError(t, err)
	assert.Equal(t, "u2", out.RecipientID)
}

func TestInternalSend_DestinatarioInexistente(t *testing.T) {
	uc, _ := buildInternalUseCase(newFakeUserRepo(member("u1", "c1")))

	_, err := uc.Send(asesorC1, dto.SendInternalMessageRequest{
		RecipientID: "fantasma",
		Content:     "Hola",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInternalSend_DestinatarioDeOtraEmpresa(t *testing.T) {
	uc, _ := buildInternalUseCase(newFakeUserRepo(member("u1", "c1"), member("u9", "c2")))

	_, err := uc.Send(asesorC1, dto.SendInternalMessageRequest{
		RecipientID: "u9",
		Content:     "Hola",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"el chat interno no cruza empresas")
}

func TestInternalSend_ContenidoVacio(t *testing.T) {
	uc, _ := buildInternalUseCase(newFakeUserRepo(member("u1", "c1")))

	_, err := uc.Send(asesorC1, dto.SendInternalMessageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// List — ventana de día
// ──────────────────────────────────────────────────────────────────────────────

// Con fecha explícita se listan solo los mensajes de ese día; las difusiones
// son visibles para todos y los directos solo para remitente y destinatario.
func TestInternalList_FiltraPorDiaYVisibilidad(t *testing.T) {
	uc, repo := buildInternalUseCase(newFakeUserRepo(member("u1", "c1")))

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	repo.rows = []*entity.InternalMessage{
		{ID: "m1", CompanyID: "c1", SenderID: "u2", Content: "difusión del día", CreatedAt: day.Add(9 * time.Hour)},
		{ID: "m2", CompanyID: "c1", SenderID: "u2", RecipientID: "u1", Content: "directo para mí", CreatedAt: day.Add(10 * time.Hour)},
		{ID: "m3", CompanyID: "c1", SenderID: "u2", RecipientID: "u3", Content: "directo ajeno", CreatedAt: day.Add(11 * time.Hour)},
		{ID: "m4", CompanyID: "c1", SenderID: "u2", Content: "difusión de otro día", CreatedAt: day.AddDate(0, 0, 1).Add(time.Hour)},
		{ID: "m5", CompanyID: "c2", SenderID: "u9", Content: "otra empresa", CreatedAt: day.Add(9 * time.Hour)},
	}

	out, err := uc.List(asesorC1, "2026-03-10")
	require.NoError(t, err)

	ids := make([]string, 0, len(out))
	for _, m := range out {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{"m1", "m2"}, ids)
}

func TestInternalList_FechaInvalida(t *testing.T) {
	uc, _ := buildInternalUseCase(newFakeUserRepo())

	_, err := uc.List(asesorC1, "10/03/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
