package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		role string
		want authz.Kind
	}{
		{"super_admin", authz.KindSuperAdmin},
		{"admin", authz.KindAdmin},
		{"asesor", authz.KindAdvisor},
		{"vendedor", authz.KindAdvisor},
		{"aliado", authz.KindPartner},
		{"user", authz.KindMember},
		{"coordinador", authz.KindMember}, // rol legacy desconocido
		{"", authz.KindMember},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, authz.ParseKind(tc.role), "rol %q", tc.role)
	}
}

func TestCapabilities_AdminYSuperAdmin(t *testing.T) {
	for _, k := range []authz.Kind{authz.KindAdmin, authz.KindSuperAdmin} {
		caps := k.Capabilities()
		assert.True(t, caps.CanApproveSales)
		assert.True(t, caps.CanViewAllCompanySales)
		assert.True(t, caps.CanOverrideSeller)
		assert.True(t, caps.CanViewFinance)
		assert.False(t, caps.SeesOnlyAssigned)
	}
}

func TestCapabilities_Asesor(t *testing.T) {
	caps := authz.KindAdvisor.Capabilities()
	assert.True(t, caps.SeesOnlyAssigned, "el asesor solo ve lo asignado")
	assert.False(t, caps.CanApproveSales)
	assert.False(t, caps.CanViewFinance)
}

func TestCapabilities_Aliado(t *testing.T) {
	caps := authz.KindPartner.Capabilities()
	assert.True(t, caps.SeesOwnOrReferred, "el aliado ve lo propio o referido")
	assert.False(t, caps.SeesOnlyAssigned)
	assert.False(t, caps.CanApproveSales)
}

func TestCanAccessCompany(t *testing.T) {
	scoped := authz.Identity{UserID: "u1", CompanyID: "c1", Role: authz.KindAdmin}
	assert.True(t, scoped.CanAccessCompany("c1"))
	assert.False(t, scoped.CanAccessCompany("c2"), "una identidad con empresa no cruza a otra")

	global := authz.Identity{UserID: "u2", Role: authz.KindSuperAdmin}
	assert.True(t, global.IsGlobal())
	assert.True(t, global.CanAccessCompany("c1"))
	assert.True(t, global.CanAccessCompany("c2"), "la identidad global accede a cualquier empresa")
}

func TestResolveCompany(t *testing.T) {
	scoped := authz.Identity{UserID: "u1", CompanyID: "c1"}
	assert.Equal(t, "c2", scoped.ResolveCompany("c2"), "la explícita gana")
	assert.Equal(t, "c1", scoped.ResolveCompany(""), "sin explícita cae en la de la identidad")

	global := authz.Identity{UserID: "u2"}
	assert.Equal(t, "", global.ResolveCompany(""), "global sin explícita queda vacío")
}
