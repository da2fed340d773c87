// Package authz centraliza las decisiones de autorización: qué clase de rol
// tiene el usuario, qué capacidades le da y a qué empresa puede acceder.
// Los nombres de rol son filas de la tabla roles; aquí se interpretan una
// sola vez (ParseKind) en lugar de comparar strings en cada handler.
package authz

// Nombres de rol conocidos tal como se persisten en la tabla roles.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleAsesor     = "asesor"
	RoleVendedor   = "vendedor"
	RoleAliado     = "aliado"
	RoleUser       = "user"
)

// Kind es la enumeración cerrada de clases de rol.
type Kind int

const (
	// KindMember usuario raso sin permisos especiales (incluye roles legacy).
	KindMember Kind = iota
	// KindPartner (aliado) refiere leads y solo ve los suyos.
	KindPartner
	// KindAdvisor (asesor/vendedor) atiende leads asignados y registra ventas.
	KindAdvisor
	// KindAdmin administra su empresa.
	KindAdmin
	// KindSuperAdmin administra todas las empresas (company vacía = global).
	KindSuperAdmin
)

// ParseKind mapea el nombre de rol persistido a su clase. Nombres
// desconocidos o legacy ("usuario", "coordinador") caen en KindMember.
func ParseKind(roleName string) Kind {
	switch roleName {
	case RoleSuperAdmin:
		return KindSuperAdmin
	case RoleAdmin:
		return KindAdmin
	case RoleAsesor, RoleVendedor:
		return KindAdvisor
	case RoleAliado:
		return KindPartner
	default:
		return KindMember
	}
}

// String devuelve el nombre canónico de la clase (para logs).
func (k Kind) String() string {
	switch k {
	case KindSuperAdmin:
		return "super_admin"
	case KindAdmin:
		return "admin"
	case KindAdvisor:
		return "advisor"
	case KindPartner:
		return "partner"
	default:
		return "member"
	}
}

// Capabilities es la tabla de permisos por clase de rol.
type Capabilities struct {
	CanApproveSales        bool // aprobar ventas pendientes
	CanViewAllCompanySales bool // listar ventas de toda la empresa
	CanOverrideSeller      bool // crear ventas a nombre de otro vendedor
	CanViewFinance         bool // consultar /finance/stats
	SeesOnlyAssigned       bool // listados de leads/créditos limitados a lo asignado
	SeesOwnOrReferred      bool // aliado: leads creados por él o asignados a él
}

// Capabilities devuelve los permisos de la clase.
func (k Kind) Capabilities() Capabilities {
	switch k {
	case KindSuperAdmin, KindAdmin:
		return Capabilities{
			CanApproveSales:        true,
			CanViewAllCompanySales: true,
			CanOverrideSeller:      true,
			CanViewFinance:         true,
		}
	case KindAdvisor:
		return Capabilities{SeesOnlyAssigned: true}
	case KindPartner:
		return Capabilities{SeesOwnOrReferred: true}
	default:
		return Capabilities{}
	}
}

// Identity es la identidad verificada que el proveedor de auth entrega a
// cada operación: el core la recibe ya autenticada y no revalida credenciales.
type Identity struct {
	UserID    string
	CompanyID string // vacío = acceso global (super admin sin empresa)
	Role      Kind
}

// IsGlobal indica si la identidad opera sin restricción de empresa.
func (id Identity) IsGlobal() bool { return id.CompanyID == "" }

// CanAccessCompany es la política única de alcance por empresa: una identidad
// con empresa solo accede a registros de su empresa; una global accede a todo.
// Todos los casos de uso pasan por aquí en lugar de repetir la comparación.
func (id Identity) CanAccessCompany(companyID string) bool {
	return id.CompanyID == "" || id.CompanyID == companyID
}

// ResolveCompany decide la empresa destino de una creación: la explícita si
// viene, si no la de la identidad. Devuelve vacío si ninguna está presente
// (el caso de uso lo convierte en error de validación).
func (id Identity) ResolveCompany(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return id.CompanyID
}
