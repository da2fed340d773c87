package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/autosqp-api/internal/application/auth"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
	"github.com/tu-usuario/autosqp-api/pkg/textutil"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de usuarios del concesionario.
type UserUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, roleRepo: roleRepo}
}

// Create da de alta un usuario. Un admin de empresa no puede crear super
// admins ni usuarios de otra empresa; el email es único a nivel global.
func (uc *UserUseCase) Create(id authz.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || in.RoleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CommissionPercentage < 0 || in.CommissionPercentage > 100 {
		return nil, domain.ErrInvalidInput
	}
	role, err := uc.roleRepo.GetByID(in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrInvalidInput
	}
	if authz.ParseKind(role.Name) == authz.KindSuperAdmin && !id.IsGlobal() {
		return nil, domain.ErrForbidden
	}

	companyID := id.ResolveCompany(in.CompanyID)
	if !id.CanAccessCompany(companyID) {
		return nil, domain.ErrForbidden
	}
	// Todo usuario salvo el super admin global pertenece a una empresa.
	if companyID == "" && authz.ParseKind(role.Name) != authz.KindSuperAdmin {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:                   uuid.New().String(),
		Email:                in.Email,
		PasswordHash:         string(hash),
		RoleID:               role.ID,
		RoleName:             role.Name,
		CompanyID:            companyID,
		CommissionPercentage: in.CommissionPercentage,
		BaseSalary:           in.BaseSalary,
		PaymentDates:         in.PaymentDates,
		CreatedAt:            time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user, time.Now()), nil
}

// Get devuelve un usuario dentro del alcance del caller.
func (uc *UserUseCase) Get(id authz.Identity, userID string) (*dto.UserResponse, error) {
	user, err := uc.loadScoped(id, userID)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user, time.Now()), nil
}

// List lista usuarios de la empresa con filtro por rol y búsqueda sobre
// email. Consultar el directorio cuenta como actividad del caller.
func (uc *UserUseCase) List(id authz.Identity, roleID, query string, page dto.PageRequest) ([]*dto.UserResponse, int, error) {
	page.DefaultPage()
	now := time.Now()
	_ = uc.userRepo.TouchLastActive(id.UserID, now)

	list, total, err := uc.userRepo.List(repository.UserFilter{
		CompanyID: id.CompanyID,
		RoleID:    roleID,
		Query:     textutil.FoldSearchTerm(query),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, auth.ToUserResponse(u, now))
	}
	return out, total, nil
}

// Update edición parcial: email, password (re-hash), rol, comisión, sueldo
// y fechas de pago.
func (uc *UserUseCase) Update(id authz.Identity, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.loadScoped(id, userID)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.RoleID != nil {
		role, err := uc.roleRepo.GetByID(*in.RoleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, domain.ErrInvalidInput
		}
		if authz.ParseKind(role.Name) == authz.KindSuperAdmin && !id.IsGlobal() {
			return nil, domain.ErrForbidden
		}
		user.RoleID = role.ID
		user.RoleName = role.Name
	}
	if in.CommissionPercentage != nil {
		if *in.CommissionPercentage < 0 || *in.CommissionPercentage > 100 {
			return nil, domain.ErrInvalidInput
		}
		user.CommissionPercentage = *in.CommissionPercentage
	}
	if in.BaseSalary != nil {
		user.BaseSalary = in.BaseSalary
	}
	if in.PaymentDates != nil {
		user.PaymentDates = *in.PaymentDates
	}
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user, time.Now()), nil
}

// Me devuelve el perfil del caller y lo marca activo.
func (uc *UserUseCase) Me(id authz.Identity) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	now := time.Now()
	_ = uc.userRepo.TouchLastActive(user.ID, now)
	user.LastActive = &now
	return auth.ToUserResponse(user, now), nil
}

// Roles devuelve el catálogo de roles.
func (uc *UserUseCase) Roles() ([]*dto.RoleResponse, error) {
	roles, err := uc.roleRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, &dto.RoleResponse{ID: r.ID, Name: r.Name, Label: r.Label})
	}
	return out, nil
}

func (uc *UserUseCase) loadScoped(id authz.Identity, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !id.CanAccessCompany(user.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
