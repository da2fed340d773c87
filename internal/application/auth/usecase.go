package auth

import (
	"time"

	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
	"github.com/tu-usuario/autosqp-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación. El alta de usuarios vive en la
// administración de usuarios, no aquí.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// El mismo mensaje de error cubre email inexistente y password incorrecto.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.RoleName, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	// Login cuenta como actividad; si falla no invalida la sesión.
	now := time.Now()
	_ = uc.userRepo.TouchLastActive(user.ID, now)
	user.LastActive = &now

	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user, now),
	}, nil
}

// ToUserResponse convierte la entidad a su representación pública. now se
// usa para calcular is_online.
func ToUserResponse(u *entity.User, now time.Time) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		RoleID:               u.RoleID,
		Role:                 u.RoleName,
		CompanyID:            u.CompanyID,
		CommissionPercentage: u.CommissionPercentage,
		BaseSalary:           u.BaseSalary,
		PaymentDates:         u.PaymentDates,
		IsOnline:             u.IsOnline(now),
		LastActive:           u.LastActive,
		CreatedAt:            u.CreatedAt,
	}
}
