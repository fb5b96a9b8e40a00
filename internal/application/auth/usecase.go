// Package auth emite los tokens de acceso de la intranet.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/patriciastocker/intranet/internal/application/dto"
	"github.com/patriciastocker/intranet/internal/domain"
	"github.com/patriciastocker/intranet/pkg/config"
	"github.com/patriciastocker/intranet/pkg/jwt"
)

// AuthUseCase login del administrador contra el hash bcrypt de la configuración.
type AuthUseCase struct {
	admin  config.AuthConfig
	jwtCfg config.JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(admin config.AuthConfig, jwtCfg config.JWTConfig) *AuthUseCase {
	return &AuthUseCase{admin: admin, jwtCfg: jwtCfg}
}

// Enabled indica si la API exige token (JWT_SECRET definido).
func (uc *AuthUseCase) Enabled() bool { return uc.jwtCfg.Secret != "" }

// Login verifica usuario/password y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, fmt.Errorf("username y password son requeridos: %w", domain.ErrInvalidInput)
	}
	if !uc.Enabled() || uc.admin.AdminPasswordHash == "" {
		return nil, fmt.Errorf("auth: %w", domain.ErrNotConfigured)
	}
	if subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.admin.AdminUser)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.admin.AdminPasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.Issue(in.Username)
}

// Issue firma un token para username sin verificar credenciales (CLI).
func (uc *AuthUseCase) Issue(username string) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, username, jwt.RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.Expiration * 60}, nil
}

// HashPassword hash bcrypt para ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password vacío: %w", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
