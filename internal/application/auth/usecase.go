// Package auth autenticación del panel. No hay tabla de usuarios: los usuarios
// se aprovisionan por configuración (email + hash bcrypt + rol) porque el
// servicio no maneja estado durable.
package auth

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// User usuario aprovisionado por configuración.
type User struct {
	ID           string // se asigna al construir el caso de uso
	Email        string
	PasswordHash string // bcrypt
	Role         string // "admin" | "analista"
}

// AuthUseCase caso de uso de login contra los usuarios de configuración.
type AuthUseCase struct {
	users  []User
	shop   string
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso. Asigna un ID estable por proceso a
// cada usuario (no hay persistencia de la que leerlo).
func NewAuthUseCase(users []User, shop string, jwtCfg JWTConfig) *AuthUseCase {
	for i := range users {
		if users[i].ID == "" {
			users[i].ID = uuid.New().String()
		}
	}
	return &AuthUseCase{users: users, shop: shop, jwtCfg: jwtCfg}
}

// Login verifica email/password contra los usuarios aprovisionados, genera JWT
// y retorna token + datos básicos del usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	var user *User
	for i := range uc.users {
		if strings.ToLower(uc.users[i].Email) == email {
			user = &uc.users[i]
			break
		}
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.shop, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
