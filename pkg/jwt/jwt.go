package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la identidad del usuario dentro de su sistema (tenant).
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	SystemID string `json:"system_id"`
	ClinicID string `json:"clinic_id,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Identity es lo que el middleware deja en el contexto de la petición.
type Identity struct {
	UserID   string
	SystemID string
	ClinicID string
	Role     string
}

// Generate genera un token firmado. Lo usan las pruebas y las herramientas internas;
// en producción los tokens los emite el proveedor de sesión.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   id.UserID,
		SystemID: id.SystemID,
		ClinicID: id.ClinicID,
		Role:     id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o le falta el tenant.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	if claims.SystemID == "" || claims.UserID == "" {
		return Identity{}, fmt.Errorf("jwt: faltan user_id o system_id")
	}
	return Identity{
		UserID:   claims.UserID,
		SystemID: claims.SystemID,
		ClinicID: claims.ClinicID,
		Role:     claims.Role,
	}, nil
}
