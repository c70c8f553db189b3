package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User representa una cuenta. Cada cuenta es dueña de exactamente un Dataset
// (colecciones + perfil) identificado por su ID.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"` // bcrypt, nunca texto plano
	StoreName    string    `json:"storeName"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// Public devuelve una copia sin el hash de la contraseña, apta para respuestas y respaldos.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
