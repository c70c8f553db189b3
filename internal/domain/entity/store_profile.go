package entity

import "github.com/shopspring/decimal"

// StoreProfile es el perfil singleton de la tienda por cuenta.
type StoreProfile struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	TargetMargin decimal.Decimal `json:"targetMargin"` // porcentaje meta de margen neto, 0–100
}

// DefaultStoreProfile construye el perfil inicial de una cuenta nueva.
// La meta de margen arranca en 20%, igual que el cliente histórico.
func DefaultStoreProfile(storeName, email string) StoreProfile {
	return StoreProfile{
		Name:         storeName,
		Email:        email,
		TargetMargin: decimal.NewFromInt(20),
	}
}
