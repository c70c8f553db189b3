package entity

import "time"

// Estados de License.
const (
	LicenseAvailable = "available"
	LicenseUsed      = "used"
	LicenseRevoked   = "revoked"
)

// License es una clave de acceso pre-generada. Solo actúa como control de
// admisión en el registro; después de consumida no se vuelve a consultar.
type License struct {
	Key         string     `json:"key"`
	Status      string     `json:"status"`
	GeneratedBy string     `json:"generatedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UsedBy      string     `json:"usedBy,omitempty"`
	UsedAt      *time.Time `json:"usedAt,omitempty"`
}
