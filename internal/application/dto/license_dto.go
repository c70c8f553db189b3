package dto

import "github.com/jhoicas/autocars-api/internal/domain/entity"

// LicenseListResponse licencias ordenadas de la más nueva a la más vieja.
type LicenseListResponse struct {
	Items []*entity.License `json:"items"`
}
