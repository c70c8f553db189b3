// Package backup implementa la exportación e importación del dataset completo
// como documento portátil, en disco o contra el proveedor de archivos en la nube.
package backup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	"github.com/jhoicas/autocars-api/internal/application/ports"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// UseCase serializa y restaura el estado de una cuenta. El vault puede ser
// nil cuando el respaldo en la nube no está configurado.
type UseCase struct {
	sessions   *syncapp.Manager
	vault      ports.FileVault
	backupFile string
	log        zerolog.Logger
}

// NewUseCase construye el gateway de respaldo.
func NewUseCase(sessions *syncapp.Manager, vault ports.FileVault, backupFile string, log zerolog.Logger) *UseCase {
	return &UseCase{sessions: sessions, vault: vault, backupFile: backupFile, log: log}
}

// Export serializa el estado actual en memoria: las cuatro colecciones, el
// perfil, metadatos mínimos de la cuenta y la fecha de exportación. Todas las
// claves del documento se producen siempre.
func (uc *UseCase) Export(userID string, owner entity.User) ([]byte, error) {
	router, err := uc.sessions.Router(userID)
	if err != nil {
		return nil, err
	}
	ds, err := router.Snapshot()
	if err != nil {
		return nil, err
	}

	pub := owner.Public()
	doc := dto.BackupDocument{
		Vehicles:     &ds.Vehicles,
		Customers:    &ds.Customers,
		Sales:        &ds.Sales,
		Expenses:     &ds.Expenses,
		StoreProfile: &ds.StoreProfile,
		User:         &pub,
		ExportDate:   time.Now().Format(time.RFC3339),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import restaura desde un documento. Documentos parciales se aceptan: una
// clave ausente deja la colección actual intacta. Un documento ilegible se
// reporta como ErrCorruptData sin tocar el estado existente. Cuando el
// backend remoto está activo, lo importado se empuja corriente arriba.
func (uc *UseCase) Import(ctx context.Context, userID string, content []byte) (*dto.ImportResultDTO, error) {
	var doc dto.BackupDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		uc.log.Warn().Err(err).Msg("documento de respaldo ilegible, estado intacto")
		return nil, domain.ErrCorruptData
	}

	router, err := uc.sessions.Router(userID)
	if err != nil {
		return nil, err
	}

	patch := entity.DatasetPatch{
		Vehicles:     doc.Vehicles,
		Customers:    doc.Customers,
		Sales:        doc.Sales,
		Expenses:     doc.Expenses,
		StoreProfile: doc.StoreProfile,
	}
	if err := router.ReplaceCollections(ctx, patch); err != nil {
		return nil, err
	}

	result := &dto.ImportResultDTO{Applied: []string{}}
	if doc.Vehicles != nil {
		result.Applied = append(result.Applied, "vehicles")
	}
	if doc.Customers != nil {
		result.Applied = append(result.Applied, "customers")
	}
	if doc.Sales != nil {
		result.Applied = append(result.Applied, "sales")
	}
	if doc.Expenses != nil {
		result.Applied = append(result.Applied, "expenses")
	}
	if doc.StoreProfile != nil {
		result.Applied = append(result.Applied, "storeProfile")
	}
	return result, nil
}

// ExportToCloud sube el documento al proveedor bajo el nombre fijo
// configurado; el respaldo anterior se sobrescribe, sin versionado.
func (uc *UseCase) ExportToCloud(ctx context.Context, userID string, owner entity.User) error {
	if uc.vault == nil {
		return domain.ErrLocalOnly
	}
	content, err := uc.Export(userID, owner)
	if err != nil {
		return err
	}
	return uc.vault.Upload(ctx, uc.backupFile, content)
}

// ImportFromCloud baja el documento del proveedor y lo restaura.
func (uc *UseCase) ImportFromCloud(ctx context.Context, userID string) (*dto.ImportResultDTO, error) {
	if uc.vault == nil {
		return nil, domain.ErrLocalOnly
	}
	content, err := uc.vault.Download(ctx, uc.backupFile)
	if err != nil {
		return nil, err
	}
	return uc.Import(ctx, userID, content)
}
