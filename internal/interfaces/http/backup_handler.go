package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autocars-api/internal/application/backup"
	"github.com/jhoicas/autocars-api/internal/application/dto"
	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// BackupHandler exportación e importación del dataset completo, local o nube.
type BackupHandler struct {
	uc     *backup.UseCase
	users  ports.CredentialCache
	tokens ports.TokenStore
	appKey string
}

// NewBackupHandler construye el handler de respaldos. appKey es el client_id
// del flujo authorize-redirect del proveedor de archivos.
func NewBackupHandler(uc *backup.UseCase, users ports.CredentialCache, tokens ports.TokenStore, appKey string) *BackupHandler {
	return &BackupHandler{uc: uc, users: users, tokens: tokens, appKey: appKey}
}

// owner reconstruye la cuenta para los metadatos del documento. La caché local
// siempre tiene la cuenta (se escribe en todo registro); si faltara, los
// claims del token alcanzan.
func (h *BackupHandler) owner(c *fiber.Ctx) entity.User {
	if u, err := h.users.FindByEmail(GetEmail(c)); err == nil && u != nil {
		return *u
	}
	return entity.User{ID: GetUserID(c), Email: GetEmail(c), Role: GetRole(c)}
}

// Export godoc
// @Summary      Exportar respaldo
// @Description  Documento JSON portátil con las cuatro colecciones, el perfil y metadatos de la cuenta.
// @Tags         backup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BackupDocument
// @Router       /api/backup/export [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	content, err := h.uc.Export(GetUserID(c), h.owner(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="backup_autocars.json"`)
	return c.Send(content)
}

// Import godoc
// @Summary      Importar respaldo
// @Description  Acepta documentos parciales: una clave ausente deja la colección intacta. Un documento ilegible no toca el estado.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BackupDocument  true  "documento de respaldo"
// @Success      200   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/backup/import [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	result, err := h.uc.Import(c.Context(), GetUserID(c), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ExportToCloud godoc
// @Summary      Subir respaldo a la nube
// @Description  Sube el documento bajo el nombre fijo configurado; el respaldo anterior se sobrescribe.
// @Tags         backup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/backup/cloud/export [post]
func (h *BackupHandler) ExportToCloud(c *fiber.Ctx) error {
	if err := h.uc.ExportToCloud(c.Context(), GetUserID(c), h.owner(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true, Message: "respaldo subido"})
}

// ImportFromCloud godoc
// @Summary      Restaurar respaldo desde la nube
// @Tags         backup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ImportResultDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/backup/cloud/import [post]
func (h *BackupHandler) ImportFromCloud(c *fiber.Ctx) error {
	result, err := h.uc.ImportFromCloud(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// AuthorizeURL godoc
// @Summary      URL de autorización del proveedor de archivos
// @Description  El cliente abre esta URL, autoriza y entrega el token resultante en POST /api/backup/cloud/token.
// @Tags         backup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatusResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/backup/cloud/authorize [get]
func (h *BackupHandler) AuthorizeURL(c *fiber.Ctx) error {
	if h.appKey == "" {
		return respondError(c, domain.ErrLocalOnly)
	}
	u := "https://www.dropbox.com/oauth2/authorize?client_id=" + url.QueryEscape(h.appKey) + "&response_type=token"
	return c.JSON(dto.StatusResponse{OK: true, Message: u})
}

// cloudTokenRequest cuerpo de POST /api/backup/cloud/token.
type cloudTokenRequest struct {
	Token string `json:"token"`
}

// SaveCloudToken godoc
// @Summary      Guardar token del proveedor de archivos
// @Description  Cierra el flujo authorize-redirect: el cliente entrega el bearer token obtenido.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/backup/cloud/token [post]
func (h *BackupHandler) SaveCloudToken(c *fiber.Ctx) error {
	var in cloudTokenRequest
	if err := c.BodyParser(&in); err != nil || in.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token es requerido"})
	}
	if err := h.tokens.SaveToken(in.Token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true, Message: "proveedor de archivos conectado"})
}

// ClearCloudToken godoc
// @Summary      Desconectar el proveedor de archivos
// @Tags         backup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/backup/cloud/token [delete]
func (h *BackupHandler) ClearCloudToken(c *fiber.Ctx) error {
	if err := h.tokens.ClearToken(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true, Message: "proveedor de archivos desconectado"})
}
