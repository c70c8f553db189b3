// Package dropbox implementa el puerto FileVault contra la Content API de
// Dropbox. El token viene del flujo authorize-redirect y vive en el TokenStore.
package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/autocars-api/internal/application/ports"
	"github.com/jhoicas/autocars-api/internal/domain"
)

var _ ports.FileVault = (*Client)(nil)

const (
	uploadURL   = "https://content.dropboxapi.com/2/files/upload"
	downloadURL = "https://content.dropboxapi.com/2/files/download"
)

// Client adaptador de Dropbox. Un 401 del proveedor invalida el token
// almacenado: el usuario debe re-autorizar antes del próximo respaldo.
type Client struct {
	tokens     ports.TokenStore
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el adaptador.
func NewClient(tokens ports.TokenStore, log zerolog.Logger) *Client {
	return &Client{
		tokens: tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// apiArg es el header Dropbox-API-Arg de la Content API.
type apiArg struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

// Upload sube el archivo con modo overwrite: el respaldo es un único archivo
// con nombre fijo, cada subida reemplaza a la anterior.
func (c *Client) Upload(ctx context.Context, name string, content []byte) error {
	arg, err := json.Marshal(apiArg{Path: "/" + name, Mode: "overwrite"})
	if err != nil {
		return fmt.Errorf("dropbox: serializar arg: %w", err)
	}
	resp, err := c.do(ctx, uploadURL, string(arg), "application/octet-stream", bytes.NewReader(content))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.asError(resp)
	}
	c.log.Info().Str("file", name).Msg("respaldo subido a la nube")
	return nil
}

// Download baja el archivo. ErrNotFound cuando nunca se subió un respaldo.
func (c *Client) Download(ctx context.Context, name string) ([]byte, error) {
	arg, err := json.Marshal(apiArg{Path: "/" + name})
	if err != nil {
		return nil, fmt.Errorf("dropbox: serializar arg: %w", err)
	}
	resp, err := c.do(ctx, downloadURL, string(arg), "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// 409 en download es path/not_found: no existe el respaldo todavía.
		if resp.StatusCode == http.StatusConflict {
			return nil, domain.ErrNotFound
		}
		return nil, c.asError(resp)
	}
	content, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("dropbox: leer respuesta: %w", err)
	}
	return content, nil
}

// do arma y ejecuta la llamada con el bearer token vigente.
func (c *Client) do(ctx context.Context, url, arg, contentType string, body io.Reader) (*http.Response, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("dropbox: leer token: %w", err)
	}
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	if body == nil {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("dropbox: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Dropbox-API-Arg", arg)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dropbox: llamada HTTP fallida: %w", err)
	}
	return resp, nil
}

// asError traduce respuestas no-200. 401 borra el token local: la sesión del
// proveedor expiró y conservarlo solo repetiría el fallo.
func (c *Client) asError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.ClearToken(); err != nil {
			c.log.Error().Err(err).Msg("no se pudo borrar el token expirado")
		}
		return domain.ErrUnauthorized
	}
	return fmt.Errorf("dropbox: HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
}
