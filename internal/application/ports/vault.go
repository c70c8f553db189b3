package ports

import "context"

// FileVault es el puerto del respaldo de archivos en la nube. El nombre es
// fijo por contrato: un segundo respaldo sobrescribe al primero, sin versionado.
type FileVault interface {
	Upload(ctx context.Context, name string, content []byte) error
	Download(ctx context.Context, name string) ([]byte, error)
}

// TokenStore persiste el bearer token obtenido en el flujo authorize-redirect.
// Un 401 del proveedor borra el token y obliga a re-autorizar.
type TokenStore interface {
	Token() (string, error)
	SaveToken(token string) error
	ClearToken() error
}
