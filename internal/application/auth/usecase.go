// Package auth implementa el administrador de identidad y sesión: login con
// degradación a credenciales locales, registro con código de admisión,
// cierre de sesión y recuperación de contraseña.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	"github.com/jhoicas/autocars-api/internal/application/ports"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
	"github.com/jhoicas/autocars-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase resuelve login/registro contra el servicio de identidad remoto
// o la caché local de credenciales, y establece la sesión de datos.
//
// Política cuando un mismo email existe remoto y local: el remoto es
// autoritativo mientras responda. Solo un fallo de transporte
// (ErrRemoteUnavailable) degrada a la caché local; una credencial inválida
// confirmada por el remoto falla el login sin intentar local — de lo
// contrario un password incorrecto quedaría enmascarado como "probar local".
type AuthUseCase struct {
	remote     ports.IdentityProvider // nil en modo puramente local
	localUsers ports.CredentialCache
	licenses   ports.LicenseStore
	sessions   *syncapp.Manager
	jwtCfg     JWTConfig
	masterKey  string
	log        zerolog.Logger
}

// NewAuthUseCase construye el caso de uso. remote puede ser nil (modo local).
func NewAuthUseCase(
	remote ports.IdentityProvider,
	localUsers ports.CredentialCache,
	licenses ports.LicenseStore,
	sessions *syncapp.Manager,
	jwtCfg JWTConfig,
	masterKey string,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		remote:     remote,
		localUsers: localUsers,
		licenses:   licenses,
		sessions:   sessions,
		jwtCfg:     jwtCfg,
		masterKey:  masterKey,
		log:        log,
	}
}

// Login autentica y establece la sesión de datos (carga inicial + feed).
// Remoto primero cuando está configurado; fallo de red degrada a la caché
// local en vez de fallar el login.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := uc.resolveIdentity(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return uc.establishSession(ctx, user)
}

// resolveIdentity decide qué fuente de identidad responde el login.
func (uc *AuthUseCase) resolveIdentity(ctx context.Context, email, secret string) (*entity.User, error) {
	if uc.remote != nil {
		user, err := uc.remote.SignIn(ctx, email, secret)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			// Respuesta definitiva del remoto (credencial inválida, cuenta
			// inexistente): no se enmascara probando local.
			return nil, err
		}
		uc.log.Warn().Err(err).Msg("identidad remota sin respuesta, degradando a credenciales locales")
	}
	return uc.localSignIn(email, secret)
}

// localSignIn compara contra la caché local (hash bcrypt).
func (uc *AuthUseCase) localSignIn(email, secret string) (*entity.User, error) {
	user, err := uc.localUsers.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Register valida el código de admisión, crea la cuenta y auto-inicia sesión.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.SessionResponse, error) {
	// Validación previa a cualquier I/O.
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	license, err := uc.checkAdmission(ctx, in.AdmissionCode)
	if err != nil {
		return nil, err
	}

	if existing, _ := uc.localUsers.FindByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		StoreName:    in.StoreName,
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
	}

	// Cuenta remota cuando hay servicio configurado; la caché local se escribe
	// siempre para que el respaldo de login offline exista desde el día uno.
	if uc.remote != nil {
		if err := uc.remote.CreateAccount(ctx, user, in.Password); err != nil {
			return nil, err
		}
	}
	if err := uc.localUsers.Append(user); err != nil {
		return nil, err
	}

	// Consumir la licencia DESPUÉS de crear la cuenta. Best-effort: no hay
	// transacción que abarque ambos escritos; si esto falla la licencia queda
	// reutilizable y solo se deja constancia en el log.
	if license != nil {
		if err := uc.licenses.MarkUsed(ctx, license.Key, user.Email); err != nil {
			uc.log.Error().Err(err).Str("license", license.Key).
				Msg("no se pudo marcar la licencia como usada")
		}
	}

	return uc.establishSession(ctx, user)
}

// checkAdmission acepta la clave maestra o una licencia con estado
// "available". Devuelve la licencia consumible (nil si entró por clave
// maestra). Usada, revocada o desconocida rechazan el registro.
func (uc *AuthUseCase) checkAdmission(ctx context.Context, code string) (*entity.License, error) {
	if code == "" {
		return nil, domain.ErrInvalidLicense
	}
	if uc.masterKey != "" && code == uc.masterKey {
		return nil, nil
	}
	lic, err := uc.licenses.GetByKey(ctx, code)
	if err != nil {
		return nil, err
	}
	if lic == nil {
		return nil, domain.ErrInvalidLicense
	}
	if lic.Status != entity.LicenseAvailable {
		return nil, domain.ErrLicenseUsed
	}
	return lic, nil
}

// Logout descarta la sesión de datos. Lo persistido queda intacto.
func (uc *AuthUseCase) Logout(userID string) {
	uc.sessions.EndSession(userID)
	uc.log.Info().Str("user_id", userID).Msg("sesión cerrada, memoria volátil liberada")
}

// ResetPassword delega en el servicio remoto. En modo local no existe una
// implementación segura (recuperar el secreto implicaría exponerlo).
func (uc *AuthUseCase) ResetPassword(ctx context.Context, email string) error {
	if uc.remote == nil {
		return domain.ErrLocalOnly
	}
	return uc.remote.SendPasswordReset(ctx, email)
}

// establishSession emite el JWT y dispara la carga de datos de la cuenta.
func (uc *AuthUseCase) establishSession(ctx context.Context, user *entity.User) (*dto.SessionResponse, error) {
	router, err := uc.sessions.StartSession(ctx, *user)
	if err != nil {
		return nil, err
	}

	role := user.Role
	if role == "" {
		role = entity.RoleUser
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	mode := ports.BackendLocal
	if router.State() == syncapp.StateSyncedRemote {
		mode = ports.BackendRemote
	}
	return &dto.SessionResponse{
		Token:    token,
		User:     toUserResponse(user),
		SyncMode: mode,
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	role := u.Role
	if role == "" {
		role = entity.RoleUser
	}
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		StoreName: u.StoreName,
		Role:      role,
		CreatedAt: u.CreatedAt,
	}
}
