package auth_test

import (
	"context"
	stdsync "sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/autocars-api/internal/application/auth"
	"github.com/jhoicas/autocars-api/internal/application/dto"
	"github.com/jhoicas/autocars-api/internal/application/ports"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/domain"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeIdentity servicio de identidad remoto con respuestas programadas.
type fakeIdentity struct {
	signInUser *entity.User
	signInErr  error
	createErr  error
	created    []*entity.User
	resetCalls []string
}

func (f *fakeIdentity) SignIn(_ context.Context, _, _ string) (*entity.User, error) {
	return f.signInUser, f.signInErr
}

func (f *fakeIdentity) CreateAccount(_ context.Context, u *entity.User, _ string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, u)
	return nil
}

func (f *fakeIdentity) SendPasswordReset(_ context.Context, email string) error {
	f.resetCalls = append(f.resetCalls, email)
	return nil
}

// fakeCache caché local de credenciales en memoria.
type fakeCache struct {
	users []*entity.User
}

func (f *fakeCache) FindByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeCache) Append(u *entity.User) error {
	f.users = append(f.users, u)
	return nil
}

// fakeLicenses almacén de licencias en memoria.
type fakeLicenses struct {
	licenses map[string]*entity.License
	usedBy   map[string]string
}

func newFakeLicenses() *fakeLicenses {
	return &fakeLicenses{licenses: map[string]*entity.License{}, usedBy: map[string]string{}}
}

func (f *fakeLicenses) GetByKey(_ context.Context, key string) (*entity.License, error) {
	return f.licenses[key], nil
}

func (f *fakeLicenses) Create(_ context.Context, lic *entity.License) error {
	f.licenses[lic.Key] = lic
	return nil
}

func (f *fakeLicenses) List(_ context.Context) ([]*entity.License, error) {
	out := make([]*entity.License, 0, len(f.licenses))
	for _, lic := range f.licenses {
		out = append(out, lic)
	}
	return out, nil
}

func (f *fakeLicenses) MarkUsed(_ context.Context, key, usedBy string) error {
	f.usedBy[key] = usedBy
	f.licenses[key].Status = entity.LicenseUsed
	return nil
}

func (f *fakeLicenses) Revoke(_ context.Context, key string) error {
	f.licenses[key].Status = entity.LicenseRevoked
	return nil
}

// memBackend persistencia mínima en memoria para las sesiones de datos.
type memBackend struct {
	kind string
	mu   stdsync.Mutex
	data map[string]*entity.Dataset
}

func newMemBackend(kind string) *memBackend {
	return &memBackend{kind: kind, data: map[string]*entity.Dataset{}}
}

func (b *memBackend) Kind() string { return b.kind }

func (b *memBackend) Load(_ context.Context, userID string) (*entity.Dataset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ds, ok := b.data[userID]
	if !ok {
		return nil, nil
	}
	return ds.Clone(), nil
}

func (b *memBackend) Save(_ context.Context, userID string, ds *entity.Dataset) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[userID] = ds.Clone()
	return nil
}

func (b *memBackend) SaveCollections(_ context.Context, userID string, patch entity.DatasetPatch) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ds, ok := b.data[userID]
	if !ok {
		ds = &entity.Dataset{}
	}
	patch.Apply(ds)
	b.data[userID] = ds
	return nil
}

func (b *memBackend) Subscribe(_ context.Context, _ string, _ func(*entity.Dataset), _ func(error)) (func(), error) {
	return func() {}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción del caso de uso
// ──────────────────────────────────────────────────────────────────────────────

const (
	testEmail    = "dueno@tienda.com"
	testPassword = "secreto123"
	masterKey    = "MASTER-2024"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "autocars-test"}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func cachedUser(t *testing.T) *entity.User {
	t.Helper()
	return &entity.User{
		ID:           "u1",
		Email:        testEmail,
		PasswordHash: hashOf(t, testPassword),
		StoreName:    "AutoCars",
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
	}
}

func buildUC(remote ports.IdentityProvider, cache *fakeCache, lics *fakeLicenses, backendKind string) *auth.AuthUseCase {
	sessions := syncapp.NewManager(newMemBackend(backendKind), zerolog.Nop())
	return auth.NewAuthUseCase(remote, cache, lics, sessions, jwtCfg, masterKey, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ModoLocalConHashCorrecto(t *testing.T) {
	cache := &fakeCache{users: []*entity.User{cachedUser(t)}}
	uc := buildUC(nil, cache, newFakeLicenses(), ports.BackendLocal)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, ports.BackendLocal, out.SyncMode)
	assert.Equal(t, testEmail, out.User.Email)
}

func TestLogin_ModoLocalPasswordIncorrecto(t *testing.T) {
	cache := &fakeCache{users: []*entity.User{cachedUser(t)}}
	uc := buildUC(nil, cache, newFakeLicenses(), ports.BackendLocal)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_ModoLocalCuentaInexistente(t *testing.T) {
	uc := buildUC(nil, &fakeCache{}, newFakeLicenses(), ports.BackendLocal)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@x.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_RemotoRespondeYGanaSobreLocal(t *testing.T) {
	remote := &fakeIdentity{signInUser: cachedUser(t)}
	cache := &fakeCache{} // vacío: si degradara a local fallaría
	uc := buildUC(remote, cache, newFakeLicenses(), ports.BackendRemote)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, ports.BackendRemote, out.SyncMode)
}

func TestLogin_CredencialInvalidaRemotaNoDegradaALocal(t *testing.T) {
	remote := &fakeIdentity{signInErr: domain.ErrInvalidCredentials}
	// La caché local SÍ aceptaría este password; el remoto manda igual.
	cache := &fakeCache{users: []*entity.User{cachedUser(t)}}
	uc := buildUC(remote, cache, newFakeLicenses(), ports.BackendRemote)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials,
		"una respuesta definitiva del remoto no se enmascara probando local")
}

func TestLogin_FalloDeTransporteDegradaALocal(t *testing.T) {
	remote := &fakeIdentity{signInErr: domain.ErrRemoteUnavailable}
	cache := &fakeCache{users: []*entity.User{cachedUser(t)}}
	uc := buildUC(remote, cache, newFakeLicenses(), ports.BackendRemote)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err, "el fallo de red degrada a la caché local en vez de fallar")
	assert.NotEmpty(t, out.Token)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y admisión
// ──────────────────────────────────────────────────────────────────────────────

func registerReq(code string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:           "nuevo@tienda.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		StoreName:       "Tienda Nueva",
		AdmissionCode:   code,
	}
}

func TestRegister_ConClaveMaestra(t *testing.T) {
	cache := &fakeCache{}
	uc := buildUC(nil, cache, newFakeLicenses(), ports.BackendLocal)

	out, err := uc.Register(context.Background(), registerReq(masterKey))
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token, "el registro auto-inicia sesión")
	assert.Equal(t, entity.RoleUser, out.User.Role)

	stored, err := cache.FindByEmail("nuevo@tienda.com")
	require.NoError(t, err)
	require.NotNil(t, stored, "la caché local siempre recibe la cuenta nueva")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(testPassword)),
		"la caché guarda hash bcrypt, nunca texto plano")
}

func TestRegister_ConLicenciaDisponibleLaConsume(t *testing.T) {
	lics := newFakeLicenses()
	lics.licenses["LIC-ABCD1234"] = &entity.License{Key: "LIC-ABCD1234", Status: entity.LicenseAvailable}
	uc := buildUC(nil, &fakeCache{}, lics, ports.BackendLocal)

	_, err := uc.Register(context.Background(), registerReq("LIC-ABCD1234"))
	require.NoError(t, err)
	assert.Equal(t, entity.LicenseUsed, lics.licenses["LIC-ABCD1234"].Status)
	assert.Equal(t, "nuevo@tienda.com", lics.usedBy["LIC-ABCD1234"])
}

func TestRegister_LicenciaUsadaRechaza(t *testing.T) {
	lics := newFakeLicenses()
	lics.licenses["LIC-USADA"] = &entity.License{Key: "LIC-USADA", Status: entity.LicenseUsed}
	uc := buildUC(nil, &fakeCache{}, lics, ports.BackendLocal)

	_, err := uc.Register(context.Background(), registerReq("LIC-USADA"))
	assert.ErrorIs(t, err, domain.ErrLicenseUsed)
}

func TestRegister_CodigoDesconocidoRechaza(t *testing.T) {
	uc := buildUC(nil, &fakeCache{}, newFakeLicenses(), ports.BackendLocal)

	_, err := uc.Register(context.Background(), registerReq("CUALQUIER-COSA"))
	assert.ErrorIs(t, err, domain.ErrInvalidLicense)

	_, err = uc.Register(context.Background(), registerReq(""))
	assert.ErrorIs(t, err, domain.ErrInvalidLicense)
}

func TestRegister_ValidacionesDeEntrada(t *testing.T) {
	uc := buildUC(nil, &fakeCache{}, newFakeLicenses(), ports.BackendLocal)

	in := registerReq(masterKey)
	in.ConfirmPassword = "distinto"
	_, err := uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = registerReq(masterKey)
	in.Password = "corta"
	in.ConfirmPassword = "corta"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDuplicadoRechaza(t *testing.T) {
	existing := cachedUser(t)
	existing.Email = "nuevo@tienda.com"
	cache := &fakeCache{users: []*entity.User{existing}}
	uc := buildUC(nil, cache, newFakeLicenses(), ports.BackendLocal)

	_, err := uc.Register(context.Background(), registerReq(masterKey))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_ConRemotoCreaEnAmbosLados(t *testing.T) {
	remote := &fakeIdentity{}
	cache := &fakeCache{}
	uc := buildUC(remote, cache, newFakeLicenses(), ports.BackendRemote)

	_, err := uc.Register(context.Background(), registerReq(masterKey))
	require.NoError(t, err)
	assert.Len(t, remote.created, 1)
	stored, _ := cache.FindByEmail("nuevo@tienda.com")
	assert.NotNil(t, stored, "la caché local se escribe siempre, también en modo remoto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recuperación de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestResetPassword_ModoLocalNoDisponible(t *testing.T) {
	uc := buildUC(nil, &fakeCache{}, newFakeLicenses(), ports.BackendLocal)
	err := uc.ResetPassword(context.Background(), testEmail)
	assert.ErrorIs(t, err, domain.ErrLocalOnly)
}

func TestResetPassword_DelegaEnElRemoto(t *testing.T) {
	remote := &fakeIdentity{}
	uc := buildUC(remote, &fakeCache{}, newFakeLicenses(), ports.BackendRemote)

	require.NoError(t, uc.ResetPassword(context.Background(), testEmail))
	assert.Equal(t, []string{testEmail}, remote.resetCalls)
}
