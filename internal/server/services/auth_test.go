package services

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gatehouse-dev/gatehouse/internal/common"
	"github.com/gatehouse-dev/gatehouse/internal/logging"
	"github.com/gatehouse-dev/gatehouse/internal/server/auth"
	"github.com/gatehouse-dev/gatehouse/internal/server/models"
)

type fakeRepo struct {
	createFn func(ctx context.Context, email, passwordHash string) (*models.User, error)
	findFn   func(ctx context.Context, email string) (*models.User, error)
}

func (f *fakeRepo) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	return f.createFn(ctx, email, passwordHash)
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findFn(ctx, email)
}

type fakeHasher struct {
	hashFn   func(password string) (string, error)
	verifyFn func(password, encoded string) (bool, error)
}

func (f *fakeHasher) Hash(password string) (string, error) {
	return f.hashFn(password)
}

func (f *fakeHasher) Verify(password, encoded string) (bool, error) {
	return f.verifyFn(password, encoded)
}

type fakeIssuer struct {
	issueFn func(subject string) (string, error)
}

func (f *fakeIssuer) Issue(subject string) (string, error) {
	return f.issueFn(subject)
}

// memRepo is an in-memory users.Repository for end-to-end scenarios.
type memRepo struct {
	mu    sync.Mutex
	next  int64
	users map[string]*models.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*models.User)}
}

func (m *memRepo) Create(_ context.Context, email, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	m.next++
	u := &models.User{ID: m.next, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	m.users[email] = u
	return u, nil
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	_, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	issuer, err := auth.NewTokenIssuer(private, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer error: %v", err)
	}
	return issuer
}

func okHasher() *fakeHasher {
	return &fakeHasher{
		hashFn:   func(string) (string, error) { return "$argon2id$hash", nil },
		verifyFn: func(password, _ string) (bool, error) { return password == "good", nil },
	}
}

func okIssuer() *fakeIssuer {
	return &fakeIssuer{issueFn: func(string) (string, error) { return "token", nil }}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		createFn: func(_ context.Context, email, passwordHash string) (*models.User, error) {
			if passwordHash != "$argon2id$hash" {
				t.Fatalf("unexpected hash passed to store: %q", passwordHash)
			}
			return &models.User{ID: 1, Email: email, PasswordHash: passwordHash}, nil
		},
	}
	svc := NewAuthService(repo, okHasher(), okIssuer(), testLogger())

	user, err := svc.Register(context.Background(), "a@x.com", "good")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID != 1 || user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestRegister_EmailExists(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		createFn: func(context.Context, string, string) (*models.User, error) {
			return nil, common.ErrorAlreadyExists
		},
	}
	svc := NewAuthService(repo, okHasher(), okIssuer(), testLogger())

	_, err := svc.Register(context.Background(), "a@x.com", "good")
	if !errors.Is(err, common.ErrorEmailExists) {
		t.Fatalf("want ErrorEmailExists, got %v", err)
	}
}

func TestRegister_StoreUnavailable(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		createFn: func(context.Context, string, string) (*models.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewAuthService(repo, okHasher(), okIssuer(), testLogger())

	_, err := svc.Register(context.Background(), "a@x.com", "good")
	if !errors.Is(err, common.ErrorStoreUnavailable) {
		t.Fatalf("want ErrorStoreUnavailable, got %v", err)
	}
}

func TestRegister_HashingFailure(t *testing.T) {
	t.Parallel()

	hasher := &fakeHasher{
		hashFn: func(string) (string, error) { return "", errors.New("entropy exhausted") },
	}
	svc := NewAuthService(&fakeRepo{}, hasher, okIssuer(), testLogger())

	_, err := svc.Register(context.Background(), "a@x.com", "good")
	if !errors.Is(err, common.ErrorHashing) {
		t.Fatalf("want ErrorHashing, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		findFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, PasswordHash: "$argon2id$hash"}, nil
		},
	}
	issuer := &fakeIssuer{issueFn: func(subject string) (string, error) {
		if subject != "a@x.com" {
			t.Fatalf("unexpected subject: %q", subject)
		}
		return "signed-token", nil
	}}
	svc := NewAuthService(repo, okHasher(), issuer, testLogger())

	token, err := svc.Login(context.Background(), "a@x.com", "good")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token != "signed-token" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestLogin_UnknownUserAndWrongPassword_Indistinguishable(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		findFn: func(_ context.Context, email string) (*models.User, error) {
			if email == "missing@x.com" {
				return nil, common.ErrorNotFound
			}
			return &models.User{ID: 1, Email: email, PasswordHash: "$argon2id$hash"}, nil
		},
	}
	svc := NewAuthService(repo, okHasher(), okIssuer(), testLogger())

	_, errMissing := svc.Login(context.Background(), "missing@x.com", "good")
	_, errWrongPw := svc.Login(context.Background(), "a@x.com", "bad")

	if !errors.Is(errMissing, common.ErrorInvalidCredentials) {
		t.Fatalf("unknown user: want ErrorInvalidCredentials, got %v", errMissing)
	}
	if !errors.Is(errWrongPw, common.ErrorInvalidCredentials) {
		t.Fatalf("wrong password: want ErrorInvalidCredentials, got %v", errWrongPw)
	}
	if errMissing.Error() != errWrongPw.Error() {
		t.Fatalf("errors must be indistinguishable: %q vs %q", errMissing, errWrongPw)
	}
}

func TestLogin_StoreUnavailable(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		findFn: func(context.Context, string) (*models.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewAuthService(repo, okHasher(), okIssuer(), testLogger())

	_, err := svc.Login(context.Background(), "a@x.com", "good")
	if !errors.Is(err, common.ErrorStoreUnavailable) {
		t.Fatalf("want ErrorStoreUnavailable, got %v", err)
	}
}

func TestLogin_MalformedStoredHash(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		findFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, PasswordHash: "not-a-phc-hash"}, nil
		},
	}
	svc := NewAuthService(repo, auth.NewArgon2idHasher(), okIssuer(), testLogger())

	_, err := svc.Login(context.Background(), "a@x.com", "good")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want ErrorInternal, got %v", err)
	}
}

func TestLogin_SigningFailure(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		findFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, PasswordHash: "$argon2id$hash"}, nil
		},
	}
	issuer := &fakeIssuer{issueFn: func(string) (string, error) {
		return "", common.ErrorSigning
	}}
	svc := NewAuthService(repo, okHasher(), issuer, testLogger())

	_, err := svc.Login(context.Background(), "a@x.com", "good")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want ErrorInternal, got %v", err)
	}
}

func TestRegisterThenLogin_FullStack(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(t)
	svc := NewAuthService(newMemRepo(), auth.NewArgon2idHasher(), issuer, testLogger())
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@x.com", "hunter2!")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.PasswordHash == "hunter2!" || !strings.HasPrefix(user.PasswordHash, "$argon2id$") {
		t.Fatalf("stored credential is not a self-describing hash: %q", user.PasswordHash)
	}

	if _, err := svc.Register(ctx, "a@x.com", "other"); !errors.Is(err, common.ErrorEmailExists) {
		t.Fatalf("duplicate register: want ErrorEmailExists, got %v", err)
	}

	token, err := svc.Login(ctx, "a@x.com", "hunter2!")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "a@x.com")
	}

	if _, err := svc.Login(ctx, "a@x.com", "wrong"); !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("wrong password: want ErrorInvalidCredentials, got %v", err)
	}
}
