package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeStore struct {
	accounts  map[int64]Account
	lookupErr error
	updateErr error
	lookups   int
}

func newFakeStore(accounts ...Account) *fakeStore {
	store := &fakeStore{accounts: map[int64]Account{}}
	for _, a := range accounts {
		store.accounts[a.ID] = a
	}
	return store
}

func (f *fakeStore) FindAccountByEmail(_ context.Context, email string) (Account, error) {
	f.lookups++
	if f.lookupErr != nil {
		return Account{}, f.lookupErr
	}
	for _, a := range f.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

func (f *fakeStore) AccountByID(_ context.Context, id int64) (Account, error) {
	if f.lookupErr != nil {
		return Account{}, f.lookupErr
	}
	a, ok := f.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeStore) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	a := f.accounts[id]
	a.PasswordHash = hash
	f.accounts[id] = a
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return hash
}

func newTestService(store StoreAPI) *Service {
	return NewService(store, NewIssuer("test-secret", 24*time.Hour))
}

func TestLoginRequiresCredentials(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	for _, tc := range []struct{ email, password string }{{"", "x"}, {"a@x.io", ""}, {"  ", "x"}} {
		if _, err := svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, ErrCredentialsRequired) {
			t.Fatalf("expected credentials required, got %v", err)
		}
	}
	if store.lookups != 0 {
		t.Fatalf("expected no lookups, got %d", store.lookups)
	}
}

func TestLoginRoles(t *testing.T) {
	hash := mustHash(t, "pw")
	tests := []struct {
		name      string
		account   Account
		wantRole  string
		wantAdmin bool
	}{
		{
			name:      "administrator",
			account:   Account{ID: 1, Kind: KindAdmin, Email: "root@x.io", PasswordHash: hash, Role: RoleAdmin, Status: StatusActive},
			wantRole:  RoleAdmin,
			wantAdmin: true,
		},
		{
			name:     "plain employee",
			account:  Account{ID: 2, Kind: KindEmployee, Email: "e@x.io", PasswordHash: hash, Role: RoleEmployee, Status: StatusActive, EmployeeID: int64Ptr(10)},
			wantRole: RoleEmployee,
		},
		{
			name:     "department head overrides stored role",
			account:  Account{ID: 3, Kind: KindEmployee, Email: "h@x.io", PasswordHash: hash, Role: RoleEmployee, Status: StatusActive, EmployeeID: int64Ptr(11), IsHead: true},
			wantRole: RoleHead,
		},
		{
			name:     "hr officer keeps stored role",
			account:  Account{ID: 4, Kind: KindEmployee, Email: "hr@x.io", PasswordHash: hash, Role: RoleHROfficer, Status: StatusActive, EmployeeID: int64Ptr(12)},
			wantRole: RoleHROfficer,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(newFakeStore(tc.account))
			result, err := svc.Login(context.Background(), strings.ToUpper(tc.account.Email), "pw")
			if err != nil {
				t.Fatalf("login error: %v", err)
			}
			if result.User.Role != tc.wantRole || result.User.IsAdmin != tc.wantAdmin {
				t.Fatalf("unexpected user: %+v", result.User)
			}
			claims, err := svc.Tokens.Parse(result.Token)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if claims.Role != tc.wantRole || claims.IsAdmin != tc.wantAdmin || claims.AccountID != tc.account.ID {
				t.Fatalf("unexpected claims: %+v", claims)
			}
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	hash := mustHash(t, "pw")
	store := newFakeStore(
		Account{ID: 1, Kind: KindEmployee, Email: "e@x.io", PasswordHash: hash, Role: RoleEmployee, Status: StatusActive, EmployeeID: int64Ptr(1)},
		Account{ID: 2, Kind: KindEmployee, Email: "off@x.io", PasswordHash: hash, Role: RoleEmployee, Status: StatusInactive, EmployeeID: int64Ptr(2)},
	)
	svc := newTestService(store)

	var messages []string
	for _, tc := range []struct{ email, password string }{
		{"nobody@x.io", "pw"},
		{"e@x.io", "wrong"},
		{"off@x.io", "pw"},
	} {
		_, err := svc.Login(context.Background(), tc.email, tc.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: expected invalid credentials, got %v", tc.email, err)
		}
		messages = append(messages, err.Error())
	}
	for _, msg := range messages[1:] {
		if msg != messages[0] {
			t.Fatalf("expected identical messages, got %q", messages)
		}
	}
}

func TestLoginStorageFailureIsNotBadCredentials(t *testing.T) {
	store := newFakeStore()
	store.lookupErr = errors.New("connection refused")
	_, err := newTestService(store).Login(context.Background(), "e@x.io", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(Account{ID: 5, Kind: KindEmployee, Email: "e@x.io", PasswordHash: mustHash(t, "HU005"), Role: RoleEmployee, Status: StatusActive, EmployeeID: int64Ptr(5)})
	svc := newTestService(store)

	if err := svc.ChangePassword(ctx, 5, "", "next"); !errors.Is(err, ErrPasswordsRequired) {
		t.Fatalf("expected required error, got %v", err)
	}
	if err := svc.ChangePassword(ctx, 99, "HU005", "next"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected unknown account rejected, got %v", err)
	}
	if err := svc.ChangePassword(ctx, 5, "wrong", "next"); !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected incorrect password, got %v", err)
	}
	if err := svc.ChangePassword(ctx, 5, "HU005", "next"); err != nil {
		t.Fatalf("change error: %v", err)
	}
	if _, err := svc.Login(ctx, "e@x.io", "HU005"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should fail, got %v", err)
	}
	if _, err := svc.Login(ctx, "e@x.io", "next"); err != nil {
		t.Fatalf("new password should work, got %v", err)
	}

	store.updateErr = errors.New("disk full")
	if err := svc.ChangePassword(ctx, 5, "next", "again"); err == nil || errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	store := newFakeStore(Account{ID: 5, Kind: KindEmployee, Email: "e@x.io", Role: RoleEmployee, FirstName: "Ana", EmployeeID: int64Ptr(5), EmployeeCode: "HU005", IsHead: true})
	profile, err := newTestService(store).Profile(context.Background(), 5)
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	if profile.Role != RoleHead || profile.EmployeeCode != "HU005" || profile.FirstName != "Ana" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if _, err := newTestService(store).Profile(context.Background(), 6); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
