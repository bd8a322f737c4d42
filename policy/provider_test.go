package policy

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/techmaster-vietnam/sapkit/config"
	"github.com/techmaster-vietnam/sapkit/contracts"
	"github.com/techmaster-vietnam/sapkit/models"
)

// mockResolver đếm số lần Resolve được gọi để kiểm tra single in-flight
type mockResolver struct {
	user  *models.User
	err   error
	calls int32
}

func (m *mockResolver) Resolve(ctx context.Context) (*models.User, error) {
	atomic.AddInt32(&m.calls, 1)
	return m.user, m.err
}

func newLoadedProvider(t *testing.T, user *models.User) *Provider {
	t.Helper()
	p := NewProvider(DefaultTable(), &mockResolver{user: user}, config.DefaultRoleName)
	p.Load(context.Background())
	return p
}

func TestProvider_EffectiveRolePrecedence(t *testing.T) {
	tests := []struct {
		name         string
		user         *models.User
		expectedRole string
		expectedOK   bool
	}{
		{
			name:         "builtin admin wins over custom role",
			user:         &models.User{Role: models.BuiltinRoleAdmin, CustomRole: "Sales Manager"},
			expectedRole: "Admin",
			expectedOK:   true,
		},
		{
			name:         "custom role when not admin",
			user:         &models.User{Role: models.BuiltinRoleUser, CustomRole: "Inventory Clerk"},
			expectedRole: "Inventory Clerk",
			expectedOK:   true,
		},
		{
			name:         "default role when no custom role",
			user:         &models.User{Role: models.BuiltinRoleUser},
			expectedRole: config.DefaultRoleName,
			expectedOK:   true,
		},
		{
			name:       "anonymous has no role",
			user:       nil,
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newLoadedProvider(t, tt.user)
			role, ok := p.EffectiveRole()
			if ok != tt.expectedOK {
				t.Fatalf("EffectiveRole() ok = %v, expected %v", ok, tt.expectedOK)
			}
			if ok && role != tt.expectedRole {
				t.Errorf("EffectiveRole() = %q, expected %q", role, tt.expectedRole)
			}
		})
	}
}

func TestProvider_QueriesWhileLoading(t *testing.T) {
	// Chưa gọi Load: mọi câu hỏi phải trả về false, không panic
	p := NewProvider(DefaultTable(), &mockResolver{}, config.DefaultRoleName)

	if !p.Loading() {
		t.Fatal("Expected provider to be loading before Load is called")
	}
	if _, ok := p.EffectiveRole(); ok {
		t.Error("EffectiveRole() should not resolve while loading")
	}
	if p.CanAccessModule(contracts.ModuleDashboard) {
		t.Error("CanAccessModule() should be false while loading")
	}
	if p.CanPerformAction("dashboard", contracts.ActionView) {
		t.Error("CanPerformAction() should be false while loading")
	}
	if p.IsAdmin() {
		t.Error("IsAdmin() should be false while loading")
	}
}

func TestProvider_ResolverErrorIsAnonymousButInspectable(t *testing.T) {
	resolverErr := errors.New("session backend unavailable")
	p := NewProvider(DefaultTable(), &mockResolver{err: resolverErr}, config.DefaultRoleName)
	p.Load(context.Background())

	if p.Loading() {
		t.Fatal("Provider should be ready after Load even when the resolver fails")
	}
	if _, ok := p.EffectiveRole(); ok {
		t.Error("A failed session resolution must map to anonymous (no role)")
	}
	if p.CanAccessModule(contracts.ModuleDashboard) {
		t.Error("A failed session resolution must be default-deny")
	}
	if !errors.Is(p.SessionErr(), resolverErr) {
		t.Errorf("SessionErr() = %v, expected the resolver error to be inspectable", p.SessionErr())
	}
}

func TestProvider_SingleResolutionUnderConcurrency(t *testing.T) {
	resolver := &mockResolver{user: &models.User{Role: models.BuiltinRoleUser}}
	p := NewProvider(DefaultTable(), resolver, config.DefaultRoleName)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Load(context.Background())
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&resolver.calls); got != 1 {
		t.Errorf("Resolver called %d times, expected exactly 1", got)
	}
}

func TestProvider_PermissionQueries(t *testing.T) {
	p := newLoadedProvider(t, &models.User{Role: models.BuiltinRoleUser, CustomRole: "Sales Manager"})

	if !p.CanAccessModule(contracts.ModuleSales) {
		t.Error("Sales Manager should access Sales module")
	}
	if p.CanAccessModule(contracts.ModuleFinance) {
		t.Error("Sales Manager should not access Finance module")
	}
	if !p.CanPerformAction("sales", contracts.ActionEdit) {
		t.Error("Sales Manager should be allowed to edit sales")
	}
	if p.CanPerformAction("sales", contracts.ActionDelete) {
		t.Error("Sales Manager should not be allowed to delete sales")
	}
	if p.IsAdmin() {
		t.Error("Sales Manager is not Admin")
	}

	admin := newLoadedProvider(t, &models.User{Role: models.BuiltinRoleAdmin})
	if !admin.IsAdmin() {
		t.Error("Builtin admin should resolve to Admin")
	}
}

func TestNewStaticProvider(t *testing.T) {
	p := NewStaticProvider(DefaultTable(), &models.User{Role: models.BuiltinRoleAdmin}, config.DefaultRoleName)

	if p.Loading() {
		t.Fatal("Static provider must never be in loading state")
	}
	if !p.IsAdmin() {
		t.Error("Static provider should expose the pre-resolved user")
	}

	anon := NewStaticProvider(DefaultTable(), nil, config.DefaultRoleName)
	if anon.CanAccessModule(contracts.ModuleDashboard) {
		t.Error("Static provider with nil user must be default-deny")
	}
}
