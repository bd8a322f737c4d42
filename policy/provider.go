package policy

import (
	"context"
	"sync"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/sapkit/contracts"
	"github.com/techmaster-vietnam/sapkit/models"
)

// SessionResolver trả về user của session hiện tại.
// (nil, nil) nghĩa là không có user đăng nhập; error là lỗi hạ tầng khi
// resolve session (network, token store...). Provider map cả hai trường hợp
// về "không có quyền" nhưng error vẫn là giá trị first-class, đọc được qua
// SessionErr() thay vì bị nuốt trong exception.
type SessionResolver interface {
	Resolve(ctx context.Context) (*models.User, error)
}

// SessionResolverFunc adapter cho phép dùng function làm SessionResolver
type SessionResolverFunc func(ctx context.Context) (*models.User, error)

// Resolve implements SessionResolver
func (f SessionResolverFunc) Resolve(ctx context.Context) (*models.User, error) {
	return f(ctx)
}

// Provider là permission context theo session: resolve user đúng một lần,
// sau đó trả lời các câu hỏi phân quyền thuần túy từ policy table.
//
// Known limitation: không có cache invalidation — đổi role phải tạo Provider
// mới (với HTTP server là request mới).
type Provider struct {
	table       *Table
	resolver    SessionResolver
	defaultRole string

	once   sync.Once
	mu     sync.RWMutex
	loaded bool
	user   *models.User
	err    error
}

// NewProvider tạo provider với policy table, session resolver và default role.
// defaultRole là effective role cho user không có admin/custom role
// (config.DefaultRoleName trừ khi được override qua DEFAULT_ROLE).
func NewProvider(table *Table, resolver SessionResolver, defaultRole string) *Provider {
	return &Provider{
		table:       table,
		resolver:    resolver,
		defaultRole: defaultRole,
	}
}

// NewStaticProvider tạo provider cho user đã được resolve sẵn (request-scoped,
// ví dụ user lấy từ auth middleware). Không gọi resolver nào cả.
func NewStaticProvider(table *Table, user *models.User, defaultRole string) *Provider {
	p := NewProvider(table, nil, defaultRole)
	p.once.Do(func() {})
	p.user = user
	p.loaded = true
	return p
}

// Load resolves the session exactly once. Concurrent callers share the single
// in-flight resolution; later calls are no-ops. A resolver failure is logged
// and treated as an anonymous session (default-deny), never surfaced to the
// render path.
func (p *Provider) Load(ctx context.Context) {
	p.once.Do(func() {
		var user *models.User
		var err error
		if p.resolver != nil {
			user, err = p.resolver.Resolve(ctx)
		}
		if err != nil {
			goerrorkit.LogError(goerrorkit.WrapWithMessage(err, "Lỗi khi resolve session, coi như anonymous"), "policy.Provider.Load")
			user = nil
		}

		p.mu.Lock()
		p.user = user
		p.err = err
		p.loaded = true
		p.mu.Unlock()
	})
}

// Loading trả về true khi session chưa được resolve xong
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.loaded
}

// SessionErr trả về lỗi của lần resolve session (nil nếu thành công hoặc chưa load)
func (p *Provider) SessionErr() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// EffectiveRole applies the role precedence rule: built-in admin wins over
// any custom role; otherwise the custom role if present; otherwise the
// configured default role. Returns ("", false) while loading or anonymous.
func (p *Provider) EffectiveRole() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.loaded || p.user == nil {
		return "", false
	}
	if p.user.IsAdmin() {
		return AdminRoleName, true
	}
	if p.user.CustomRole != "" {
		return p.user.CustomRole, true
	}
	return p.defaultRole, true
}

// CanAccessModule kiểm tra effective role có được mở navigation module không.
// Trả về false (không bao giờ panic) khi đang loading, anonymous
// hoặc module lạ.
func (p *Provider) CanAccessModule(module contracts.NavModuleID) bool {
	role, ok := p.EffectiveRole()
	if !ok {
		return false
	}
	return p.table.Resolve(role).AllowsModule(module)
}

// CanPerformAction kiểm tra effective role có được thực hiện verb trên
// action key không. Key không có trong action map là default-deny.
func (p *Provider) CanPerformAction(key contracts.ActionModuleKey, verb contracts.ActionVerb) bool {
	role, ok := p.EffectiveRole()
	if !ok {
		return false
	}
	return p.table.Resolve(role).AllowsAction(key, verb)
}

// IsAdmin trả về true nếu effective role là Admin
func (p *Provider) IsAdmin() bool {
	role, ok := p.EffectiveRole()
	return ok && role == AdminRoleName
}

// Policy trả về policy đã resolve của effective role (zero policy khi anonymous)
func (p *Provider) Policy() RolePolicy {
	role, ok := p.EffectiveRole()
	if !ok {
		return RolePolicy{}
	}
	return p.table.Resolve(role)
}
