package policy

import (
	"github.com/techmaster-vietnam/sapkit/config"
	"github.com/techmaster-vietnam/sapkit/contracts"
)

// RolePolicy mô tả những gì một role được phép làm trên dashboard
type RolePolicy struct {
	// Modules là các navigation module mà role được phép mở
	Modules []contracts.NavModuleID `json:"modules"`
	// Actions map từ action key (chữ thường) sang các verb được phép
	Actions map[contracts.ActionModuleKey][]contracts.ActionVerb `json:"actions"`
}

// AllowsModule kiểm tra role có được mở navigation module này không
func (p RolePolicy) AllowsModule(module contracts.NavModuleID) bool {
	for _, m := range p.Modules {
		if m == module {
			return true
		}
	}
	return false
}

// AllowsAction kiểm tra role có được thực hiện verb trên module key này không.
// Key không có trong map nghĩa là không có quyền nào (default-deny).
func (p RolePolicy) AllowsAction(key contracts.ActionModuleKey, verb contracts.ActionVerb) bool {
	verbs, ok := p.Actions[key]
	if !ok {
		return false
	}
	for _, v := range verbs {
		if v == verb {
			return true
		}
	}
	return false
}

// Table is the process-wide, read-only role policy table. It is constructed
// once at startup and injected into consumers; there is no package-level
// singleton. Policy changes require a redeploy, which is acceptable because
// roles change rarely relative to permission checks.
type Table struct {
	policies     map[string]RolePolicy
	fallbackRole string
}

// NewTable tạo policy table với fallback role chỉ định.
// fallbackRole phải tồn tại trong policies, nếu không Resolve của role lạ
// sẽ trả về zero policy (deny tất cả) — caller chịu trách nhiệm đảm bảo.
func NewTable(policies map[string]RolePolicy, fallbackRole string) *Table {
	return &Table{policies: policies, fallbackRole: fallbackRole}
}

// Resolve trả về policy của role. Role không có trong bảng resolve về
// fallback policy đã được chỉ định rõ — không bao giờ trả về "no access"
// hay "all access" ngầm định.
func (t *Table) Resolve(role string) RolePolicy {
	if p, ok := t.policies[role]; ok {
		return p
	}
	return t.policies[t.fallbackRole]
}

// Has kiểm tra role có được định nghĩa tường minh trong bảng không
func (t *Table) Has(role string) bool {
	_, ok := t.policies[role]
	return ok
}

// FallbackRole trả về tên role dùng làm fallback cho role không xác định
func (t *Table) FallbackRole() string {
	return t.fallbackRole
}

// AdminRoleName là effective role của user có built-in role admin
const AdminRoleName = "Admin"

// DefaultTable builds the built-in role policy matrix of the dashboard.
// Hard-coding the matrix keeps authorization auditable as a single artifact
// and avoids a round trip per permission check.
func DefaultTable() *Table {
	allVerbs := []contracts.ActionVerb{
		contracts.ActionView, contracts.ActionCreate, contracts.ActionEdit, contracts.ActionDelete,
	}

	adminActions := make(map[contracts.ActionModuleKey][]contracts.ActionVerb, len(contracts.NavModules))
	for _, m := range contracts.NavModules {
		adminActions[m.ActionKey()] = allVerbs
	}

	policies := map[string]RolePolicy{
		AdminRoleName: {
			Modules: contracts.NavModules,
			Actions: adminActions,
		},
		"Sales Manager": {
			Modules: []contracts.NavModuleID{
				contracts.ModuleDashboard,
				contracts.ModuleSales,
				contracts.ModuleReports,
			},
			Actions: map[contracts.ActionModuleKey][]contracts.ActionVerb{
				contracts.ModuleDashboard.ActionKey(): {contracts.ActionView},
				contracts.ModuleSales.ActionKey():     {contracts.ActionView, contracts.ActionCreate, contracts.ActionEdit},
				contracts.ModuleReports.ActionKey():   {contracts.ActionView, contracts.ActionCreate},
			},
		},
		"Inventory Clerk": {
			Modules: []contracts.NavModuleID{
				contracts.ModuleDashboard,
				contracts.ModuleInventory,
				contracts.ModuleProduction,
			},
			Actions: map[contracts.ActionModuleKey][]contracts.ActionVerb{
				contracts.ModuleDashboard.ActionKey():  {contracts.ActionView},
				contracts.ModuleInventory.ActionKey():  {contracts.ActionView, contracts.ActionCreate, contracts.ActionEdit},
				contracts.ModuleProduction.ActionKey(): {contracts.ActionView},
			},
		},
		"Logistics Coordinator": {
			Modules: []contracts.NavModuleID{
				contracts.ModuleDashboard,
				contracts.ModuleSupplyChain,
				contracts.ModuleInventory,
			},
			Actions: map[contracts.ActionModuleKey][]contracts.ActionVerb{
				contracts.ModuleDashboard.ActionKey():   {contracts.ActionView},
				contracts.ModuleSupplyChain.ActionKey(): {contracts.ActionView, contracts.ActionEdit},
				contracts.ModuleInventory.ActionKey():   {contracts.ActionView},
			},
		},
	}

	return NewTable(policies, config.DefaultRoleName)
}
