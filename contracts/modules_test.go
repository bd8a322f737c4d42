package contracts

import "testing"

// Test mapping NavModuleID -> ActionModuleKey
// Nav module IDs và action map keys là hai vocabulary khác nhau,
// ActionKey() là điểm chuyển đổi duy nhất nên phải được test đầy đủ
func TestNavModuleID_ActionKey(t *testing.T) {
	tests := []struct {
		module   NavModuleID
		expected ActionModuleKey
	}{
		{ModuleDashboard, "dashboard"},
		{ModuleSales, "sales"},
		{ModulePurchase, "purchase"},
		{ModuleInventory, "inventory"},
		{ModuleProduction, "production"},
		{ModuleFinance, "finance"},
		{ModuleSupplyChain, "supplychain"},
		{ModuleReports, "reports"},
		{ModuleSettings, "settings"},
	}

	for _, tt := range tests {
		t.Run(string(tt.module), func(t *testing.T) {
			if got := tt.module.ActionKey(); got != tt.expected {
				t.Errorf("ActionKey(%q) = %q, expected %q", tt.module, got, tt.expected)
			}
		})
	}
}

func TestNavModules_CoversAllConstants(t *testing.T) {
	if len(NavModules) != 9 {
		t.Errorf("Expected 9 navigation modules, got %d", len(NavModules))
	}

	seen := make(map[NavModuleID]bool)
	for _, m := range NavModules {
		if seen[m] {
			t.Errorf("Duplicate navigation module %q", m)
		}
		seen[m] = true
	}
}
