package policy

import (
	"fmt"

	"github.com/techmaster-vietnam/sapkit/contracts"
)

// Decision là kết quả của module guard, UI layer map decision sang render:
//   - DecisionHidden:       đang loading, không render gì (tránh nháy "Access Denied")
//   - DecisionDeniedModule: render fallback nếu có, nếu không render "Access Denied"
//   - DecisionDeniedAction: render fallback nếu có, nếu không không render gì
//   - DecisionGranted:      render children
type Decision int

const (
	DecisionHidden Decision = iota
	DecisionDeniedModule
	DecisionDeniedAction
	DecisionGranted
)

// String returns a readable name for logging and test output
func (d Decision) String() string {
	switch d {
	case DecisionHidden:
		return "hidden"
	case DecisionDeniedModule:
		return "denied_module"
	case DecisionDeniedAction:
		return "denied_action"
	case DecisionGranted:
		return "granted"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// ProtectModule quyết định một protected module được render thế nào.
// Module check dùng NavModuleID nguyên văn; action check dùng ActionKey()
// của module đó — đây là chỗ hai vocabulary gặp nhau, xem contracts.ActionKey.
// action rỗng nghĩa là chỉ check quyền mở module (mặc định của UI là "view").
func ProtectModule(p *Provider, module contracts.NavModuleID, action contracts.ActionVerb) Decision {
	if p.Loading() {
		return DecisionHidden
	}
	if !p.CanAccessModule(module) {
		return DecisionDeniedModule
	}
	if action != "" && !p.CanPerformAction(module.ActionKey(), action) {
		return DecisionDeniedAction
	}
	return DecisionGranted
}

// ButtonState là trạng thái render của một permission button
type ButtonState int

const (
	ButtonHidden ButtonState = iota
	ButtonDisabled
	ButtonEnabled
)

// String returns a readable name for logging and test output
func (s ButtonState) String() string {
	switch s {
	case ButtonHidden:
		return "hidden"
	case ButtonDisabled:
		return "disabled"
	case ButtonEnabled:
		return "enabled"
	default:
		return fmt.Sprintf("button_state(%d)", int(s))
	}
}

// ButtonFor quyết định trạng thái của một action button và tooltip giải thích
// khi button bị disable. Không có side effect, đánh giá lại mỗi lần gọi.
func ButtonFor(p *Provider, key contracts.ActionModuleKey, verb contracts.ActionVerb, showDisabled bool) (ButtonState, string) {
	if p.CanPerformAction(key, verb) {
		return ButtonEnabled, ""
	}
	if !showDisabled {
		return ButtonHidden, ""
	}
	return ButtonDisabled, fmt.Sprintf("You don't have permission to %s %s", verb, key)
}
