package contracts

import "strings"

// NavModuleID là định danh module trên thanh điều hướng của dashboard
// Đây là vocabulary riêng, KHÔNG trùng với ActionModuleKey hay SapModuleName
type NavModuleID string

const (
	ModuleDashboard   NavModuleID = "Dashboard"
	ModuleSales       NavModuleID = "Sales"
	ModulePurchase    NavModuleID = "Purchase"
	ModuleInventory   NavModuleID = "Inventory"
	ModuleProduction  NavModuleID = "Production"
	ModuleFinance     NavModuleID = "Finance"
	ModuleSupplyChain NavModuleID = "SupplyChain"
	ModuleReports     NavModuleID = "Reports"
	ModuleSettings    NavModuleID = "Settings"
)

// NavModules liệt kê toàn bộ navigation modules của dashboard
var NavModules = []NavModuleID{
	ModuleDashboard,
	ModuleSales,
	ModulePurchase,
	ModuleInventory,
	ModuleProduction,
	ModuleFinance,
	ModuleSupplyChain,
	ModuleReports,
	ModuleSettings,
}

// ActionModuleKey là key (chữ thường) trong action map của RolePolicy
type ActionModuleKey string

// ActionKey chuyển NavModuleID sang ActionModuleKey.
// Đây là hàm mapping duy nhất giữa hai vocabulary; mọi nơi khác không được
// tự lowercase. Nav module IDs chỉ chứa ASCII nên ToLower không phụ thuộc locale.
func (id NavModuleID) ActionKey() ActionModuleKey {
	return ActionModuleKey(strings.ToLower(string(id)))
}

// ActionVerb là một động từ trong tập quyền của một module
type ActionVerb string

const (
	ActionView   ActionVerb = "view"
	ActionCreate ActionVerb = "create"
	ActionEdit   ActionVerb = "edit"
	ActionDelete ActionVerb = "delete"
)

// SapModuleName là tên thân thiện của một module trong gateway registry
// (vocabulary thứ ba, map sang SAP service + entity set, xem odata.Registry)
type SapModuleName string

const (
	SapVendorInvoices   SapModuleName = "VendorInvoices"
	SapPurchaseOrders   SapModuleName = "PurchaseOrders"
	SapSalesOrders      SapModuleName = "SalesOrders"
	SapSalesInvoices    SapModuleName = "SalesInvoices"
	SapSalesOrderItems  SapModuleName = "SalesOrderItems"
	SapInventory        SapModuleName = "Inventory"
	SapFinancialEntries SapModuleName = "FinancialEntries"
	SapProductionOrders SapModuleName = "ProductionOrders"
	SapShipments        SapModuleName = "Shipments"
	SapSuppliers        SapModuleName = "Suppliers"
)
