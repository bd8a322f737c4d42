package odata

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/sapkit/contracts"
)

// ServiceBinding map một SapModuleName sang SAP service namespace + entity set
type ServiceBinding struct {
	Service   string `json:"service"`
	EntitySet string `json:"entitySet"`
}

// Registry là bảng tra cứu tĩnh từ tên module thân thiện sang ServiceBinding.
// Đây là configuration data, không phải logic: xây một lần lúc startup,
// read-only lúc runtime.
type Registry struct {
	bindings map[contracts.SapModuleName]ServiceBinding
}

// NewRegistry tạo registry từ bảng bindings cho trước
func NewRegistry(bindings map[contracts.SapModuleName]ServiceBinding) *Registry {
	return &Registry{bindings: bindings}
}

// DefaultRegistry binds the ten dashboard modules to their SAP gateway
// services. Kept in code so the binding table is auditable in one place;
// LoadRegistryFile exists for deployments that prefer external config.
func DefaultRegistry() *Registry {
	return NewRegistry(map[contracts.SapModuleName]ServiceBinding{
		contracts.SapVendorInvoices:   {Service: "ZGW_PURCHASE_SRV", EntitySet: "VendorInvoicesSet"},
		contracts.SapPurchaseOrders:   {Service: "ZGW_PURCHASE_SRV", EntitySet: "PurchaseOrdersSet"},
		contracts.SapSuppliers:        {Service: "ZGW_PURCHASE_SRV", EntitySet: "SuppliersSet"},
		contracts.SapSalesOrders:      {Service: "ZGW_SALES_SRV", EntitySet: "SalesOrdersSet"},
		contracts.SapSalesInvoices:    {Service: "ZGW_SALES_SRV", EntitySet: "SalesInvoicesSet"},
		contracts.SapSalesOrderItems:  {Service: "ZGW_SALES_SRV", EntitySet: "SalesOrderItemsSet"},
		contracts.SapInventory:        {Service: "ZGW_INVENTORY_SRV", EntitySet: "MaterialStockSet"},
		contracts.SapFinancialEntries: {Service: "ZGW_FINANCE_SRV", EntitySet: "FinancialEntriesSet"},
		contracts.SapProductionOrders: {Service: "ZGW_PRODUCTION_SRV", EntitySet: "ProductionOrdersSet"},
		contracts.SapShipments:        {Service: "ZGW_LOGISTICS_SRV", EntitySet: "ShipmentsSet"},
	})
}

// LoadRegistryFile đọc bảng bindings từ file JSON
// (map tên module -> {service, entitySet})
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Không đọc được file registry").WithData(map[string]interface{}{
			"path": path,
		})
	}

	var bindings map[contracts.SapModuleName]ServiceBinding
	if err := json.Unmarshal(data, &bindings); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "File registry không phải JSON hợp lệ").WithData(map[string]interface{}{
			"path": path,
		})
	}

	return NewRegistry(bindings), nil
}

// Resolve tra cứu binding của một module
func (r *Registry) Resolve(module contracts.SapModuleName) (ServiceBinding, bool) {
	b, ok := r.bindings[module]
	return b, ok
}

// ModuleNames trả về danh sách tên module đã đăng ký, sắp xếp ổn định
// (dùng trong thông báo lỗi "unknown module" để client tự khám phá)
func (r *Registry) ModuleNames() []string {
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
