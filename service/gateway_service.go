package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/techmaster-vietnam/sapkit/config"
	"github.com/techmaster-vietnam/sapkit/contracts"
	"github.com/techmaster-vietnam/sapkit/odata"
)

// ErrCredentialsMissing báo SAP_ODATA_USERNAME/SAP_ODATA_PASSWORD chưa được
// cấu hình. Đây là lỗi của operator, không phải của end user; gateway trả 500
// và tuyệt đối không gọi SAP.
var ErrCredentialsMissing = errors.New("SAP credentials not configured")

// UnknownModuleError báo tên module không có trong registry, kèm danh sách
// module hợp lệ để client tự khám phá
type UnknownModuleError struct {
	Module    contracts.SapModuleName
	Available []string
}

// Error implements the error interface
func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("Unknown module: %s. Available modules: %s", e.Module, strings.Join(e.Available, ", "))
}

// FetchOptions là các tùy chọn truy vấn chung của hai endpoint
type FetchOptions struct {
	Filter string
	Top    int
	Skip   int
}

// GatewayService orchestrates the Resolved -> Fetched transitions of a
// gateway request: resolve the binding, build the OData URL, perform the
// single authenticated fetch. Stateless; safe for concurrent use.
type GatewayService struct {
	registry *odata.Registry
	fetcher  *odata.Fetcher
	config   *config.Config
}

// NewGatewayService creates a new gateway service
func NewGatewayService(registry *odata.Registry, fetcher *odata.Fetcher, cfg *config.Config) *GatewayService {
	return &GatewayService{
		registry: registry,
		fetcher:  fetcher,
		config:   cfg,
	}
}

// ModuleNames trả về danh sách module đã đăng ký (cho thông báo lỗi 400)
func (s *GatewayService) ModuleNames() []string {
	return s.registry.ModuleNames()
}

// FetchModule resolve module qua registry rồi fetch.
// Credentials được đọc từ config tại thời điểm request và check TRƯỚC khi
// resolve — thiếu credentials thì không có network call nào được thực hiện.
func (s *GatewayService) FetchModule(ctx context.Context, module contracts.SapModuleName, opts FetchOptions) (*odata.Result, error) {
	if !s.config.SAP.HasCredentials() {
		return nil, ErrCredentialsMissing
	}

	binding, ok := s.registry.Resolve(module)
	if !ok {
		return nil, &UnknownModuleError{Module: module, Available: s.registry.ModuleNames()}
	}

	return s.fetch(ctx, binding, opts)
}

// FetchEntitySet fetch trực tiếp theo service + entity set (raw endpoint),
// bỏ qua registry. Caller đã validate service/entitySet không rỗng.
func (s *GatewayService) FetchEntitySet(ctx context.Context, sapService, entitySet string, opts FetchOptions) (*odata.Result, error) {
	if !s.config.SAP.HasCredentials() {
		return nil, ErrCredentialsMissing
	}

	return s.fetch(ctx, odata.ServiceBinding{Service: sapService, EntitySet: entitySet}, opts)
}

func (s *GatewayService) fetch(ctx context.Context, binding odata.ServiceBinding, opts FetchOptions) (*odata.Result, error) {
	url := odata.BuildURL(s.config.SAP.BaseURL, binding, odata.Query{
		Filter: opts.Filter,
		Top:    opts.Top,
		Skip:   opts.Skip,
	})

	return s.fetcher.Fetch(ctx, url, s.config.SAP.Username, s.config.SAP.Password)
}
