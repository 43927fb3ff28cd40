package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/cash_register_app/internal/apperrors"
	"github.com/SscSPs/cash_register_app/internal/core/domain"
	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
	"github.com/SscSPs/cash_register_app/internal/dto"
	"github.com/SscSPs/cash_register_app/internal/handlers"
	"github.com/SscSPs/cash_register_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RegisterService ---
type MockRegisterService struct {
	mock.Mock
}

func (m *MockRegisterService) GetRegisterSummary(ctx context.Context, tenantID string, registerID int64) (*domain.RegisterSession, error) {
	args := m.Called(ctx, tenantID, registerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisterSession), args.Error(1)
}

func (m *MockRegisterService) GetOpenRegister(ctx context.Context, tenantID string) (*domain.RegisterSession, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisterSession), args.Error(1)
}

func (m *MockRegisterService) OpenRegister(ctx context.Context, tenantID string, req dto.OpenRegisterRequest) (*domain.RegisterSession, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisterSession), args.Error(1)
}

func (m *MockRegisterService) CloseRegister(ctx context.Context, tenantID string, req dto.CloseRegisterRequest) (*domain.RegisterSession, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisterSession), args.Error(1)
}

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) GetSaleByID(ctx context.Context, tenantID string, saleID int64) (*domain.Sale, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) ListSalesByRegister(ctx context.Context, tenantID string, registerID int64, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	args := m.Called(ctx, tenantID, registerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSalesResponse), args.Error(1)
}

func (m *MockSaleService) PostSale(ctx context.Context, tenantID string, req dto.PostSaleRequest) (*domain.Sale, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.RegisterSvcFacade = (*MockRegisterService)(nil)
	_ portssvc.SaleSvcFacade     = (*MockSaleService)(nil)
)

// --- Test Suite ---
type RegisterHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockRegisterSvc *MockRegisterService
	mockSaleSvc     *MockSaleService
	cfg             *config.Config
}

func (suite *RegisterHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockRegisterSvc = new(MockRegisterService)
	suite.mockSaleSvc = new(MockSaleService)
	suite.cfg = &config.Config{DefaultTenantID: "default", IsProduction: true}
	suite.router = suite.newRouter(suite.cfg)
}

func (suite *RegisterHandlerTestSuite) newRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{
		Register: suite.mockRegisterSvc,
		Sale:     suite.mockSaleSvc,
	}, handlers.RouteDeps{})
	return r
}

func (suite *RegisterHandlerTestSuite) do(router *gin.Engine, method, url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &payload)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (suite *RegisterHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func openSession(id int64) *domain.RegisterSession {
	return &domain.RegisterSession{
		RegisterID:        id,
		TenantID:          "acme",
		OpenedAt:          time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		OpeningBalance:    decimal.NewFromInt(100),
		RunningSalesTotal: decimal.Zero,
		Status:            domain.RegisterOpen,
		OpenedBy:          "ana",
		Version:           1,
	}
}

func (suite *RegisterHandlerTestSuite) TestOpenRegister_Created() {
	suite.mockRegisterSvc.On("OpenRegister", mock.Anything, "acme", mock.MatchedBy(func(r dto.OpenRegisterRequest) bool {
		return r.Operator == "ana" && r.OpeningBalance != nil && r.OpeningBalance.Equal(decimal.NewFromInt(100))
	})).Return(openSession(12), nil).Once()

	w := suite.do(suite.router, http.MethodPost, "/registers/open",
		map[string]any{"operator": "ana", "openingBalance": "100"},
		map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RegisterResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(12), resp.RegisterID)
	suite.Equal("OPEN", resp.Status)
	suite.True(resp.IsOpen)
	suite.mockRegisterSvc.AssertExpectations(suite.T())
}

func (suite *RegisterHandlerTestSuite) TestOpenRegister_ConflictWhileOpen() {
	suite.mockRegisterSvc.On("OpenRegister", mock.Anything, "default", mock.Anything).
		Return(nil, apperrors.NewConflictError("register", 3, "register already open")).Once()

	w := suite.do(suite.router, http.MethodPost, "/registers/open", map[string]any{"operator": "ana", "openingBalance": "0"}, nil)

	suite.Equal(http.StatusConflict, w.Code)
	body := suite.decode(w)
	suite.Equal("CONFLICT", body["code"])
	suite.Equal("register", body["entity"])
}

func (suite *RegisterHandlerTestSuite) TestOpenRegister_BindError() {
	w := suite.do(suite.router, http.MethodPost, "/registers/open", map[string]any{"openingBalance": "5"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decode(w)
	suite.Equal("VALIDATION", body["code"])
	suite.Contains(body["error"], "Operator failed required")
	suite.mockRegisterSvc.AssertNotCalled(suite.T(), "OpenRegister", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RegisterHandlerTestSuite) TestOpenRegister_MissingOpeningBalance() {
	w := suite.do(suite.router, http.MethodPost, "/registers/open", map[string]any{"operator": "ana"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decode(w)
	suite.Equal("VALIDATION", body["code"])
	suite.Contains(body["error"], "OpeningBalance failed required")
	suite.mockRegisterSvc.AssertNotCalled(suite.T(), "OpenRegister", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RegisterHandlerTestSuite) TestInvalidTenantHeader() {
	w := suite.do(suite.router, http.MethodGet, "/registers/open", nil, map[string]string{"X-Tenant-ID": "acme corp!"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRegisterSvc.AssertNotCalled(suite.T(), "GetOpenRegister", mock.Anything, mock.Anything)
}

func (suite *RegisterHandlerTestSuite) TestCloseRegister_AlreadyClosed() {
	suite.mockRegisterSvc.On("CloseRegister", mock.Anything, "acme", mock.MatchedBy(func(r dto.CloseRegisterRequest) bool {
		return r.RegisterID == 12
	})).Return(nil, apperrors.NewInvalidStateError("register is already closed")).Once()

	w := suite.do(suite.router, http.MethodPost, "/api/v1/registers/close",
		map[string]any{"registerId": 12, "operator": "ana", "closingBalance": "100"},
		map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_STATE", suite.decode(w)["code"])
}

func (suite *RegisterHandlerTestSuite) TestCloseRegister_ConcurrentModification() {
	suite.mockRegisterSvc.On("CloseRegister", mock.Anything, "acme", mock.MatchedBy(func(r dto.CloseRegisterRequest) bool {
		return r.RegisterID == 12 && r.ClosingBalance != nil && r.ClosingBalance.Equal(decimal.RequireFromString("122.50"))
	})).Return(nil, apperrors.NewConflictError("register", 12, "concurrent modification, retry close")).Once()

	w := suite.do(suite.router, http.MethodPost, "/registers/close",
		map[string]any{"registerId": 12, "operator": "ana", "closingBalance": "122.50"},
		map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusConflict, w.Code)
	body := suite.decode(w)
	suite.Equal("CONFLICT", body["code"])
	suite.Equal("register", body["entity"])
	suite.mockRegisterSvc.AssertExpectations(suite.T())
}

func (suite *RegisterHandlerTestSuite) TestCloseRegister_UnknownRegister() {
	suite.mockRegisterSvc.On("CloseRegister", mock.Anything, "acme", mock.MatchedBy(func(r dto.CloseRegisterRequest) bool {
		return r.RegisterID == 99
	})).Return(nil, apperrors.NewNotFoundError("register", 99)).Once()

	w := suite.do(suite.router, http.MethodPost, "/api/v1/registers/close",
		map[string]any{"registerId": 99, "operator": "ana", "closingBalance": "0"},
		map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", suite.decode(w)["code"])
	suite.mockRegisterSvc.AssertExpectations(suite.T())
}

func (suite *RegisterHandlerTestSuite) TestCloseRegister_MissingClosingBalance() {
	w := suite.do(suite.router, http.MethodPost, "/registers/close",
		map[string]any{"registerId": 12, "operator": "ana"},
		map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decode(w)
	suite.Equal("VALIDATION", body["code"])
	suite.Contains(body["error"], "ClosingBalance failed required")
	suite.mockRegisterSvc.AssertNotCalled(suite.T(), "CloseRegister", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RegisterHandlerTestSuite) TestGetRegisterSummary() {
	suite.mockRegisterSvc.On("GetRegisterSummary", mock.Anything, "acme", int64(12)).Return(openSession(12), nil).Once()
	suite.mockRegisterSvc.On("GetRegisterSummary", mock.Anything, "acme", int64(13)).
		Return(nil, apperrors.NewNotFoundError("register", 13)).Once()

	ok := suite.do(suite.router, http.MethodGet, "/registers/12/summary", nil, map[string]string{"X-Tenant-ID": "acme"})
	missing := suite.do(suite.router, http.MethodGet, "/api/v1/registers/13/summary", nil, map[string]string{"X-Tenant-ID": "acme"})
	invalid := suite.do(suite.router, http.MethodGet, "/registers/abc/summary", nil, map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusOK, ok.Code)
	suite.Equal(http.StatusNotFound, missing.Code)
	suite.Equal("NOT_FOUND", suite.decode(missing)["code"])
	suite.Equal(http.StatusBadRequest, invalid.Code)
	suite.mockRegisterSvc.AssertExpectations(suite.T())
}

func (suite *RegisterHandlerTestSuite) TestPostSale_InsufficientStock() {
	suite.mockSaleSvc.On("PostSale", mock.Anything, "acme", mock.Anything).Return(nil, &apperrors.InsufficientStockError{
		ProductID: 4, ProductName: "Croissant", Requested: 3, Available: 1,
	}).Once()

	w := suite.do(suite.router, http.MethodPost, "/sales", map[string]any{
		"registerId":    12,
		"operatorEmail": "ana@example.com",
		"items":         []map[string]any{{"productId": 4, "quantity": 3}},
		"paymentMethod": "cash",
	}, map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decode(w)
	suite.Equal("INSUFFICIENT_STOCK", body["code"])
	suite.EqualValues(4, body["productId"])
	suite.EqualValues(3, body["requested"])
	suite.EqualValues(1, body["available"])
}

func (suite *RegisterHandlerTestSuite) TestPostSale_ClosedRegister() {
	suite.mockSaleSvc.On("PostSale", mock.Anything, "acme", mock.MatchedBy(func(r dto.PostSaleRequest) bool {
		return r.RegisterID == 12
	})).Return(nil, apperrors.NewInvalidStateError("register is closed")).Once()

	w := suite.do(suite.router, http.MethodPost, "/sales", map[string]any{
		"registerId":    12,
		"operatorEmail": "ana@example.com",
		"items":         []map[string]any{{"productId": 4, "quantity": 1}},
		"paymentMethod": "cash",
	}, map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decode(w)
	suite.Equal("INVALID_STATE", body["code"])
	suite.Contains(body["error"], "register is closed")
	suite.mockSaleSvc.AssertExpectations(suite.T())
}

func (suite *RegisterHandlerTestSuite) TestPostSale_Created() {
	sale := &domain.Sale{
		SaleID:        40,
		RegisterID:    12,
		OperatorID:    1,
		OperatorEmail: "ana@example.com",
		Items: []domain.SaleLineItem{{
			SaleItemID: 1, ProductID: 4, ProductName: "Croissant", Quantity: 2,
			UnitPrice: decimal.RequireFromString("2.5"), Subtotal: decimal.NewFromInt(5),
		}},
		GrossTotal:    decimal.NewFromInt(5),
		Discount:      decimal.Zero,
		FinalAmount:   decimal.NewFromInt(5),
		PaymentMethod: domain.PaymentMethod("CASH"),
	}
	suite.mockSaleSvc.On("PostSale", mock.Anything, "acme", mock.MatchedBy(func(r dto.PostSaleRequest) bool {
		return r.RegisterID == 12 && len(r.Items) == 1 && *r.Items[0].Quantity == 2
	})).Return(sale, nil).Once()

	w := suite.do(suite.router, http.MethodPost, "/api/v1/sales", map[string]any{
		"registerId":    12,
		"operatorEmail": "ana@example.com",
		"items":         []map[string]any{{"productId": 4, "quantity": 2}},
		"paymentMethod": "cash",
	}, map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(40), resp.SaleID)
	suite.True(resp.FinalAmount.Equal(decimal.NewFromInt(5)))
	suite.Len(resp.Items, 1)
}

func (suite *RegisterHandlerTestSuite) TestPostSale_TimeoutIs503() {
	suite.mockSaleSvc.On("PostSale", mock.Anything, "acme", mock.Anything).
		Return(nil, apperrors.NewTimeoutError("post sale", context.DeadlineExceeded)).Once()

	w := suite.do(suite.router, http.MethodPost, "/sales", map[string]any{
		"registerId":    12,
		"operatorEmail": "ana@example.com",
		"items":         []map[string]any{{"productId": 4}},
		"paymentMethod": "card",
	}, map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("TIMEOUT", suite.decode(w)["code"])
}

func (suite *RegisterHandlerTestSuite) TestListSalesByRegister() {
	next := "abc"
	suite.mockSaleSvc.On("ListSalesByRegister", mock.Anything, "acme", int64(12), dto.ListSalesParams{Limit: 2}).
		Return(&dto.ListSalesResponse{Sales: []dto.SaleResponse{{SaleID: 1}, {SaleID: 2}}, NextToken: &next}, nil).Once()

	w := suite.do(suite.router, http.MethodGet, "/registers/12/sales?limit=2", nil, map[string]string{"X-Tenant-ID": "acme"})
	tooLarge := suite.do(suite.router, http.MethodGet, "/registers/12/sales?limit=500", nil, map[string]string{"X-Tenant-ID": "acme"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListSalesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Sales, 2)
	suite.Equal("abc", *resp.NextToken)
	suite.Equal(http.StatusBadRequest, tooLarge.Code)
	suite.mockSaleSvc.AssertExpectations(suite.T())
}

func (suite *RegisterHandlerTestSuite) TestBearerTokenRequiredWhenSecretSet() {
	cfg := *suite.cfg
	cfg.JWTSecret = "test-secret-key-that-is-long-enough"
	router := suite.newRouter(&cfg)
	suite.mockRegisterSvc.On("GetOpenRegister", mock.Anything, "default").Return(openSession(5), nil).Once()

	claims := jwt.RegisteredClaims{
		Subject:   "ana",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	suite.Require().NoError(err)

	denied := suite.do(router, http.MethodGet, "/registers/open", nil, nil)
	allowed := suite.do(router, http.MethodGet, "/registers/open", nil, map[string]string{"Authorization": "Bearer " + signed})

	suite.Equal(http.StatusUnauthorized, denied.Code)
	suite.Equal(http.StatusOK, allowed.Code)
	suite.mockRegisterSvc.AssertExpectations(suite.T())
}

func (suite *RegisterHandlerTestSuite) TestHealth() {
	w := suite.do(suite.router, http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

// --- Run Test Suite ---
func TestRegisterHandler(t *testing.T) {
	suite.Run(t, new(RegisterHandlerTestSuite))
}
