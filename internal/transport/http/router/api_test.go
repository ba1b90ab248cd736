package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-inventory-ledger/internal/core/auth"
	"go-inventory-ledger/internal/domain"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/testutil"
	"go-inventory-ledger/pkg/utils"
)

func init() { gin.SetMode(gin.TestMode) }

type env struct {
	r     *gin.Engine
	users *testutil.MemUserRepo
	jwter *auth.JWTer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	users := testutil.NewMemUserRepo()
	sales := testutil.NewMemSaleRepo()
	purchases := testutil.NewMemPurchaseRepo()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: 24 * time.Hour}

	deps := Deps{
		Auth:   service.NewAuthService(users, jwter),
		Admin:  service.NewAdminService(users),
		Ledger: service.NewLedgerService(sales, purchases, nil, 0),
		Users:  users,
		JWT:    jwter,
	}
	return &env{r: NewAPIEngine(zap.NewNop(), deps), users: users, jwter: jwter}
}

func (e *env) seedActive(t *testing.T, email, role string) string {
	t.Helper()
	u := &domain.User{
		ID: utils.NewID(), Name: strings.Split(email, "@")[0], Email: email,
		PasswordHash: utils.HashPassword("password123"),
		Role:         role, Status: domain.StatusActive,
	}
	require.NoError(t, e.users.Create(u))
	tok, err := e.jwter.Issue(u.ID, u.Role)
	require.NoError(t, err)
	return tok
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_SignupApproveLoginSellReport(t *testing.T) {
	e := newEnv(t)
	adminTok := e.seedActive(t, "admin@company.com", domain.RoleAdmin)
	managerTok := e.seedActive(t, "manager@company.com", domain.RoleManager)

	// 注册 → pending
	w := e.do(t, http.MethodPost, "/auth/signup", "", gin.H{
		"name": "Al", "email": "al@x.com", "password": "pw", "role": domain.RoleSalesman,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// pending 状态登录被拒
	w = e.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "al@x.com", "password": "pw"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// 管理员看到待审批并放行
	w = e.do(t, http.MethodGet, "/auth/pending-users", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []service.UserRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)

	w = e.do(t, http.MethodPost, "/auth/approve", adminTok, gin.H{"userId": pending[0].ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 审批后可登录
	w = e.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "al@x.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	var lo struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lo))
	require.NotEmpty(t, lo.Token)

	// 录入一笔销售
	w = e.do(t, http.MethodPost, "/inventory/sales", lo.Token, gin.H{
		"productName": "Widget", "quantity": 3, "price": 9.99,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 经理查报表，恰好一条且归属正确
	w = e.do(t, http.MethodGet, "/inventory/sales", managerTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recs []domain.SaleRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "Widget", recs[0].ProductName)
	assert.Equal(t, 3, recs[0].Quantity)
	assert.InDelta(t, 9.99, recs[0].Price, 1e-9)
	assert.Equal(t, pending[0].ID, recs[0].SalesmanID)
}

func TestSignup_DuplicateEmailOverWire(t *testing.T) {
	e := newEnv(t)
	body := gin.H{"name": "Al", "email": "al@x.com", "password": "pw", "role": domain.RoleSalesman}

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/auth/signup", "", body).Code)
	w := e.do(t, http.MethodPost, "/auth/signup", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestSignup_MissingFields(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/auth/signup", "", gin.H{"email": "al@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe(t *testing.T) {
	e := newEnv(t)
	tok := e.seedActive(t, "mgr@x.com", domain.RoleManager)

	w := e.do(t, http.MethodGet, "/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p service.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "mgr@x.com", p.Email)
	assert.Equal(t, domain.RoleManager, p.Role)

	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/auth/me", "", nil).Code)
}

func TestRoleMatrixOverWire(t *testing.T) {
	e := newEnv(t)
	purchTok := e.seedActive(t, "buy@x.com", domain.RolePurchaseMan)
	salesTok := e.seedActive(t, "sell@x.com", domain.RoleSalesman)

	// PurchaseMan 不许录销售
	w := e.do(t, http.MethodPost, "/inventory/sales", purchTok, gin.H{
		"productName": "Widget", "quantity": 1, "price": 1.0,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Salesman 不许看报表
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodGet, "/inventory/sales", salesTok, nil).Code)

	// Salesman 不许录采购
	w = e.do(t, http.MethodPost, "/inventory/purchases", salesTok, gin.H{
		"productName": "Widget", "quantity": 1, "cost": 1.0,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 非 Admin 摸不到审批接口
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodGet, "/auth/users", salesTok, nil).Code)
}

func TestListUsers_RedactsPassword(t *testing.T) {
	e := newEnv(t)
	adminTok := e.seedActive(t, "admin@x.com", domain.RoleAdmin)
	e.seedActive(t, "other@x.com", domain.RoleSalesman)

	w := e.do(t, http.MethodGet, "/auth/users", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := strings.ToLower(w.Body.String())
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "hash")

	var rows []service.UserRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 2)
}

func TestRecordSale_ValidationOverWire(t *testing.T) {
	e := newEnv(t)
	salesTok := e.seedActive(t, "sell@x.com", domain.RoleSalesman)

	for _, body := range []gin.H{
		{"quantity": 1, "price": 1.0},
		{"productName": "W", "quantity": 0, "price": 1.0},
		{"productName": "W", "quantity": 1, "price": 0.0},
		{"productName": "W", "quantity": -1, "price": 2.0},
	} {
		w := e.do(t, http.MethodPost, "/inventory/sales", salesTok, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %v", body)
	}
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
