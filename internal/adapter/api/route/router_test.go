package route

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-condominio/internal/domain/dashboard"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/hugohenrick/erp-condominio/pkg/idempotency"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basePath = "/api/v1"

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memory.NewStore()
	log := logger.NewNop()
	tokens, err := auth.NewJWTService("segredo-de-teste", time.Hour)
	require.NoError(t, err)
	opts := []service.Option{service.WithLogger(log)}

	users := service.NewUserService(s.Users(), s.Associations(), s.Blocks(), tokens, opts...)
	expenses := service.NewExpenseService(s.Blocks(), s.Apartments(), s.Expenses(), expense.PolicyEqualSplit, opts...)
	aging := service.NewAgingService(s.Expenses(), opts...)
	payments := service.NewPaymentService(s.Blocks(), s.Apartments(), s.Expenses(), s.Payments(),
		payment.NewReconciler(payment.PolicyFullSettlement), idempotency.NewMemoryStore(), opts...)
	blocks := controller.NewBlockController(service.NewBlockService(s.Associations(), s.Blocks(), opts...), log)

	c := Controllers{
		Auth:         controller.NewAuthController(users, tokens.Expiration(), log),
		User:         controller.NewUserController(users, log),
		Association:  controller.NewAssociationController(service.NewAssociationService(s.Associations(), s.Users(), opts...), log),
		Block:        blocks,
		Apartment:    controller.NewApartmentController(service.NewApartmentService(s.Blocks(), s.Apartments(), s.Users(), opts...), log),
		Expense:      controller.NewExpenseController(expenses, aging, time.UTC, log),
		Payment:      controller.NewPaymentController(payments, log),
		Meter:        controller.NewMeterController(service.NewMeterService(s.Blocks(), s.Apartments(), s.Meters(), opts...), time.UTC, log),
		Announcement: controller.NewAnnouncementController(service.NewAnnouncementService(s.Blocks(), s.Announcements(), opts...), log),
		Repair:       controller.NewRepairController(service.NewRepairService(s.Blocks(), s.Apartments(), s.Repairs(), opts...), log),
		Dashboard: controller.NewDashboardController(
			service.NewDashboardService(s.Dashboard(), opts...),
			service.NewReportService(s.Blocks(), s.Expenses(), opts...),
			log,
		),
	}

	router := gin.New()
	Setup(router, basePath, c, auth.JWTAuthMiddleware(tokens, s.Users()))
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, basePath+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// estate monta uma associação com um bloco de três apartamentos (40, 60 e
// 100 m²); o primeiro pertence ao morador
type estate struct {
	adminToken  string
	tenantToken string
	blockID     string
	apartments  []dto.ApartmentResponse
}

func (s *testServer) register(email, role string) dto.AuthResponse {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/register", "", gin.H{
		"email": email, "firstName": "Ana", "lastName": "Popescu", "password": "parola123", "role": role,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AuthResponse
	decode(s.t, w, &resp)
	return resp
}

func (s *testServer) seed() estate {
	t := s.t
	t.Helper()

	admin := s.register("admin@asociatie.ro", "ADMIN_ASSOCIATION")
	tenant := s.register("locatar@asociatie.ro", "")

	w := s.do(http.MethodPost, "/associations", admin.Token, gin.H{"name": "Asociația Florilor", "address": "Str. Lalelelor 1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var association dto.AssociationResponse
	decode(t, w, &association)

	w = s.do(http.MethodPost, "/associations/"+association.ID+"/blocks", admin.Token, gin.H{"name": "Bloc A", "address": "Str. Lalelelor 1A"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var block dto.BlockResponse
	decode(t, w, &block)

	e := estate{adminToken: admin.Token, tenantToken: tenant.Token, blockID: block.ID}
	for i, area := range []int{40, 60, 100} {
		body := gin.H{"number": string(rune('1' + i)), "floor": i, "area": area}
		if i == 0 {
			body["ownerId"] = tenant.User.ID
		}
		w = s.do(http.MethodPost, "/blocks/"+block.ID+"/apartments", admin.Token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var a dto.ApartmentResponse
		decode(t, w, &a)
		e.apartments = append(e.apartments, a)
	}
	return e
}

func (s *testServer) createExpense(token, blockID, amount, dueDate string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/expenses", token, gin.H{
		"blockId":            blockID,
		"description":        "Curățenie scară",
		"amount":             json.Number(amount),
		"category":           string(expense.CategoryCleaning),
		"dueDate":            dueDate,
		"distributionPolicy": "AREA_WEIGHTED",
	})
}

func (s *testServer) allocations(token, query string) []dto.ApartmentExpenseResponse {
	s.t.Helper()
	w := s.do(http.MethodGet, "/apartment-expenses?"+query, token, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var list []dto.ApartmentExpenseResponse
	decode(s.t, w, &list)
	return list
}

func TestHealthAndAuthentication(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/dashboard/stats", "", nil).Code)

	s.register("admin@asociatie.ro", "ADMIN_ASSOCIATION")
	w = s.do(http.MethodPost, "/auth/login", "", gin.H{"email": "admin@asociatie.ro", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/auth/login", "", gin.H{"email": "admin@asociatie.ro", "password": "parola123"})
	require.Equal(t, http.StatusOK, w.Code)
	var session dto.AuthResponse
	decode(t, w, &session)

	w = s.do(http.MethodGet, "/auth/me", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me dto.UserResponse
	decode(t, w, &me)
	assert.Equal(t, "admin@asociatie.ro", me.Email)

	w = s.do(http.MethodPost, "/auth/refresh", "", gin.H{"token": "invalido"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExpenseDistributionAndPayment(t *testing.T) {
	s := newTestServer(t)
	e := s.seed()
	owned := e.apartments[0].ID

	w := s.createExpense(e.adminToken, e.blockID, "300", "2099-12-31")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var exp dto.ExpenseResponse
	decode(t, w, &exp)
	assert.Equal(t, "PENDING", exp.Status)
	assert.NotNil(t, exp.DistributedAt)

	list := s.allocations(e.adminToken, "expenseId="+exp.ID)
	require.Len(t, list, 3)
	total := decimal.Zero
	for _, ae := range list {
		total = total.Add(ae.Amount)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(300)))

	// O morador só enxerga a própria cota
	mine := s.allocations(e.tenantToken, "")
	require.Len(t, mine, 1)
	assert.Equal(t, owned, mine[0].ApartmentID)
	assert.True(t, mine[0].Amount.Equal(decimal.NewFromInt(60)))

	t.Run("valor divergente", func(t *testing.T) {
		w := s.do(http.MethodPost, "/payments", e.tenantToken, gin.H{
			"apartmentExpenseId": mine[0].ID, "amount": 59, "method": "CARD",
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		var resp dto.ErrorResponse
		decode(t, w, &resp)
		assert.NotNil(t, resp.Fields)
	})

	t.Run("cota de outro apartamento", func(t *testing.T) {
		w := s.do(http.MethodPost, "/payments", e.tenantToken, gin.H{
			"apartmentId": e.apartments[1].ID, "expenseId": exp.ID, "amount": 90, "method": "CARD",
		})
		assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	body := gin.H{"apartmentId": owned, "expenseId": exp.ID, "amount": 60, "method": "TRANSFER", "reference": "OP-1"}
	w = s.do(http.MethodPost, "/payments", e.tenantToken, body, controller.IdempotencyKeyHeader, "chave-1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first dto.PaymentResponse
	decode(t, w, &first)

	// Repetição com a mesma chave devolve o pagamento original
	w = s.do(http.MethodPost, "/payments", e.tenantToken, body, controller.IdempotencyKeyHeader, "chave-1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var replay dto.PaymentResponse
	decode(t, w, &replay)
	assert.Equal(t, first.ID, replay.ID)

	// Sem chave, um segundo pagamento encontra a cota quitada
	w = s.do(http.MethodPost, "/payments", e.tenantToken, body)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	mine = s.allocations(e.tenantToken, "apartmentId="+owned)
	require.Len(t, mine, 1)
	assert.Equal(t, "PAID", mine[0].Status)
	assert.True(t, mine[0].Outstanding.IsZero())

	w = s.do(http.MethodGet, "/payments?apartmentId="+owned, e.tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var payments []dto.PaymentResponse
	decode(t, w, &payments)
	assert.Len(t, payments, 1)

	w = s.do(http.MethodPost, "/expenses/"+exp.ID+"/distribute", e.adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExpenseValidation(t *testing.T) {
	s := newTestServer(t)
	e := s.seed()

	assert.Equal(t, http.StatusUnprocessableEntity, s.createExpense(e.adminToken, e.blockID, "0", "2099-12-31").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, s.createExpense(e.adminToken, e.blockID, "10.001", "2099-12-31").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, s.createExpense(e.adminToken, e.blockID, "0.02", "2099-12-31").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, s.createExpense(e.adminToken, e.blockID, "100000000000000000", "2099-12-31").Code)
	assert.Empty(t, s.allocations(e.adminToken, ""))
	assert.Equal(t, http.StatusBadRequest, s.createExpense(e.adminToken, e.blockID, "10", "31/12/2099").Code)
	assert.Equal(t, http.StatusForbidden, s.createExpense(e.tenantToken, e.blockID, "10", "2099-12-31").Code)
	assert.Equal(t, http.StatusNotFound, s.createExpense(e.adminToken, "inexistente", "10", "2099-12-31").Code)
}

func TestSweepOverdue(t *testing.T) {
	s := newTestServer(t)
	e := s.seed()

	w := s.createExpense(e.adminToken, e.blockID, "100", "2026-01-31")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/apartment-expenses/sweep-overdue", e.tenantToken, nil).Code)

	// Administrador sem associação não varre nada
	unbound := s.register("fara-asociatie@asociatie.ro", "ADMIN_ASSOCIATION")
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/apartment-expenses/sweep-overdue", unbound.Token, nil).Code)

	// Administrador de outra associação não alcança estas cotas
	other := s.register("vecin@asociatie.ro", "ADMIN_ASSOCIATION")
	w = s.do(http.MethodPost, "/associations", other.Token, gin.H{"name": "Asociația Teilor", "address": "Str. Teilor 3"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/apartment-expenses/sweep-overdue", other.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.SweepResponse
	decode(t, w, &resp)
	assert.Zero(t, resp.Updated)
	assert.Len(t, s.allocations(e.adminToken, "status=PENDING"), 3)

	// Data de referência no futuro é recusada
	w = s.do(http.MethodPost, "/apartment-expenses/sweep-overdue", e.adminToken, gin.H{"asOf": "2100-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Len(t, s.allocations(e.adminToken, "status=PENDING"), 3)

	w = s.do(http.MethodPost, "/apartment-expenses/sweep-overdue", e.adminToken, gin.H{"asOf": "2026-02-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &resp)
	assert.Equal(t, int64(3), resp.Updated)

	// Idempotente
	w = s.do(http.MethodPost, "/apartment-expenses/sweep-overdue", e.adminToken, gin.H{"asOf": "2026-02-01"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, int64(0), resp.Updated)

	overdue := s.allocations(e.adminToken, "status=OVERDUE")
	assert.Len(t, overdue, 3)
}

func TestCommunityEndpoints(t *testing.T) {
	s := newTestServer(t)
	e := s.seed()
	owned := e.apartments[0].ID

	w := s.do(http.MethodPost, "/meter-readings", e.tenantToken, gin.H{
		"apartmentId": owned, "meterType": "WATER", "currentReading": 90, "previousReading": 100, "readingDate": "2026-05-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/meter-readings", e.tenantToken, gin.H{
		"apartmentId": owned, "meterType": "WATER", "currentReading": 150, "previousReading": 100, "readingDate": "2026-05-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reading dto.MeterReadingResponse
	decode(t, w, &reading)
	require.NotNil(t, reading.Consumption)
	assert.True(t, reading.Consumption.Equal(decimal.NewFromInt(50)))

	w = s.do(http.MethodGet, "/meter-readings/latest?apartmentId="+owned+"&meterType=WATER", e.tenantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/announcements", e.tenantToken, gin.H{"blockId": e.blockID, "title": "Apă", "content": "Oprire apă"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPost, "/announcements", e.adminToken, gin.H{"blockId": e.blockID, "title": "Apă", "content": "Oprire apă"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/repair-requests", e.tenantToken, gin.H{
		"apartmentId": owned, "description": "Țeavă spartă", "location": "Baie", "priority": "HIGH",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var repair dto.RepairRequestResponse
	decode(t, w, &repair)
	assert.Equal(t, "PENDING", repair.Status)

	w = s.do(http.MethodPut, "/repair-requests/"+repair.ID, e.tenantToken, gin.H{"status": "COMPLETED"})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	w = s.do(http.MethodPut, "/repair-requests/"+repair.ID, e.adminToken, gin.H{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &repair)
	assert.Equal(t, "IN_PROGRESS", repair.Status)

	w = s.do(http.MethodGet, "/dashboard/stats", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats dashboard.Stats
	decode(t, w, &stats)
	assert.Equal(t, 3, stats.TotalApartments)
	assert.Equal(t, 1, stats.PendingRepairs)

	w = s.do(http.MethodGet, "/reports/blocks/"+e.blockID+"/statement.xlsx", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/reports/blocks/"+e.blockID+"/statement.xlsx", e.tenantToken, nil).Code)
}

func TestAssociationUsers(t *testing.T) {
	s := newTestServer(t)
	e := s.seed()

	var associations []dto.AssociationResponse
	w := s.do(http.MethodGet, "/associations", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &associations)
	require.Len(t, associations, 1)
	id := associations[0].ID

	w = s.do(http.MethodPost, "/associations/"+id+"/invite", e.adminToken, gin.H{
		"email": "bloc@asociatie.ro", "firstName": "Mihai", "lastName": "Dobre", "role": "BLOCK_ADMIN", "blockId": e.blockID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var invite dto.InviteResponse
	decode(t, w, &invite)
	assert.Equal(t, "INVITED", invite.Status)
	require.NotEmpty(t, invite.InviteToken)

	// Sem o token do convite o email convidado não pode ser assumido
	accept := gin.H{"email": "bloc@asociatie.ro", "firstName": "Mihai", "lastName": "Dobre", "password": "parola123"}
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/auth/register", "", accept).Code)

	accept["inviteToken"] = invite.InviteToken
	w = s.do(http.MethodPost, "/auth/register", "", accept)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session dto.AuthResponse
	decode(t, w, &session)
	assert.Equal(t, "BLOCK_ADMIN", session.User.Role)
	assert.Equal(t, e.blockID, session.User.BlockID)

	for _, path := range []string{"/associations/" + id + "/users", "/associations/users/" + id} {
		w = s.do(http.MethodGet, path+"?size=1", e.adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var page struct {
			Content       []dto.UserResponse `json:"content"`
			TotalElements int                `json:"totalElements"`
		}
		decode(t, w, &page)
		assert.Len(t, page.Content, 1)
		assert.GreaterOrEqual(t, page.TotalElements, 3)
	}

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/users", e.tenantToken, nil).Code)
}
