package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"os-manager/internal/entities"
	"os-manager/internal/repositories"
	"os-manager/internal/services"
	"os-manager/pkg/config"
	"os-manager/pkg/customvalidator"
	"os-manager/pkg/eventbus"
	"os-manager/pkg/service"
	"os-manager/pkg/storage"
	"os-manager/pkg/utils"
	"os-manager/pkg/websocket"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

// RouterTestSuite гоняет HTTP-запросы через весь стек поверх хранилища в памяти.
type RouterTestSuite struct {
	suite.Suite
	Echo         *echo.Echo
	Bus          *eventbus.Bus
	Hasher       services.PasswordHasher
	Users        *repositories.UserRepository
	ManagerToken string
}

func (s *RouterTestSuite) SetupTest() {
	nop := zap.NewNop()
	e := echo.New()
	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	cols := storage.NewCollections(storage.NewMemoryStore(), "os_manager_", nop)
	hasher, err := services.NewPasswordHasher(services.HasherBcrypt)
	s.Require().NoError(err)

	cfg := &config.Config{
		Auth: config.AuthConfig{MaxLoginAttempts: 5, LockoutDuration: time.Minute, LoginRatePerMinute: 100},
	}
	s.Bus = eventbus.New(nop)
	deps := Dependencies{
		Collections: cols,
		Cache:       repositories.NewMemoryCacheRepository(),
		Hasher:      hasher,
		Bus:         s.Bus,
		Hub:         websocket.NewHub(nop),
		JWT:         service.NewJWTService("test-secret", time.Hour, nop),
	}
	InitRouter(e, deps, &Loggers{Main: nop, Auth: nop, Order: nop, User: nop}, cfg)

	s.Echo = e
	s.Hasher = hasher
	s.Users = repositories.NewUserRepository(cols, nop)

	s.seedUser("master@gmail.com", entities.RoleManager)
	s.ManagerToken = s.login("master@gmail.com", "12345678")
}

func (s *RouterTestSuite) TearDownTest() {
	s.Bus.Wait()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) seedUser(email string, role entities.Role) {
	hash, err := s.Hasher.Hash("12345678")
	s.Require().NoError(err)
	_, err = s.Users.Create(context.Background(), entities.User{
		FullName: email, Email: email, Role: role, IsActive: true, PasswordHash: hash,
	})
	s.Require().NoError(err)
}

func (s *RouterTestSuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *RouterTestSuite) login(email, password string) string {
	rec, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			Email       string   `json:"email"`
			Permissions []string `json:"permissions"`
		} `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &body))
	s.Require().NotEmpty(body.AccessToken)
	s.Equal(email, body.User.Email)
	s.NotEmpty(body.User.Permissions)
	return body.AccessToken
}

func (s *RouterTestSuite) TestLoginRejectsBadPassword() {
	rec, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "master@gmail.com", "password": "wrong"})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.False(env.Status)
}

func (s *RouterTestSuite) TestSecureRoutesRequireToken() {
	rec, _ := s.do(http.MethodGet, "/api/orders", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/orders", "garbage", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestOrderLifecycleProducesOneOverdueNotification() {
	rec, env := s.do(http.MethodPost, "/api/orders", s.ManagerToken, map[string]string{
		"os_number":   "0000000001",
		"title":       "Troca de disjuntor",
		"client_name": "Padaria Central",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var order entities.ServiceOrder
	s.Require().NoError(json.Unmarshal(env.Body, &order))
	s.Equal(entities.StatusAgendado, order.Status)

	rec, _ = s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", s.ManagerToken, map[string]string{"status": "atrasado"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	rec, _ = s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", s.ManagerToken, map[string]string{"status": "atrasado"})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/notifications", s.ManagerToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list struct {
		Items       []entities.Notification `json:"items"`
		UnreadCount int                     `json:"unread_count"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &list))
	overdue := 0
	for _, n := range list.Items {
		if n.Type == entities.NotificationError {
			overdue++
			s.Contains(n.Message, "0000000001")
		}
	}
	s.Equal(1, overdue)
	s.Equal(2, list.UnreadCount)

	rec, _ = s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", s.ManagerToken, map[string]string{"status": "cancelado"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodDelete, "/api/orders/"+order.ID, s.ManagerToken, nil)
	s.Equal(http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodGet, "/api/orders/"+order.ID, s.ManagerToken, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestRolePermissions() {
	s.seedUser("ana@ospro.com", entities.RoleAnalist)
	analist := s.login("ana@ospro.com", "12345678")

	rec, _ := s.do(http.MethodPost, "/api/orders", analist, map[string]string{
		"os_number": "77", "title": "x", "client_name": "y",
	})
	s.Equal(http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/logs", analist, nil)
	s.Equal(http.StatusForbidden, rec.Code)
	rec, _ = s.do(http.MethodGet, "/api/logs?severity=info", s.ManagerToken, nil)
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/users", analist, nil)
	s.Equal(http.StatusForbidden, rec.Code)
	rec, _ = s.do(http.MethodGet, "/api/reports", analist, nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestProfileUpdateAndMe() {
	rec, _ := s.do(http.MethodPut, "/api/auth/profile", s.ManagerToken, map[string]string{"nickname": "Boss"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec, env := s.do(http.MethodGet, "/api/auth/me", s.ManagerToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var me struct {
		Nickname *string `json:"nickname"`
		Email    string  `json:"email"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &me))
	s.Require().NotNil(me.Nickname)
	s.Equal("Boss", *me.Nickname)

	long := strings.TrimSpace(strings.Repeat("palavra ", 101))
	rec, _ = s.do(http.MethodPut, "/api/auth/profile", s.ManagerToken, map[string]string{"description": long})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestDashboardAndExport() {
	rec, _ := s.do(http.MethodPost, "/api/orders", s.ManagerToken, map[string]string{
		"os_number": "1001", "title": "Manutenção de Servidor", "client_name": "Tech Solutions", "priority": "alta",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec, env := s.do(http.MethodGet, "/api/dashboard", s.ManagerToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var dashboard struct {
		Stats struct {
			Total int `json:"total"`
		} `json:"stats"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &dashboard))
	s.Equal(1, dashboard.Stats.Total)

	rec, _ = s.do(http.MethodGet, "/api/reports/export?format=csv", s.ManagerToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "relatorio-os.csv")
	s.Contains(rec.Body.String(), "Manutenção de Servidor")

	rec, _ = s.do(http.MethodGet, "/api/reports/export?format=pdf", s.ManagerToken, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}
