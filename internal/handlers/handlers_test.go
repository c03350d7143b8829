package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sliceline/pizzeria/internal/handlers"
	"github.com/sliceline/pizzeria/internal/services"
	"github.com/sliceline/pizzeria/internal/views"
	"github.com/sliceline/pizzeria/pkg"
	middleware "github.com/sliceline/pizzeria/pkg/middlewares"
	"github.com/sliceline/pizzeria/pkg/models"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuthService resolves fixed tokens to fixed users and issues tokens for
// a fixed credential set.
type stubAuthService struct {
	tokens      map[string]models.User // token -> user
	credentials map[string]string      // username -> password
}

func (s *stubAuthService) IssueToken(_ context.Context, _, username, password string) (string, error) {
	if pw, ok := s.credentials[username]; ok && pw == password {
		return "token-" + username, nil
	}
	return "", pkg.NewAppError(pkg.ErrUnauthenticatedCode, "incorrect username or password", nil)
}

func (s *stubAuthService) ResolveUser(_ context.Context, _, token string) (models.User, error) {
	user, ok := s.tokens[token]
	if !ok {
		return models.User{}, pkg.NewAppError(pkg.ErrUnauthenticatedCode, "invalid or expired token", nil)
	}
	return user, nil
}

// stubUserService keeps users in memory with the same duplicate and
// not-found semantics as the real implementation.
type stubUserService struct {
	users  map[string]models.User // username -> user
	orders map[int64][]models.Order
	nextID int64
}

func newStubUserService() *stubUserService {
	return &stubUserService{
		users:  map[string]models.User{},
		orders: map[int64][]models.Order{},
		nextID: 1,
	}
}

func (s *stubUserService) SignUp(_ context.Context, _ string, req views.SignUpRequest) (models.User, error) {
	for _, u := range s.users {
		if u.Email == req.Email {
			return models.User{}, pkg.NewAppError(pkg.ErrInvalidInputCode,
				fmt.Sprintf("User with email %s already exists", req.Email), nil)
		}
	}
	if _, ok := s.users[req.Username]; ok {
		return models.User{}, pkg.NewAppError(pkg.ErrInvalidInputCode,
			fmt.Sprintf("User with username %s already exists", req.Username), nil)
	}
	user := models.User{
		ID:        s.nextID,
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  "hashed:" + req.Password,
		IsStaff:   req.IsStaff,
		IsActive:  req.IsActive,
	}
	s.nextID++
	s.users[req.Username] = user
	return user, nil
}

func (s *stubUserService) Login(_ context.Context, _ string, req views.LoginRequest) (models.User, string, error) {
	user, ok := s.users[req.Username]
	if !ok || user.Password != "hashed:"+req.Password {
		return models.User{}, "", pkg.NewAppError(pkg.ErrUnauthenticatedCode, "incorrect username or password", nil)
	}
	return user, "token-" + req.Username, nil
}

func (s *stubUserService) Profile(_ context.Context, _ string, user models.User) ([]models.Order, error) {
	return s.orders[user.ID], nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, _ string, userID int64, req views.UpdateUserRequest) (models.User, error) {
	for name, u := range s.users {
		if u.ID == userID {
			u.Username = req.Username
			u.Email = req.Email
			u.FirstName = req.FirstName
			u.LastName = req.LastName
			delete(s.users, name)
			s.users[u.Username] = u
			return u, nil
		}
	}
	return models.User{}, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "User not found", nil)
}

// stubOrderService is an in-memory OrderService with the contract semantics
// of the real one: owner-scoped lookups report absence via the found flag,
// staff lookups and deletes fail with not-found errors.
type stubOrderService struct {
	orders map[int64]models.Order
	nextID int64
}

func newStubOrderService() *stubOrderService {
	return &stubOrderService{orders: map[int64]models.Order{}, nextID: 1}
}

func (s *stubOrderService) Place(_ context.Context, _ string, userID int64, req views.OrderRequest) (models.Order, error) {
	size := req.PizzaSize
	if size == "" {
		size = pkg.PizzaSizeSmall
	}
	order := models.Order{
		ID:        s.nextID,
		Quantity:  req.Quantity,
		Status:    pkg.OrderStatusPending,
		PizzaSize: size,
		UserID:    userID,
	}
	s.nextID++
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrderService) ListForUser(_ context.Context, _ string, userID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrderService) GetForUser(_ context.Context, _ string, id, userID int64) (models.Order, bool, error) {
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return models.Order{}, false, nil
	}
	return o, true, nil
}

func (s *stubOrderService) UpdateForUser(_ context.Context, _ string, id, userID int64, req views.OrderRequest) (models.Order, bool, error) {
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return models.Order{}, false, nil
	}
	o.Quantity = req.Quantity
	if req.PizzaSize != "" {
		o.PizzaSize = req.PizzaSize
	} else {
		o.PizzaSize = pkg.PizzaSizeSmall
	}
	s.orders[id] = o
	return o, true, nil
}

func (s *stubOrderService) DeleteForUser(_ context.Context, _ string, id, userID int64) error {
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return pkg.NewAppError(pkg.ErrRecordNotFoundCode, "Order not found", nil)
	}
	delete(s.orders, o.ID)
	return nil
}

func (s *stubOrderService) ListAll(_ context.Context, _ string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *stubOrderService) Get(_ context.Context, _ string, id int64) (models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "Order not found", nil)
	}
	return o, nil
}

func (s *stubOrderService) SetStatus(_ context.Context, _ string, id int64, status pkg.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, pkg.NewAppError(pkg.ErrInvalidInputCode, "Invalid order status", nil)
	}
	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "Order not found", nil)
	}
	o.Status = status
	s.orders[id] = o
	return o, nil
}

func (s *stubOrderService) Delete(_ context.Context, _ string, id int64) error {
	if _, ok := s.orders[id]; !ok {
		return pkg.NewAppError(pkg.ErrRecordNotFoundCode, "Order not found", nil)
	}
	delete(s.orders, id)
	return nil
}

var (
	_ services.AuthService  = (*stubAuthService)(nil)
	_ services.UserService  = (*stubUserService)(nil)
	_ services.OrderService = (*stubOrderService)(nil)
)

// testEnv mirrors the app wiring over stub services.
type testEnv struct {
	router *gin.Engine
	auth   *stubAuthService
	users  *stubUserService
	orders *stubOrderService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		auth: &stubAuthService{
			tokens:      map[string]models.User{},
			credentials: map[string]string{},
		},
		users:  newStubUserService(),
		orders: newStubOrderService(),
	}

	logger := zap.NewNop()
	r := gin.New()
	r.Use(middleware.TraceID())

	authenticate := middleware.Authenticate(logger, env.auth)

	handlers.NewBaseHandler(logger).RegisterRoutes(r)
	handlers.NewAuthHandler(logger, env.auth).RegisterRoutes(r)
	handlers.NewUserHandler(logger, env.users).RegisterRoutes(r, authenticate)
	handlers.NewOrderHandler(logger, env.orders).RegisterRoutes(r, authenticate)
	handlers.NewStaffHandler(logger, env.orders).RegisterRoutes(r, authenticate)

	env.router = r
	return env
}

// addUser registers a user with the auth stub and returns its bearer token.
func (e *testEnv) addUser(user models.User) string {
	token := "token-" + user.Username
	e.auth.tokens[token] = user
	return token
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}
