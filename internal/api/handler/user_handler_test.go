package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/authgrid/auth-service/internal/core/domain"
)

type stubUserService struct {
	getFn        func(ctx context.Context, id string) (*domain.User, error)
	listFn       func(ctx context.Context) ([]domain.User, error)
	updateFn     func(ctx context.Context, id, email, oldPassword, newPassword, newPasswordConfirm string) (*domain.User, error)
	disableFn    func(ctx context.Context, id string) (*domain.User, error)
	assignRoleFn func(ctx context.Context, userID, roleID string) (*domain.User, error)
	roleFn       func(ctx context.Context, userID string) (*domain.RolePermissions, error)
	historyFn    func(ctx context.Context, userID string, page, perPage int64) (*domain.HistoryPage, error)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Update(ctx context.Context, id, email, oldPassword, newPassword, newPasswordConfirm string) (*domain.User, error) {
	return s.updateFn(ctx, id, email, oldPassword, newPassword, newPasswordConfirm)
}

func (s *stubUserService) Disable(ctx context.Context, id string) (*domain.User, error) {
	return s.disableFn(ctx, id)
}

func (s *stubUserService) AssignRole(ctx context.Context, userID, roleID string) (*domain.User, error) {
	return s.assignRoleFn(ctx, userID, roleID)
}

func (s *stubUserService) RoleWithPermissions(ctx context.Context, userID string) (*domain.RolePermissions, error) {
	return s.roleFn(ctx, userID)
}

func (s *stubUserService) History(ctx context.Context, userID string, page, perPage int64) (*domain.HistoryPage, error) {
	return s.historyFn(ctx, userID, page, perPage)
}

func TestUserHandler_Register_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	auth := &stubAuthService{
		registerFn: func(_ context.Context, email, password, passwordConfirm string) (*domain.User, error) {
			if email != "alice@example.com" || password != "secret" || passwordConfirm != "secret" {
				t.Fatalf("unexpected args: %s %s %s", email, password, passwordConfirm)
			}
			return &domain.User{ID: "user-1", Email: email}, nil
		},
	}
	h := NewUserHandler(auth, &stubUserService{})

	c, rec := newJSONContext(e, http.MethodPost, "/users/register",
		`{"email":"alice@example.com","password":"secret","password_confirm":"secret"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "user-1" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["PasswordHash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestUserHandler_Register_InvalidEmail(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewUserHandler(&stubAuthService{}, &stubUserService{})

	c, _ := newJSONContext(e, http.MethodPost, "/users/register",
		`{"email":"not-an-email","password":"secret","password_confirm":"secret"}`)
	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusExpectationFailed {
		t.Fatalf("expected 417 HTTPError, got %v", err)
	}
}

func TestUserHandler_Register_Duplicate(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	auth := &stubAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewUserHandler(auth, &stubUserService{})

	c, _ := newJSONContext(e, http.MethodPost, "/users/register",
		`{"email":"bob@example.com","password":"p","password_confirm":"p"}`)
	if err := h.Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func pathContext(e *echo.Echo, method, target string, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func TestUserHandler_Get(t *testing.T) {
	e := echo.New()
	svc := &stubUserService{
		getFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != "user-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.User{ID: id, Email: "alice@example.com"}, nil
		},
	}
	h := NewUserHandler(&stubAuthService{}, svc)

	c, rec := pathContext(e, http.MethodGet, "/users/user-1", map[string]string{"id": "user-1"})
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	svc := &stubUserService{
		getFn: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(&stubAuthService{}, svc)

	c, _ := pathContext(e, http.MethodGet, "/users/ghost", map[string]string{"id": "ghost"})
	if err := h.Get(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}

func TestUserHandler_Update(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubUserService{
		updateFn: func(_ context.Context, id, email, oldPassword, newPassword, newPasswordConfirm string) (*domain.User, error) {
			if id != "user-1" || email != "new@example.com" || oldPassword != "old" {
				t.Fatalf("unexpected args: %s %s %s", id, email, oldPassword)
			}
			if newPassword != "new" || newPasswordConfirm != "new" {
				t.Fatalf("unexpected new password args")
			}
			return &domain.User{ID: id, Email: email}, nil
		},
	}
	h := NewUserHandler(&stubAuthService{}, svc)

	c, rec := newJSONContext(e, http.MethodPost, "/users/user-1",
		`{"email":"new@example.com","old_password":"old","new_password":"new","new_password_confirm":"new"}`)
	c.SetParamNames("id")
	c.SetParamValues("user-1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Disable_AlreadyDisabled(t *testing.T) {
	e := echo.New()
	svc := &stubUserService{
		disableFn: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrAlreadyDisabled
		},
	}
	h := NewUserHandler(&stubAuthService{}, svc)

	c, _ := pathContext(e, http.MethodDelete, "/users/user-1", map[string]string{"id": "user-1"})
	if err := h.Disable(c); err != domain.ErrAlreadyDisabled {
		t.Fatalf("expected ErrAlreadyDisabled to propagate, got %v", err)
	}
}

func TestUserHandler_SetRole(t *testing.T) {
	e := echo.New()
	svc := &stubUserService{
		assignRoleFn: func(_ context.Context, userID, roleID string) (*domain.User, error) {
			if userID != "user-1" || roleID != "role-2" {
				t.Fatalf("unexpected args: %s %s", userID, roleID)
			}
			return &domain.User{ID: userID, RoleID: roleID}, nil
		},
	}
	h := NewUserHandler(&stubAuthService{}, svc)

	c, rec := pathContext(e, http.MethodPut, "/users/user-1/role/role-2",
		map[string]string{"id": "user-1", "role_id": "role-2"})
	if err := h.SetRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_History_QueryParams(t *testing.T) {
	e := echo.New()
	svc := &stubUserService{
		historyFn: func(_ context.Context, userID string, page, perPage int64) (*domain.HistoryPage, error) {
			if page != 2 || perPage != 5 {
				t.Fatalf("unexpected paging: page=%d per_page=%d", page, perPage)
			}
			return &domain.HistoryPage{Page: page, PerPage: perPage}, nil
		},
	}
	h := NewUserHandler(&stubAuthService{}, svc)

	req := httptest.NewRequest(http.MethodGet, "/users/user-1/history?page=2&per_page=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("user-1")

	if err := h.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_History_BadParamsFallBack(t *testing.T) {
	e := echo.New()
	svc := &stubUserService{
		historyFn: func(_ context.Context, _ string, page, perPage int64) (*domain.HistoryPage, error) {
			if page != 1 || perPage != 10 {
				t.Fatalf("expected defaults, got page=%d per_page=%d", page, perPage)
			}
			return &domain.HistoryPage{Page: page, PerPage: perPage}, nil
		},
	}
	h := NewUserHandler(&stubAuthService{}, svc)

	req := httptest.NewRequest(http.MethodGet, "/users/user-1/history?page=zero&per_page=-3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("user-1")

	if err := h.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
