package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"campus-api/internal/audit"
	"campus-api/internal/listing"
	"campus-api/internal/util"
)

const testSecret = "controller-test-secret"

type authServiceStub struct {
	createUserFn    func(user User) (*User, error)
	getUserFn       func(email string) (*User, error)
	getUserByIDFn   func(id string) (*User, error)
	listUsersFn     func(schoolID string, f ListFilters, p listing.Params) (listing.Result[User], error)
	updateUserFn    func(schoolID, id string, in UpdateUserInput) (*User, error)
	deleteUserFn    func(schoolID, id string) error
	sendOTPFn       func(email string) (*User, string, error)
	resetPasswordFn func(email, code, newPassword string) (*User, error)
}

func (s *authServiceStub) CreateUser(user User) (*User, error) { return s.createUserFn(user) }
func (s *authServiceStub) GetUser(email string) (*User, error) { return s.getUserFn(email) }
func (s *authServiceStub) GetUserByID(id string) (*User, error) {
	return s.getUserByIDFn(id)
}
func (s *authServiceStub) ListUsers(schoolID string, f ListFilters, p listing.Params) (listing.Result[User], error) {
	return s.listUsersFn(schoolID, f, p)
}
func (s *authServiceStub) UpdateUser(schoolID, id string, in UpdateUserInput) (*User, error) {
	return s.updateUserFn(schoolID, id, in)
}
func (s *authServiceStub) DeleteUser(schoolID, id string) error {
	return s.deleteUserFn(schoolID, id)
}
func (s *authServiceStub) SendOTP(email string) (*User, string, error) {
	return s.sendOTPFn(email)
}
func (s *authServiceStub) ResetPassword(email, code, newPassword string) (*User, error) {
	return s.resetPasswordFn(email, code, newPassword)
}

type logStub struct{ entries []audit.Entry }

func (l *logStub) Log(entry audit.Entry, _ any) error {
	l.entries = append(l.entries, entry)
	return nil
}

func newController(stub *authServiceStub) (*AuthController, *logStub) {
	ls := &logStub{}
	return &AuthController{
		AuthService: stub,
		LS:          ls,
		Secret:      testSecret,
	}, ls
}

func postJSON(handler gin.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST(path, handler)

	b, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Success_IssuesTokens(t *testing.T) {
	hashed, err := util.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	sid := "s1"
	stub := &authServiceStub{
		getUserFn: func(email string) (*User, error) {
			return &User{ID: "u1", Email: email, Password: hashed, Role: RoleTeacher, SchoolID: &sid}, nil
		},
	}
	controller, ls := newController(stub)

	w := postJSON(controller.Login, "/login", LoginRequest{Email: "t@example.com", Password: "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", resp)
	}

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("access token should verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != "u1" || claims["role"] != RoleTeacher || claims["school_id"] != "s1" {
		t.Fatalf("unexpected claims: %#v", claims)
	}
	if claims["jti"] == "" {
		t.Fatalf("expected jti claim")
	}

	if len(ls.entries) != 1 || ls.entries[0].Action != "LOGIN" {
		t.Fatalf("expected LOGIN audit entry, got %#v", ls.entries)
	}
}

func TestLogin_WrongPassword_401(t *testing.T) {
	hashed, _ := util.HashPassword("right")
	stub := &authServiceStub{
		getUserFn: func(email string) (*User, error) {
			return &User{ID: "u1", Email: email, Password: hashed}, nil
		},
	}
	controller, _ := newController(stub)

	w := postJSON(controller.Login, "/login", LoginRequest{Email: "t@example.com", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLogin_UnknownUser_401(t *testing.T) {
	stub := &authServiceStub{
		getUserFn: func(string) (*User, error) { return nil, errors.New("not found") },
	}
	controller, _ := newController(stub)

	w := postJSON(controller.Login, "/login", LoginRequest{Email: "t@example.com", Password: "x"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLogin_MissingFields_400(t *testing.T) {
	controller, _ := newController(&authServiceStub{})

	w := postJSON(controller.Login, "/login", map[string]string{"email": "not-an-email"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSignUp_HashesPasswordAndDefaults(t *testing.T) {
	var created User
	stub := &authServiceStub{
		createUserFn: func(user User) (*User, error) {
			created = user
			user.ID = "u-new"
			return &user, nil
		},
	}
	controller, ls := newController(stub)

	w := postJSON(controller.SignUp, "/signup", map[string]any{
		"firstname": "Nyasha",
		"lastname":  "Dube",
		"email":     "n@example.com",
		"password":  "secret123",
		"role":      "teacher",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	if created.Password == "secret123" || created.Password == "" {
		t.Fatalf("password must be stored hashed")
	}
	if err := util.VerifyPassword("secret123", created.Password); err != nil {
		t.Fatalf("hash should verify: %v", err)
	}
	if len(ls.entries) != 1 || ls.entries[0].Action != "SIGNUP" {
		t.Fatalf("expected SIGNUP audit entry")
	}
}

func TestSignUp_RejectsUnknownRole(t *testing.T) {
	controller, _ := newController(&authServiceStub{})

	w := postJSON(controller.SignUp, "/signup", map[string]any{
		"firstname": "A",
		"lastname":  "B",
		"email":     "a@example.com",
		"password":  "secret123",
		"role":      "superuser",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", w.Code)
	}
}

func TestRefresh_ValidRefreshToken_IssuesAccess(t *testing.T) {
	sid := "s1"
	user := &User{ID: "u1", Role: RoleAdmin, SchoolID: &sid}
	stub := &authServiceStub{
		getUserByIDFn: func(id string) (*User, error) {
			if id != "u1" {
				return nil, errors.New("not found")
			}
			return user, nil
		},
	}
	controller, _ := newController(stub)

	refresh, _, err := controller.signToken(user, time.Hour, "refresh")
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}

	w := postJSON(controller.Refresh, "/refresh", RefreshRequest{RefreshToken: refresh})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["token"] == "" {
		t.Fatalf("expected new access token")
	}
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	user := &User{ID: "u1", Role: RoleAdmin}
	controller, _ := newController(&authServiceStub{
		getUserByIDFn: func(string) (*User, error) { return user, nil },
	})

	access, _, err := controller.signToken(user, time.Hour, "access")
	if err != nil {
		t.Fatalf("sign access: %v", err)
	}

	w := postJSON(controller.Refresh, "/refresh", RefreshRequest{RefreshToken: access})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for access token used as refresh, got %d", w.Code)
	}
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	stub := &authServiceStub{
		getUserByIDFn: func(id string) (*User, error) {
			return &User{ID: id, Email: "me@example.com"}, nil
		},
	}
	controller, _ := newController(stub)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		c.Set("userID", "u1")
		controller.Me(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp User
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ID != "u1" || resp.Email != "me@example.com" {
		t.Fatalf("unexpected user: %+v", resp)
	}
}

func TestMe_401_WithoutContext(t *testing.T) {
	controller, _ := newController(&authServiceStub{})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", controller.Me)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestListUsers_ForwardsScopeAndFilters(t *testing.T) {
	var gotSchool string
	var gotFilters ListFilters
	stub := &authServiceStub{
		listUsersFn: func(schoolID string, f ListFilters, p listing.Params) (listing.Result[User], error) {
			gotSchool = schoolID
			gotFilters = f
			return listing.Result[User]{Data: []User{}, Page: p.Page, Pages: 1}, nil
		},
	}
	controller, _ := newController(stub)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/users", func(c *gin.Context) {
		c.Set("schoolID", "s9")
		controller.ListUsers(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/users?role=teacher&search=moyo", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotSchool != "s9" || gotFilters.Role != "teacher" || gotFilters.Search != "moyo" {
		t.Fatalf("unexpected forwarding: school=%q filters=%+v", gotSchool, gotFilters)
	}
}

func TestDeleteUser_NotFound_404(t *testing.T) {
	stub := &authServiceStub{
		deleteUserFn: func(schoolID, id string) error { return gorm.ErrRecordNotFound },
	}
	controller, _ := newController(stub)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/users/:id", func(c *gin.Context) {
		c.Set("schoolID", "s1")
		controller.DeleteUser(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/users/u404", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
