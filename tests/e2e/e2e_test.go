package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"serenityspa/internal/database"
	"serenityspa/internal/domain"
	"serenityspa/internal/middleware"
	"serenityspa/internal/modules/admin"
	"serenityspa/internal/modules/auth"
	"serenityspa/internal/modules/booking"
	"serenityspa/internal/modules/cart"
	"serenityspa/internal/modules/catalog"
	"serenityspa/internal/modules/checkout"
	"serenityspa/internal/modules/review"
	"serenityspa/internal/modules/voucher"
	"serenityspa/internal/notify"
	jwtsvc "serenityspa/internal/pkg/jwt"
	"serenityspa/internal/repository"
	"serenityspa/internal/storage"
	"serenityspa/internal/store"
)

type testSuite struct {
	router   *gin.Engine
	db       *gorm.DB
	recorder *notify.Recorder
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *errorDetail           `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupSuite(t *testing.T) *testSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(fmt.Sprintf("file:e2e_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))

	kv := storage.NewGormKV(db)
	require.NoError(t, kv.Migrate())

	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	productRepo := repository.NewProductRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	logger := zerolog.Nop()
	j := jwtsvc.New("e2e-secret", time.Hour)

	sessions := store.NewSessionStore(kv, userRepo, 0, logger)
	carts := store.NewCartStore(kv, logger)
	vouchers := store.NewVoucherStore(kv, voucherRepo, logger)

	recorder := notify.NewRecorder()

	authHandler := auth.NewHandler(sessions, j)
	catalogHandler := catalog.NewHandler(branchRepo, serviceRepo, productRepo)
	cartHandler := cart.NewHandler(carts, productRepo, recorder)
	voucherHandler := voucher.NewHandler(vouchers, recorder)
	bookingHandler := booking.NewHandler(kv, branchRepo, serviceRepo, recorder, time.Sunday, logger)
	checkoutHandler := checkout.NewHandler(carts, branchRepo, recorder, 0, logger)
	reviewHandler := review.NewHandler(reviewRepo)
	adminHandler := admin.NewHandler(userRepo, branchRepo, serviceRepo, productRepo, voucherRepo)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		voucherHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j, sessions))
		{
			authHandler.RegisterProtectedRoutes(protected)
			cartHandler.RegisterRoutes(protected)
			voucherHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			checkoutHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
		}

		adminArea := v1.Group("/admin")
		adminArea.Use(middleware.Guard(j, sessions, domain.RoleAdmin))
		{
			adminHandler.RegisterAdminRoutes(adminArea)
		}

		managerArea := v1.Group("/admin")
		managerArea.Use(middleware.Guard(j, sessions, domain.RoleAdmin, domain.RoleManager))
		{
			adminHandler.RegisterManagerRoutes(managerArea)
		}
	}

	seedTestData(t, db)

	return &testSuite{router: r, db: db, recorder: recorder}
}

func seedTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	users := []domain.User{
		{Email: "admin@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin, Name: "Admin User"},
		{Email: "manager@example.com", PasswordHash: string(hash), Role: domain.RoleManager, Name: "Manager User"},
		{Email: "user@example.com", PasswordHash: string(hash), Role: domain.RoleCustomer, Name: "Nguyễn Văn A"},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}

	require.NoError(t, db.Create(&domain.Branch{Name: "SerenitySpa Quận 1", Address: "123 Đường Nguyễn Huệ"}).Error)
	require.NoError(t, db.Create(&domain.SpaService{Slug: "swedish-massage", Name: "Swedish Massage", DurationMin: 60, Price: 85}).Error)
	require.NoError(t, db.Create(&domain.Product{Slug: "tinh-dau-massage-oai-huong", Name: "Tinh dầu massage Oải Hương", Price: 250000, Category: "oils", InStock: true}).Error)
	require.NoError(t, db.Create(&domain.Voucher{
		Code: "WELCOME20", Title: "Chào mừng thành viên mới",
		DiscountType: domain.DiscountPercentage, DiscountValue: 20,
		ExpiryDate: time.Now().AddDate(1, 0, 0),
		IsSpecial:  true, ApplicableFor: domain.ScopeAll, Status: domain.VoucherActive,
	}).Error)
}

func (s *testSuite) request(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
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
	s.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (s *testSuite) login(t *testing.T, email string) string {
	t.Helper()

	w, env := s.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	token, _ := env.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := setupSuite(t)

	w, env := s.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "user@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := setupSuite(t)

	w, _ := s.request(t, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCustomerShoppingFlow(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t, "user@example.com")

	// Identity survives behind the token.
	w, env := s.request(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := env.Data["user"].(map[string]interface{})
	assert.Equal(t, "user@example.com", user["email"])

	// Add the lavender oil twice; the line increments.
	w, _ = s.request(t, http.MethodPost, "/api/v1/cart/items", token, gin.H{"product_id": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	w, env = s.request(t, http.MethodPost, "/api/v1/cart/items", token, gin.H{"product_id": 1, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), env.Data["total_items"])
	assert.Equal(t, 750000.0, env.Data["total_price"])

	// Checkout clears the cart and yields an order id.
	w, env = s.request(t, http.MethodPost, "/api/v1/checkout", token, gin.H{
		"fullName":      "Nguyễn Văn A",
		"email":         "user@example.com",
		"phone":         "0901234567",
		"address":       "123 Nguyễn Huệ",
		"city":          "TP.HCM",
		"district":      "Quận 1",
		"paymentMethod": "cod",
	})
	require.Equal(t, http.StatusOK, w.Code)
	orderID, _ := env.Data["order_id"].(string)
	assert.NotEmpty(t, orderID)
	assert.Equal(t, "/order-success/"+orderID, env.Data["redirect"])

	w, env = s.request(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), env.Data["total_items"])
}

func TestCheckoutWithEmptyCartRedirects(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t, "user@example.com")

	w, _ := s.request(t, http.MethodPost, "/api/v1/checkout", token, gin.H{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
}

func TestVoucherSaveFlow(t *testing.T) {
	s := setupSuite(t)

	// Catalog browsing is public.
	w, env := s.request(t, http.MethodGet, "/api/v1/vouchers/super", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	vouchers := env.Data["vouchers"].([]interface{})
	require.Len(t, vouchers, 1)

	token := s.login(t, "user@example.com")

	w, env = s.request(t, http.MethodPost, "/api/v1/vouchers/me/1", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, env.Data["saved"])

	// Saving twice is answered politely and changes nothing.
	w, env = s.request(t, http.MethodPost, "/api/v1/vouchers/me/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, env.Data["saved"])

	w, env = s.request(t, http.MethodGet, "/api/v1/vouchers/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	saved := env.Data["vouchers"].([]interface{})
	assert.Len(t, saved, 1)

	// Another account sees an empty list.
	adminToken := s.login(t, "admin@example.com")
	w, env = s.request(t, http.MethodGet, "/api/v1/vouchers/me", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data["vouchers"])
}

func TestBookingFlow(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t, "user@example.com")

	w, _ := s.request(t, http.MethodPut, "/api/v1/booking/service", token, gin.H{"service": "Swedish Massage"})
	require.Equal(t, http.StatusOK, w.Code)

	// Far enough out to dodge the weekly closing day.
	date := time.Now().AddDate(0, 0, 2)
	if date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, 1)
	}
	w, _ = s.request(t, http.MethodPut, "/api/v1/booking/date", token, gin.H{"date": date.Format("2006-01-02")})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.request(t, http.MethodPut, "/api/v1/booking/time", token, gin.H{"time_slot": "10:00 AM"})
	require.Equal(t, http.StatusOK, w.Code)

	for i := 0; i < 3; i++ {
		w, _ = s.request(t, http.MethodPost, "/api/v1/booking/continue", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, env := s.request(t, http.MethodPost, "/api/v1/booking/confirm", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Swedish Massage", env.Data["service"])
}

func TestAdminAreaRedirectsByRole(t *testing.T) {
	s := setupSuite(t)

	// Anonymous callers land on the sign-in page.
	w, _ := s.request(t, http.MethodGet, "/api/v1/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))

	// A customer is sent to their profile.
	customerToken := s.login(t, "user@example.com")
	w, _ = s.request(t, http.MethodGet, "/api/v1/admin/dashboard", customerToken, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))

	// A manager may see branches but not the dashboard.
	managerToken := s.login(t, "manager@example.com")
	w, _ = s.request(t, http.MethodGet, "/api/v1/admin/dashboard", managerToken, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/branches", w.Header().Get("Location"))
	w, _ = s.request(t, http.MethodGet, "/api/v1/admin/branches", managerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The admin sees everything.
	adminToken := s.login(t, "admin@example.com")
	w, env := s.request(t, http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), env.Data["customers"])
	assert.Equal(t, float64(1), env.Data["branches"])
}

func TestLogoutEndsSession(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t, "user@example.com")

	w, env := s.request(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/signin", env.Data["redirect"])

	// The token still parses but its session record is gone.
	w, _ = s.request(t, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewFlow(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t, "user@example.com")

	w, _ := s.request(t, http.MethodPost, "/api/v1/reviews", token, gin.H{
		"targetType": "service",
		"targetId":   1,
		"rating":     5,
		"comment":    "Tuyệt vời!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := s.request(t, http.MethodGet, "/api/v1/reviews/service/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), env.Data["average_rating"])
	assert.Equal(t, float64(1), env.Data["total"])
}
