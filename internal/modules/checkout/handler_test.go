package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serenityspa/internal/database"
	"serenityspa/internal/domain"
	"serenityspa/internal/middleware"
	"serenityspa/internal/notify"
	"serenityspa/internal/repository"
	"serenityspa/internal/storage"
	"serenityspa/internal/store"
)

type checkoutFixture struct {
	router   *gin.Engine
	carts    *store.CartStore
	recorder *notify.Recorder
	branchID int64
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("file::memory:?cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	branch := domain.Branch{Name: "SerenitySpa Quận 1"}
	require.NoError(t, db.Create(&branch).Error)
	branches := repository.NewBranchRepository(db)

	carts := store.NewCartStore(storage.NewMemKV(), zerolog.Nop())
	recorder := notify.NewRecorder()
	h := NewHandler(carts, branches, recorder, 0, zerolog.Nop())

	r := gin.New()
	authed := r.Group("/")
	authed.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, int64(3))
	})
	h.RegisterRoutes(authed)

	return &checkoutFixture{router: r, carts: carts, recorder: recorder, branchID: branch.ID}
}

func validCheckout() map[string]any {
	return map[string]any{
		"fullName":      "Nguyễn Văn A",
		"email":         "user@example.com",
		"phone":         "0901234567",
		"address":       "123 Nguyễn Huệ",
		"city":          "TP.HCM",
		"district":      "Quận 1",
		"paymentMethod": "cod",
	}
}

func (f *checkoutFixture) post(t *testing.T, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func seedCart(t *testing.T, carts *store.CartStore) {
	t.Helper()
	_, err := carts.AddItem(context.Background(), 3, domain.Product{
		ID: 1, Name: "Tinh dầu massage Oải Hương", Price: 250000, InStock: true,
	}, 2)
	require.NoError(t, err)
}

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.post(t, validCheckout())
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
}

func TestCheckoutRejectsBadPhone(t *testing.T) {
	f := newCheckoutFixture(t)
	seedCart(t, f.carts)

	body := validCheckout()
	body["phone"] = "123"
	w := f.post(t, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "phone")

	// A rejected form never touches the cart.
	cart, err := f.carts.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, cart.Empty())
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	f := newCheckoutFixture(t)
	seedCart(t, f.carts)

	body := validCheckout()
	body["paymentMethod"] = "crypto"
	w := f.post(t, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutRejectsUnknownBranch(t *testing.T) {
	f := newCheckoutFixture(t)
	seedCart(t, f.carts)

	body := validCheckout()
	body["branchId"] = 9999
	w := f.post(t, body)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "BRANCH_NOT_FOUND", resp.Error.Code)

	cart, err := f.carts.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, cart.Empty())
}

func TestCheckoutAcceptsKnownBranch(t *testing.T) {
	f := newCheckoutFixture(t)
	seedCart(t, f.carts)

	body := validCheckout()
	body["branchId"] = f.branchID
	w := f.post(t, body)

	require.Equal(t, http.StatusOK, w.Code)

	cart, err := f.carts.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	seedCart(t, f.carts)

	w := f.post(t, validCheckout())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.OrderID)
	assert.Equal(t, "/order-success/"+resp.Data.OrderID, resp.Data.Redirect)

	cart, err := f.carts.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, cart.Empty())

	push, ok := f.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, int64(3), push.UserID)
	assert.Equal(t, "Order placed", push.Toast.Title)
}
