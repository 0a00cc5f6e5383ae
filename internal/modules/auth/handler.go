package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"serenityspa/internal/middleware"
	"serenityspa/internal/pkg/jwt"
	"serenityspa/internal/pkg/response"
	"serenityspa/internal/store"
)

// Handler exposes sign-in, sign-out and profile endpoints over the
// session store.
type Handler struct {
	sessions *store.SessionStore
	jwt      *jwt.Service
}

func NewHandler(sessions *store.SessionStore, jwtService *jwt.Service) *Handler {
	return &Handler{sessions: sessions, jwt: jwtService}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)

	userGroup := rg.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me", h.UpdateProfile)
	}
}

// Login matches credentials against the seeded directory. The lookup
// resolves after a simulated delay; a mismatch is a normal negative
// result, not a server error.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	// Each sign-in opens a fresh client context.
	clientID := uuid.NewString()

	sess, err := h.sessions.SignIn(c.Request.Context(), clientID, req.Email, req.Password).Await()
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to sign in")
		return
	}

	token, err := h.jwt.GenerateToken(clientID, sess.User.ID, string(sess.User.Role))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to issue token")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  sess.User,
		"token": token,
	})
}

// Logout destroys the session record and points the client back at the
// sign-in view.
func (h *Handler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)
	if err := h.sessions.SignOut(c.Request.Context(), sessionID); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to sign out")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"redirect": "/signin"})
}

func (h *Handler) GetMe(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "No active session")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": sess.User})
}

// UpdateProfile shallow-merges the submitted fields into the current
// identity.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sessionID := c.GetString(middleware.CtxSessionID)
	sess, err := h.sessions.UpdateProfile(c.Request.Context(), sessionID, store.ProfilePatch{
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		return
	}
	if sess == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "No active session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": sess.User})
}
