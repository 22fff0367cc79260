package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warranty-backend/internal/shared/server/middleware"
	"warranty-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

// me echoes the authenticated identity and upserts the user row so later
// document inserts have a foreign-key target.
func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	user := User{
		ID:    userID,
		Email: middleware.UserEmailFromContext(c),
		Name:  middleware.UserNameFromContext(c),
	}
	if user.Email != "" {
		if err := h.Svc.UpsertFromAuth(c.Request.Context(), user); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save user", nil)
			return
		}
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}
