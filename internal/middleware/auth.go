package middleware

import (
	"context"
	"net/http"
	"strings"

	"hospital-api/internal/models"

	"github.com/gin-gonic/gin"
)

const doctorKey = "doctor"

// TokenVerifier resolves a bearer token to the doctor it was issued to.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.Doctor, error)
}

// RequireDoctor rejects requests without a valid bearer token and stores the
// resolved doctor on the context for the handlers behind it.
func RequireDoctor(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		doctor, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			abortUnauthorized(c)
			return
		}

		c.Set(doctorKey, doctor)
		c.Next()
	}
}

// CurrentDoctor returns the doctor resolved by RequireDoctor, or nil when the
// route is not gated.
func CurrentDoctor(c *gin.Context) *models.Doctor {
	v, ok := c.Get(doctorKey)
	if !ok {
		return nil
	}
	doctor, _ := v.(*models.Doctor)
	return doctor
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "Failure", "message": "Unauthorized"})
}
