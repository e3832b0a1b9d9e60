package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"hospital-api/internal/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError writes the response for a service error. Internal errors are
// attached to the context so the request logger records the cause.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		_ = c.Error(err)
		body := gin.H{"message": "Internal server error"}
		if h.exposeErrors {
			body["err"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
		return
	}
	c.JSON(apperrors.HTTPStatus(kind), gin.H{"status": "Failure", "message": apperrors.MessageOf(err)})
}

// bindingErrors flattens a ShouldBindJSON error into readable messages.
func bindingErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return out
}

// statusCode is a report status as sent by clients: a JSON number or a numeric
// string. Anything that is not an integral number is kept as invalid.
type statusCode struct {
	value int
	ok    bool
}

func (s *statusCode) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	s.value, s.ok = parseStatusCode(raw)
	return nil
}

// Code returns the parsed value, or -1 when the input was not a number.
func (s statusCode) Code() int {
	if !s.ok {
		return -1
	}
	return s.value
}

func parseStatusCode(raw string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
