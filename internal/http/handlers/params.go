package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/http/response"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/platform/ctxutil"
)

const dateOnly = "2006-01-02"

// quantity accepts a JSON number or string. Strings are validated later by
// the consumption service.
type quantity string

func (q *quantity) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if bytes.Equal(raw, []byte("null")) {
		*q = ""
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*q = quantity(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(raw), 64); err != nil {
		return fmt.Errorf("quantity must be a number or a numeric string, got %s", raw)
	}
	*q = quantity(raw)
	return nil
}

// requireUser returns the authenticated user or writes a 401.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID := ctxutil.UserID(c.Request.Context())
	if userID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

func idParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter; absent means def.
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, pkgerrors.ErrInvalidArgument)
	}
	return v, nil
}

func queryBool(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	return err == nil && v
}

// parseDate accepts RFC 3339 timestamps and bare dates. dateOnlyOut reports
// whether the input had no time component.
func parseDate(raw string) (t time.Time, dateOnlyOut bool, err error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse(dateOnly, raw); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q: %w", raw, pkgerrors.ErrInvalidArgument)
}
