// Package handlers exposes the number lifecycle and audit operations
// over HTTP.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"numbers/internal/shared/constants"
	"numbers/internal/shared/utils"
)

// resolveVendorScope decides which vendor a request operates on. Admin
// tokens may name any vendor; everyone else is pinned to the vendor in
// their token. Returns false after writing an error response.
func resolveVendorScope(c *gin.Context, requested string) (string, bool) {
	tokenVendor := c.GetString(constants.ContextKeyVendorID)

	if requested == "" {
		requested = tokenVendor
	}
	if requested == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "vendor_id is required")
		return "", false
	}

	if !c.GetBool(constants.ContextKeyAdmin) && requested != tokenVendor {
		utils.ErrorResponse(c, http.StatusForbidden, "vendor scope mismatch")
		return "", false
	}

	return requested, true
}

func intQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

// timeQuery parses an RFC 3339 query parameter. Returns false after
// writing an error response.
func timeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest,
			fmt.Sprintf("%s must be an RFC 3339 timestamp", name))
		return nil, false
	}

	return &t, true
}
