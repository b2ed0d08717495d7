// Package handlers contains the gin HTTP handlers. Handlers bind and
// validate request bodies, delegate to services, and translate the error
// taxonomy into HTTP statuses.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rewardhub/rewardhub-backend/internal/apperrors"
)

// respondError maps a service error onto an HTTP status
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.ErrorKind(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindAuthorization:
		status = http.StatusForbidden
	case apperrors.KindTransient:
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentAccountID reads the authenticated account id set by the JWT middleware
func currentAccountID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("accountID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathObjectID parses the named path parameter as a Mongo ObjectID
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}
