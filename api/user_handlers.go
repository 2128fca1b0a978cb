package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ericfitz/userd/internal/slogging"
	"github.com/gin-gonic/gin"
)

// ListUsers handles GET /users
func (s *Server) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.userStore.List())
}

// CreateUser handles POST /users
func (s *Server) CreateUser(c *gin.Context) {
	logger := slogging.Get().WithContext(c)

	fields, err := bindFields(c)
	if err != nil {
		HandleRequestError(c, err)
		return
	}
	if verr := ValidateUserFields(fields, true); verr != nil {
		HandleRequestError(c, verr)
		return
	}

	user := s.userStore.Create(fields)
	usersTotal.Set(float64(s.userStore.Count()))

	logger.Info("Created user %d", user.Id)
	c.JSON(http.StatusCreated, user)
}

// GetUser handles GET /users/{id}
func (s *Server) GetUser(c *gin.Context) {
	id, reqErr := parseUserID(c)
	if reqErr != nil {
		HandleRequestError(c, reqErr)
		return
	}

	user, err := s.userStore.Get(id)
	if err != nil {
		// Absent ids are a normal lookup outcome, not a server fault
		HandleRequestError(c, NotFoundError("user not found"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /users/{id}
func (s *Server) UpdateUser(c *gin.Context) {
	logger := slogging.Get().WithContext(c)

	id, reqErr := parseUserID(c)
	if reqErr != nil {
		HandleRequestError(c, reqErr)
		return
	}

	fields, err := bindFields(c)
	if err != nil {
		HandleRequestError(c, err)
		return
	}
	if verr := ValidateUserFields(fields, false); verr != nil {
		HandleRequestError(c, verr)
		return
	}

	user, uerr := s.userStore.Update(id, fields)
	if uerr != nil {
		if errors.Is(uerr, ErrNotFound) {
			HandleRequestError(c, NotFoundError("user not found"))
			return
		}
		logger.Error("Failed to update user %d: %v", id, uerr)
		HandleRequestError(c, ServerError("failed to update user"))
		return
	}

	logger.Info("Updated user %d", user.Id)
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}
func (s *Server) DeleteUser(c *gin.Context) {
	logger := slogging.Get().WithContext(c)

	id, reqErr := parseUserID(c)
	if reqErr != nil {
		HandleRequestError(c, reqErr)
		return
	}

	if err := s.userStore.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			HandleRequestError(c, NotFoundError("user not found"))
			return
		}
		logger.Error("Failed to delete user %d: %v", id, err)
		HandleRequestError(c, ServerError("failed to delete user"))
		return
	}
	usersTotal.Set(float64(s.userStore.Count()))

	logger.Info("Deleted user %d", id)
	c.Status(http.StatusNoContent)
}

// parseUserID extracts the integer id from the request path.
func parseUserID(c *gin.Context) (uint64, *RequestError) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, InvalidIDError("id must be a positive integer")
	}
	return id, nil
}

// bindFields decodes the request body into a field map and strips the
// store-owned keys so callers cannot overwrite identity or timestamps.
func bindFields(c *gin.Context) (map[string]interface{}, *RequestError) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		return nil, InvalidInputError("request body must be a JSON object")
	}
	if fields == nil {
		fields = map[string]interface{}{}
	}
	StripReservedFields(fields)
	return fields, nil
}
