package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JillPatel28/medical-translator-app/internal/utils"
)

// APIError is the uniform error body: validation problems come back as 400,
// everything else (storage, configuration, downstream AI failures) as 500.
type APIError struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{Error: ae.Message})
		return
	}

	c.JSON(status, APIError{Error: http.StatusText(status)})
}
