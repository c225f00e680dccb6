package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"petstore/internal/app/store/entity"
)

// respondData отправляет успешный ответ в конверте {status, message, data}
func respondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, entity.Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// respondMessage отправляет успешный ответ без данных
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, entity.Response{
		Status:  status,
		Message: message,
	})
}

// respondError отправляет ответ об ошибке в конверте {status, errors}
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.Response{
		Status: status,
		Errors: message,
	})
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
