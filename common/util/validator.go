package util

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using validator tags
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// GetValidationErrors formats validation errors into readable messages
func GetValidationErrors(err error) []string {
	var messages []string
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return messages
	}
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "url":
			messages = append(messages, field+" must be a valid URL")
		case "min":
			messages = append(messages, field+" must contain at least "+fieldError.Param()+" entries")
		case "max":
			messages = append(messages, field+" must contain at most "+fieldError.Param()+" entries")
		case "gte":
			messages = append(messages, field+" must be >= "+fieldError.Param())
		case "lte":
			messages = append(messages, field+" must be <= "+fieldError.Param())
		case "oneof":
			messages = append(messages, field+" must be one of ["+fieldError.Param()+"]")
		case "excludesall":
			messages = append(messages, field+" must not contain any of "+fieldError.Param())
		case "unique":
			messages = append(messages, field+" must not contain duplicates")
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return messages
}
