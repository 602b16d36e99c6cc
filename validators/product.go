// Package validators implements schema validation for request payloads.
// Stores re-check the persistence-level constraints on their own; this layer
// is the request-facing gate that turns bad input into 400 responses before
// a store is ever touched.
package validators

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"ecom-product/apperror"
	"ecom-product/models"
	"ecom-product/utils"
)

var validate = validator.New()

// ValidateProduct checks a product payload against the schema rules. With
// isUpdate set, name and category_name lose their required-ness so partial
// updates may omit them; every other constraint (non-negative price, stock
// and pack_qt, URI-shaped images) still applies. Returns nil when the
// payload is valid, otherwise a 400 validation error whose message is the
// first violated constraint and whose Fields list all of them.
func ValidateProduct(payload models.ProductPayload, isUpdate bool) *apperror.Error {
	var violations []string

	if !isUpdate {
		if payload.Name == nil || *payload.Name == "" {
			violations = append(violations, "name is required")
		}
		if payload.CategoryName == nil || *payload.CategoryName == "" {
			violations = append(violations, "category_name is required")
		}
	}

	if err := validate.Struct(payload); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			violations = append(violations, fmt.Sprintf("%s: %s",
				fieldErr.Field(), utils.FormatValidationError(fieldErr)))
		}
	}

	if len(violations) > 0 {
		return apperror.Validation(violations...)
	}
	return nil
}
