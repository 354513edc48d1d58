package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"service-desk/pkg/constants"
)

var catalogCategoryRe = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("list_scope", isListScope); err != nil {
		return err
	}
	if err := v.RegisterValidation("catalog_category", isCatalogCategory); err != nil {
		return err
	}
	return nil
}

func isListScope(fl validator.FieldLevel) bool {
	_, ok := constants.ParseScope(fl.Field().String())
	return ok
}

// isCatalogCategory: lower-case slug such as "area" or "defect_type".
func isCatalogCategory(fl validator.FieldLevel) bool {
	return catalogCategoryRe.MatchString(fl.Field().String())
}
