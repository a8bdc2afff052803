package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
	hexAddressRe = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{40}$`)
	// Decimal token amount: up to 78 digits covers the full 256-bit range.
	tokenAmountRe = regexp.MustCompile(`^[0-9]{1,78}$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("hex_address", validateHexAddress)
		_ = v.RegisterValidation("token_amount", validateTokenAmount)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateHexAddress accepts a 40-char hex account identity, 0x optional.
// The null (all-zero) identity passes here; the ledger rejects it so the
// caller gets the identity error code rather than a generic validation one.
func validateHexAddress(fl validator.FieldLevel) bool {
	return hexAddressRe.MatchString(fl.Field().String())
}

// validateTokenAmount accepts a plain decimal integer. Zero passes here for
// the same reason: the ledger owns the zero-amount rejection.
func validateTokenAmount(fl validator.FieldLevel) bool {
	return tokenAmountRe.MatchString(fl.Field().String())
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
