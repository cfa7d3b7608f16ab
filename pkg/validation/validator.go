// Package validation configures the validator used by Gin's binding and
// converts binding failures into the API's structured error items.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/askstack/askstack-api/pkg/apierr"
)

// Init configures the global validator used by Gin's binding: errors
// report JSON tag names, and the password alias is registered.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Mirrors the account password policy enforced at registration.
		v.RegisterAlias("pwd", "min=6,max=20,containsany=0123456789,containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ,containsany=abcdefghijklmnopqrstuvwxyz,excludesall= ")
	}
}

// ToItems converts a binding error into the structured error list.
func ToItems(err error) []apierr.Item {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []apierr.Item{{Msg: "invalid json", Location: "body"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		items := make([]apierr.Item, 0, len(verrs))
		for _, fe := range verrs {
			items = append(items, apierr.Item{
				Msg:      fieldMessage(fe),
				Param:    fe.Field(),
				Location: "body",
			})
		}
		return items
	}

	return []apierr.Item{{Msg: "invalid payload", Location: "body"}}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + fe.Field() + " field is required"
	case "email":
		return "Please provide a valid email"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters long"
	case "eqfield":
		return fe.Field() + " must match " + fe.Param()
	case "alphanum":
		return fe.Field() + " must contain alphanumeric characters only"
	case "pwd":
		return "Password must be 6-20 characters with at least one uppercase character, one lowercase character and one digit, and no spaces"
	default:
		return "The " + fe.Field() + " field is invalid"
	}
}
