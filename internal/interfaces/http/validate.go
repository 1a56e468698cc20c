package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return v
}

// bindJSON parsea el cuerpo y valida las etiquetas validate. Si falla ya escribió la respuesta 400
// y devuelve ok=false.
func bindJSON(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		return false, writeValidation(c, err)
	}
	return true, nil
}

func writeValidation(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return badRequest(c, "VALIDATION", err.Error())
	}
	details := make([]dto.FieldError, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.FieldError{Field: fieldPath(e), Message: validationMessage(e)})
	}
	msg := "datos inválidos"
	if len(details) > 0 {
		msg = details[0].Field + ": " + details[0].Message
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg, Details: details})
}

// fieldPath "CreateOrderRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "email inválido"
	case "min":
		if e.Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		return "debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "debe tener como máximo " + e.Param() + " caracteres"
		}
		return "debe ser como máximo " + e.Param()
	case "oneof":
		return "debe ser uno de: " + e.Param()
	default:
		return "valor inválido"
	}
}
