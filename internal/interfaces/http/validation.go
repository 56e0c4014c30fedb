package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/application/dto"
)

// newValidator registra los tipos propios del payload para que las reglas
// numéricas (gte, lte, gt) se evalúen sobre decimales y sobre campos Nullable.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterCustomTypeFunc(nullableDecimalValue, dto.Nullable[decimal.Decimal]{})
	v.RegisterCustomTypeFunc(nullableStringValue, dto.Nullable[string]{})
	return v
}

func decimalValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

// Los Nullable null o ausentes devuelven nil: con omitempty no se validan.
func nullableDecimalValue(field reflect.Value) interface{} {
	n, ok := field.Interface().(dto.Nullable[decimal.Decimal])
	if !ok || !n.Valid {
		return nil
	}
	f, _ := n.Value.Float64()
	return f
}

func nullableStringValue(field reflect.Value) interface{} {
	n, ok := field.Interface().(dto.Nullable[string])
	if !ok || !n.Valid {
		return nil
	}
	return n.Value
}

// validationMessage resume los errores de campo en un mensaje legible.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return "datos inválidos: " + strings.Join(parts, "; ")
}
