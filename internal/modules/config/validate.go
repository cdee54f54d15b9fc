package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/georgemunganga/pizza-pos/internal/money"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		if r, ok := f.Interface().(money.Rate); ok {
			return r.InexactFloat64()
		}
		return nil
	}, money.Rate{})
	return v
}

// Validate checks the structural invariants of the configuration: non-negative
// prices, rates in [0,1), positive limits and a non-empty manager password.
// Recipe toppings missing from the price table are not reported here; menu
// derivation surfaces them per item.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s fails %s", field, rule))
	}
	return errors.New(strings.Join(msgs, "; "))
}
