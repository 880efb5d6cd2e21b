package inventory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

var tagMessages = map[string]string{
	"required": "must not be blank",
	"max":      "size must be at most %s",
	"oneof":    "must be one of [%s]",
	"datetime": "must be a date in the format %s",
}

// validateUpsert returns a *ValidationError listing every rejected field.
func validateUpsert(req *UpsertRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:         fe.Field(),
			Message:       fieldMessage(fe),
			RejectedValue: rejected(fe.Value()),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	msg, ok := tagMessages[fe.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return msg
}

func rejected(v any) *string {
	if v == nil {
		return nil
	}
	s := fmt.Sprint(v)
	return &s
}
