package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var registerOnce sync.Once

// UseJSONFieldNames makes validation errors report json names, e.g.
// "is_on_diet" instead of "IsOnDiet".
func UseJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
}

func invalidBody(err error) gin.H {
	return gin.H{"error": "invalid request body", "details": fieldErrors(err)}
}

func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}}
	}
	if errors.Is(err, utils.ErrInvalidDate) {
		return []FieldError{{Field: "date_time", Message: err.Error()}}
	}
	if errors.Is(err, io.EOF) {
		return []FieldError{{Field: "body", Message: "empty body"}}
	}
	return []FieldError{{Field: "body", Message: err.Error()}}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// nullFields reports the given keys that body sets to an explicit null.
// body must already be a valid JSON object.
func nullFields(body []byte, keys ...string) []FieldError {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}
	var out []FieldError
	for _, k := range keys {
		if v, ok := raw[k]; ok && string(bytes.TrimSpace(v)) == "null" {
			out = append(out, FieldError{Field: k, Message: "must not be null"})
		}
	}
	return out
}
