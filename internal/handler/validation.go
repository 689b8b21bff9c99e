package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/aplaceintime/api/internal/client"
	"github.com/aplaceintime/api/internal/logger"
	"github.com/aplaceintime/api/pkg/response"
)

const invalidBodyMessage = "Invalid request body"

// fieldMessages holds the client-facing message for a failing field, keyed
// by its wire name.
var fieldMessages = map[string]string{
	"prompt":  "Idea/Prompt is required.",
	"agents":  "Agents must be an array.",
	"lyrics":  "Lyrics are required and must be a string.",
	"message": "Message is required.",
	"q":       `Search query parameter "q" is required.`,
	"track":   `Required parameters "track" and "artist" missing.`,
	"artist":  `Required parameters "track" and "artist" missing.`,
}

// NewValidator returns a validator that reports fields by their json or
// query name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// bodyError answers a body that could not be decoded. A type mismatch on a
// known field gets that field's message.
func bodyError(c *fiber.Ctx, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		msg, ok := fieldMessages[typeErr.Field]
		if !ok {
			msg = invalidBodyMessage
		}
		return response.ValidationError(c, msg, map[string]string{typeErr.Field: "type"})
	}
	return response.ValidationError(c, invalidBodyMessage, nil)
}

// validationError answers a request that failed struct validation.
func validationError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return response.ValidationError(c, "Validation failed", nil)
	}

	details := formatValidationErrors(validationErrors)
	first := validationErrors[0]
	msg, ok := fieldMessages[fieldPath(first)]
	if !ok {
		msg = fieldPath(first) + " is " + describeTag(first)
	}
	return response.ValidationError(c, msg, details)
}

// formatValidationErrors maps each failing field path to the failed tag
func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[fieldPath(e)] = e.Tag()
	}
	return out
}

// fieldPath strips the struct name from the namespace:
// "ChatRequest.history[1].role" becomes "history[1].role".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func describeTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "required."
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ") + "."
	default:
		return "invalid."
	}
}

// upstreamFailure maps a service error to CONFIG_ERROR or UPSTREAM_ERROR and
// logs it with the request context.
func upstreamFailure(c *fiber.Ctx, err error, prefix, notConfigured string) error {
	fields := logger.WithContext(c)
	if errors.Is(err, client.ErrNotConfigured) {
		logger.Error("Upstream credentials missing", err, fields)
		return response.ConfigError(c, notConfigured)
	}

	var gwErr *client.GatewayError
	if errors.As(err, &gwErr) {
		fields["provider"] = gwErr.Provider
		fields["status"] = gwErr.StatusCode
	}
	logger.Error(prefix, err, fields)
	return response.UpstreamError(c, prefix+": "+err.Error())
}
