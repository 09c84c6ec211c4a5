// Package failure builds the relay's error taxonomy on top of go-errors. Every
// failure carries the HTTP status the webhook endpoint answers with.
package failure

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeAuthentication = "AUTHENTICATION_FAILURE"
	TextCodeValidation     = "VALIDATION_FAILURE"
	TextCodeUnknownObject  = "UNKNOWN_OBJECT"
	TextCodeEnrichment     = "ENRICHMENT_FAILURE"
	TextCodeDelivery       = "DELIVERY_FAILURE"
)

func newError(message string, category goerrors.Category, code int, textCode string, metadata map[string]any) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func wrapError(source error, category goerrors.Category, message string, code int, textCode string, metadata map[string]any) error {
	if source == nil {
		return newError(message, category, code, textCode, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// Authentication rejects a request whose signature could not be verified.
func Authentication(source error) error {
	return wrapError(source, goerrors.CategoryAuth, "webhook signature verification failed",
		http.StatusUnauthorized, TextCodeAuthentication, nil)
}

// Validation rejects a request body with an unexpected shape.
func Validation(source error, message string) error {
	return wrapError(source, goerrors.CategoryBadInput, message,
		http.StatusBadRequest, TextCodeValidation, nil)
}

// UnknownObject rejects webhook objects other than pages.
func UnknownObject(object string) error {
	return newError(fmt.Sprintf("unsupported webhook object %q", object), goerrors.CategoryNotFound,
		http.StatusNotFound, TextCodeUnknownObject, map[string]any{"object": object})
}

// Enrichment reports a failed content API read for a post.
func Enrichment(source error, postID string) error {
	return wrapError(source, goerrors.CategoryExternal, "fetch post details",
		http.StatusBadGateway, TextCodeEnrichment, map[string]any{"post_id": postID})
}

// Delivery reports a failed downstream webhook call.
func Delivery(source error) error {
	return wrapError(source, goerrors.CategoryExternal, "deliver notification",
		http.StatusBadGateway, TextCodeDelivery, nil)
}

// HTTPStatus returns the status code carried by err, or 500.
func HTTPStatus(err error) int {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.Code != 0 {
		return rich.Code
	}
	return http.StatusInternalServerError
}

// TextCode returns the text code carried by err, or "".
func TextCode(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}
