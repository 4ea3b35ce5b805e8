package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldLabels maps struct field names to the labels shown on the form.
var fieldLabels = map[string]string{
	"Title":    "Blog Post Title",
	"Subtitle": "Subtitle",
	"Author":   "Your Name",
	"ImageURL": "Blog Image URL",
	"Body":     "Blog Content",
}

// Validate checks the form against its validation tags. The returned error,
// when not nil, is a validator.ValidationErrors.
func (f *PostForm) Validate() error {
	return validate.Struct(f)
}

// FieldErrors flattens a validation error into a message per form field.
// Errors that did not come from the validator are reported under "form".
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		label := fieldLabels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = fmt.Sprintf("%s is required.", label)
		case "url":
			fields[fe.Field()] = "Invalid URL."
		case "max":
			fields[fe.Field()] = fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		default:
			fields[fe.Field()] = fmt.Sprintf("%s is invalid.", label)
		}
	}
	return fields
}
