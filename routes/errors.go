package routes

import (
	"errors"

	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/util"
)

func buildAppHTTPErr(err error) *util.HTTPError {
	switch {
	case errors.Is(err, app.ErrPostNotFound),
		errors.Is(err, app.ErrGroupNotFound),
		errors.Is(err, app.ErrUserNotFound):
		return util.BuildNotFoundHTTPErr(err)
	default:
		return util.BuildDbHTTPErr(err)
	}
}

// formErrors returns the field errors of a failed form submission, or nil
// if err is not a validation error
func formErrors(err error) map[string]string {
	var validationErr *app.ValidationError
	if !errors.As(err, &validationErr) {
		return nil
	}
	return map[string]string{validationErr.Field: validationErr.Message}
}
