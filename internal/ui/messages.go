package ui

import (
	"errors"
	"fmt"

	"github.com/dastanaron/mediacat/internal/service"
	"github.com/dastanaron/mediacat/internal/thumbnail"
)

// Literal texts shown to the user
const (
	SaveLabel   = "Save"
	UpdateLabel = "Update"

	MsgUnsupportedImage = "Only JPG/JPEG files are allowed"
	MsgTitleRequired    = "Title is required"
	MsgDeleteConfirm    = "Delete item?"
)

// AlertMessage maps an error from a controller onto the text of an alert
func AlertMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, thumbnail.ErrUnsupportedType):
		return MsgUnsupportedImage
	case errors.Is(err, service.ErrTitleRequired):
		return MsgTitleRequired
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
