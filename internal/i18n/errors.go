package i18n

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/apierr"
)

// ErrorKey picks the message key describing err.
func ErrorKey(err error) string {
	switch apierr.KindOf(err) {
	case apierr.KindCancelled:
		return ErrCancelled
	case apierr.KindTimeout:
		return ErrTimeout
	case apierr.KindNetwork:
		return ErrNetwork
	case apierr.KindServer:
		return ErrServer
	case apierr.KindDecode:
		return ErrDecode
	case apierr.KindClient:
		switch apierr.StatusOf(err) {
		case http.StatusBadRequest:
			return ErrBadRequest
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusForbidden:
			return ErrForbidden
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusTooManyRequests:
			return ErrTooManyRequests
		}
		return ErrClient
	}
	return ErrUnknown
}

// ErrorMessage returns a short localized description of err.
func ErrorMessage(tag language.Tag, err error) string {
	if err == nil {
		return ""
	}
	return T(tag, ErrorKey(err))
}
