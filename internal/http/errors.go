package http

import (
	"appointment-manager/backend/internal/domain/appointment"
	"appointment-manager/backend/internal/domain/availability"
	"appointment-manager/backend/internal/domain/identity"
	"appointment-manager/backend/internal/domain/messaging"
	"appointment-manager/backend/internal/domain/teacherstatus"
)

func mapIdentityError(err error) (int, string) {
	switch {
	case identity.IsErrBadRequest(err):
		return 400, err.Error()
	case identity.IsErrForbidden(err):
		return 403, err.Error()
	case identity.IsErrNotFound(err):
		return 404, err.Error()
	case identity.IsErrConflict(err):
		return 409, err.Error()
	}
	return 500, "internal error"
}

func mapAvailabilityError(err error) (int, string) {
	switch {
	case availability.IsErrBadRequest(err):
		return 400, err.Error()
	case availability.IsErrForbidden(err):
		return 403, err.Error()
	case availability.IsErrNotFound(err):
		return 404, err.Error()
	case availability.IsErrConflict(err):
		return 409, err.Error()
	}
	return 500, "internal error"
}

func mapAppointmentError(err error) (int, string) {
	switch {
	case appointment.IsErrBadRequest(err):
		return 400, err.Error()
	case appointment.IsErrForbidden(err):
		return 403, err.Error()
	case appointment.IsErrNotFound(err):
		return 404, err.Error()
	case appointment.IsErrConflict(err):
		return 409, err.Error()
	}
	return 500, "internal error"
}

func mapStatusError(err error) (int, string) {
	switch {
	case teacherstatus.IsErrBadRequest(err):
		return 400, err.Error()
	case teacherstatus.IsErrForbidden(err):
		return 403, err.Error()
	}
	return 500, "internal error"
}

func mapMessagingError(err error) (int, string) {
	switch {
	case messaging.IsErrBadRequest(err):
		return 400, err.Error()
	case messaging.IsErrForbidden(err):
		return 403, err.Error()
	case messaging.IsErrNotFound(err):
		return 404, err.Error()
	}
	return 500, "internal error"
}
