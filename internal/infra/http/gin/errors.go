package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	authservice "realty/internal/app/services/auth"
	bookingservice "realty/internal/app/services/booking"
	contentservice "realty/internal/app/services/content"
	propertyservice "realty/internal/app/services/property"
	domainbooking "realty/internal/domain/booking"
	domaincontent "realty/internal/domain/content"
	domainproperty "realty/internal/domain/property"
	domainuser "realty/internal/domain/user"
)

// respondError maps domain and service sentinels to HTTP statuses. Every
// body is {"error": "..."} so clients have one failure shape.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainproperty.ErrNotFound),
		errors.Is(err, domainbooking.ErrNotFound),
		errors.Is(err, domainuser.ErrNotFound),
		errors.Is(err, domaincontent.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, propertyservice.ErrPhotoUploaderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domainproperty.ErrNotOwned),
		errors.Is(err, bookingservice.ErrNotOwner),
		errors.Is(err, bookingservice.ErrNotHost),
		errors.Is(err, contentservice.ErrSelfDemotion),
		errors.Is(err, authservice.ErrUserBlocked):
		return http.StatusForbidden
	case errors.Is(err, authservice.ErrInvalidCredentials),
		errors.Is(err, authservice.ErrRefreshRejected):
		return http.StatusUnauthorized
	case errors.Is(err, authservice.ErrEmailNotVerified),
		errors.Is(err, authservice.ErrCodeMismatch),
		errors.Is(err, domainuser.ErrEmailAlreadyUsed),
		errors.Is(err, domainbooking.ErrInvalidState),
		errors.Is(err, domainproperty.ErrInvalidState),
		errors.Is(err, domainproperty.ErrDateBlocked),
		errors.Is(err, domainproperty.ErrDateNotBlocked):
		return http.StatusConflict
	case errors.Is(err, authservice.ErrPasswordTooShort),
		errors.Is(err, domainuser.ErrEmailRequired),
		errors.Is(err, domainuser.ErrInvalidRole),
		errors.Is(err, domainproperty.ErrTitleRequired),
		errors.Is(err, domainproperty.ErrPriceNegative),
		errors.Is(err, domainproperty.ErrInvalidListingType),
		errors.Is(err, domainproperty.ErrInvalidDuration),
		errors.Is(err, domainproperty.ErrInvalidWindow),
		errors.Is(err, domaincontent.ErrTitleRequired),
		errors.Is(err, domaincontent.ErrNameRequired),
		errors.Is(err, domaincontent.ErrSlugRequired),
		errors.Is(err, domaincontent.ErrEmailRequired),
		errors.Is(err, domaincontent.ErrBodyRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
