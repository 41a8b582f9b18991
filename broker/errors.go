package broker

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ServiceError is a non-2xx response from the brokerage service.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.Status, e.Body)
}

// IsNetwork reports whether err is a transport-level failure reaching the
// service, as opposed to the service answering with an error. Network
// failures are retryable on the next user action.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
