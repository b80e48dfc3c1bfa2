package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a non-2xx webhook answer into one of the package
// errors, keeping the response body for the log.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrWebhookRejected, code, body)
	}
	return fmt.Errorf("%w: http %d: %s", ErrWebhookUnavailable, code, body)
}
