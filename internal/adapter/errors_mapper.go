package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-med-tracker/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError returns nil for 2xx responses and an *APIError otherwise.
// Bodies that are not the JSON error envelope are kept as the message.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}

	if parsed, ok := resp.Error().(*models.ErrorResponse); ok && parsed != nil && parsed.Code != "" {
		apiErr.Response = *parsed
		return apiErr
	}

	body := strings.TrimSpace(string(resp.Body()))
	if err := json.Unmarshal(resp.Body(), &apiErr.Response); err != nil || apiErr.Response.Code == "" {
		apiErr.Response = models.ErrorResponse{Message: body}
	}

	return apiErr
}
