// Package waerrors defines the single error type raised by this library and
// the mapping from WhatsApp Cloud API error codes to descriptive messages.
package waerrors

import (
	"errors"
	"fmt"
)

// Platform error codes documented for the Cloud API. Code 0 is reserved for
// local failures (validation, transport) where no remote code applies.
const (
	CodeNone                        = 0
	CodeAPIUnknown                  = 1
	CodeAPIService                  = 2
	CodeAPIMethod                   = 3
	CodeAPITooManyCalls             = 4
	CodePermissionDenied            = 10
	CodeInvalidParameter            = 100
	CodeAccessTokenExpired          = 190
	CodeAccountTemporarilyBlocked   = 368
	CodeRateLimitIssues             = 80007
	CodeSpamRateLimitHit            = 131048
	CodeThroughputRateLimitHit      = 130429
	CodeGenericError                = 131000
	CodeAccessDenied                = 131005
	CodeRequiredParameterMissing    = 131008
	CodeParameterValueInvalid       = 131009
	CodeServiceUnavailable          = 131016
	CodeRecipientIsSender           = 131021
	CodeMessageUndeliverable        = 131026
	CodeReengagementRequired        = 131047
	CodeUnsupportedMessageType      = 131051
	CodeMediaDownloadError          = 131052
	CodeMediaUploadError            = 131053
	CodeTemplateParamCountMismatch  = 132000
	CodeTemplateDoesNotExist        = 132001
	CodeTemplateTextTooLong         = 132005
	CodeTemplateFormatInvalid       = 132007
	CodeTemplateParamFormatMismatch = 132012
	CodeTemplatePaused              = 132015
	CodeTemplateDisabled            = 132016
	CodePhoneNotRegistered          = 133010
)

var errorMessages = map[int]string{
	CodeAPIUnknown:                  "unknown API error, possibly a temporary issue",
	CodeAPIService:                  "API service is temporarily unavailable",
	CodeAPIMethod:                   "capability or permissions issue for this API method",
	CodeAPITooManyCalls:             "API call volume limit reached",
	CodePermissionDenied:            "permission is either not granted or has been removed",
	CodeInvalidParameter:            "invalid parameter in the request",
	CodeAccessTokenExpired:          "access token is invalid or has expired",
	CodeAccountTemporarilyBlocked:   "account temporarily blocked for policy violations",
	CodeRateLimitIssues:             "messaging rate limit reached",
	CodeSpamRateLimitHit:            "message failed to send because of spam rate restrictions",
	CodeThroughputRateLimitHit:      "throughput limit reached",
	CodeGenericError:                "something went wrong on the WhatsApp side",
	CodeAccessDenied:                "access denied for the requested resource",
	CodeRequiredParameterMissing:    "a required parameter is missing",
	CodeParameterValueInvalid:       "a parameter value is not valid",
	CodeServiceUnavailable:          "WhatsApp service temporarily unavailable",
	CodeRecipientIsSender:           "recipient cannot be the sender",
	CodeMessageUndeliverable:        "message undeliverable to this recipient",
	CodeReengagementRequired:        "more than 24 hours since the customer last replied",
	CodeUnsupportedMessageType:      "unsupported message type",
	CodeMediaDownloadError:          "unable to download the media sent by the user",
	CodeMediaUploadError:            "unable to upload the media used in the message",
	CodeTemplateParamCountMismatch:  "template parameter count does not match the template definition",
	CodeTemplateDoesNotExist:        "template does not exist in the specified language or has not been approved",
	CodeTemplateTextTooLong:         "translated template text is too long",
	CodeTemplateFormatInvalid:       "template content violates a WhatsApp policy",
	CodeTemplateParamFormatMismatch: "template parameter format does not match the template definition",
	CodeTemplatePaused:              "template is paused due to low quality",
	CodeTemplateDisabled:            "template has been permanently disabled",
	CodePhoneNotRegistered:          "phone number is not registered on the WhatsApp Business Platform",
}

// Error carries the platform's error envelope fields. It is the only error
// type the library raises: local validation failures use Code 0, remote
// failures carry whatever the API returned.
type Error struct {
	Message string
	Code    int
	Subcode int
	Details string
	TraceID string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (code %d): %s", e.Message, e.Code, e.Details)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// New builds an Error for a local failure.
func New(message string, code int) *Error {
	return &Error{Message: message, Code: code}
}

// Wrap converts any error into an *Error with code 0, preserving the
// underlying message. An existing *Error passes through unchanged.
func Wrap(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{Message: err.Error(), Code: CodeNone}
}

// Lookup returns the descriptive text for a platform error code.
func Lookup(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error (code: %d)", code)
}

// FromCode builds an Error for a remote API failure, resolving the message
// through the code table.
func FromCode(code, subcode int, details, traceID string) *Error {
	return &Error{
		Message: Lookup(code),
		Code:    code,
		Subcode: subcode,
		Details: details,
		TraceID: traceID,
	}
}

// IsCode reports whether err is a platform error tagged with code.
func IsCode(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsRateLimited reports whether err is one of the platform's rate limit
// codes. The library never retries; this exists so callers can.
func IsRateLimited(err error) bool {
	return IsCode(err, CodeAPITooManyCalls) ||
		IsCode(err, CodeRateLimitIssues) ||
		IsCode(err, CodeThroughputRateLimitHit) ||
		IsCode(err, CodeSpamRateLimitHit)
}
