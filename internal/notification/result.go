package notification

import "fmt"

// FailureCode classifies a failed delivery.
type FailureCode string

const (
	// CodeConfigurationMissing means no usable transport configuration exists.
	CodeConfigurationMissing FailureCode = "configuration_missing"
	// CodeSubmissionFailure means the channel could not be opened or the
	// provider rejected the message (auth failure, unverified sender, rate limit).
	CodeSubmissionFailure FailureCode = "submission_failure"
	// CodeNoRecipients means there was nobody to send to.
	CodeNoRecipients FailureCode = "no_recipients"
	// CodeCompositionFailure means the message content could not be rendered.
	CodeCompositionFailure FailureCode = "composition_failure"
	// CodeInvalidRecipient means a caller-supplied address is not a bare
	// email address.
	CodeInvalidRecipient FailureCode = "invalid_recipient"
)

// ReasonNoAdminEmails is reported when the admin notice has no recipients.
const ReasonNoAdminEmails = "No admin emails found"

// Result is the outcome of one logical send. It is either a success carrying
// the message id or a failure carrying a code and a reason.
type Result struct {
	OK        bool        `json:"ok"`
	MessageID string      `json:"message_id,omitempty"`
	Code      FailureCode `json:"code,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// Success returns a successful Result.
func Success(messageID string) Result {
	return Result{OK: true, MessageID: messageID}
}

// Failure returns a failed Result.
func Failure(code FailureCode, reason string) Result {
	return Result{Code: code, Reason: reason}
}

func (r Result) String() string {
	if r.OK {
		return fmt.Sprintf("success (message id %s)", r.MessageID)
	}
	return fmt.Sprintf("failure [%s]: %s", r.Code, r.Reason)
}
