// Package notification is the mail delivery core: it resolves the stored
// transport configuration into a mail channel, runs an advisory handshake,
// composes event-specific content, aggregates administrator recipients and
// reports every outcome as a Result value instead of an error.
//
// Callers in business flows (registration, approval, rejection) use Notifier.
// None of its operations return an error, so a failed notification never
// aborts the workflow that triggered it.
package notification
