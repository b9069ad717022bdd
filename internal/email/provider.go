package email

// Provider is what services use to dispatch mail. Delivery is synchronous
// and fire-and-forget; a failed Send surfaces to the caller, nothing retries.
type Provider interface {
	Send(to, subject, body string) error
}
