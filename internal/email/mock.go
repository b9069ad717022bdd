package email

// Message is a captured outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// MockProvider records messages instead of sending them. Used in tests and
// when no SMTP host is configured.
type MockProvider struct {
	Sent []Message
	// Err, when set, is returned from Send to simulate delivery failures.
	Err error
}

func (p *MockProvider) Send(to, subject, body string) error {
	if p.Err != nil {
		return p.Err
	}
	p.Sent = append(p.Sent, Message{To: to, Subject: subject, Body: body})
	return nil
}
