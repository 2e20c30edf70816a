package email

// Message is one outgoing mail. At least one of TextBody and HTMLBody is
// required.
type Message struct {
	To      []string
	CC      []string
	BCC     []string
	ReplyTo string
	Subject string

	TextBody string
	HTMLBody string

	Headers     map[string]string
	Attachments []Attachment
}

// Attachment is an in-memory file, e.g. the calendar invite sent with a
// booking confirmation.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}
