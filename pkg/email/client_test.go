package email

import (
	"context"
	"errors"
	"testing"
)

func TestSendDisabled(t *testing.T) {
	c, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = c.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "s", TextBody: "b"})
	if !errors.As(err, &ErrDisabled{}) {
		t.Errorf("Send() error = %v, want ErrDisabled", err)
	}
}

func TestNewRequiresHostWhenEnabled(t *testing.T) {
	if _, err := New(Config{Enabled: true}); err == nil {
		t.Fatal("expected error for missing smtp host")
	}
}

func TestBuildMessageValidation(t *testing.T) {
	tests := []struct {
		name string
		from string
		msg  Message
	}{
		{"missing from", "", Message{To: []string{"a@b.c"}, Subject: "s", TextBody: "b"}},
		{"missing recipient", "x@y.z", Message{To: []string{" "}, Subject: "s", TextBody: "b"}},
		{"missing subject", "x@y.z", Message{To: []string{"a@b.c"}, TextBody: "b"}},
		{"missing body", "x@y.z", Message{To: []string{"a@b.c"}, Subject: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMessage(tt.from, tt.msg)
			var invalid ErrInvalidMessage
			if !errors.As(err, &invalid) {
				t.Errorf("buildMessage() error = %v, want ErrInvalidMessage", err)
			}
		})
	}
}

func TestBuildMessageRejectsEmptyAttachment(t *testing.T) {
	_, err := buildMessage("x@y.z", Message{
		To:          []string{"a@b.c"},
		Subject:     "s",
		TextBody:    "b",
		Attachments: []Attachment{{Filename: "booking.ics"}},
	})
	var invalid ErrInvalidMessage
	if !errors.As(err, &invalid) {
		t.Errorf("buildMessage() error = %v, want ErrInvalidMessage", err)
	}
}
