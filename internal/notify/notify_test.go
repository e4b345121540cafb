package notify

import (
	"errors"
	"testing"
)

func TestUnexpectedReplyError(t *testing.T) {
	err := &UnexpectedReplyError{Args: 3}

	want := "unexpected Notify reply: got 3 arguments, want 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !errors.Is(err, ErrUnexpectedReply) {
		t.Error("UnexpectedReplyError should match ErrUnexpectedReply")
	}
	if errors.Is(err, ErrRemoteCallFailed) {
		t.Error("UnexpectedReplyError should not match ErrRemoteCallFailed")
	}

	var replyErr *UnexpectedReplyError
	if !errors.As(err, &replyErr) {
		t.Fatal("errors.As failed to extract UnexpectedReplyError")
	}
	if replyErr.Args != 3 {
		t.Errorf("Args = %d, want 3", replyErr.Args)
	}
}

func TestReasonString(t *testing.T) {
	tests := []struct {
		reason Reason
		want   string
	}{
		{ReasonExpired, "expired"},
		{ReasonDismissedByUser, "dismissed-by-user"},
		{ReasonClosedByCall, "closed-by-call"},
		{ReasonUnknown, "unknown"},
		{Reason(42), "reason(42)"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("Reason(%d).String() = %q, want %q", uint32(tt.reason), got, tt.want)
		}
	}
}
