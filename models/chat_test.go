package models

import "testing"

func TestChatThread_Participants(t *testing.T) {
	thread := ChatThread{
		ID:                "a@x.com_b@x.com",
		ParticipantAEmail: "a@x.com",
		ParticipantBEmail: "b@x.com",
	}

	if !thread.HasParticipant("a@x.com") || !thread.HasParticipant("b@x.com") {
		t.Fatalf("expected both participants to be members")
	}
	if thread.HasParticipant("intruder@x.com") {
		t.Fatalf("expected non-participant to be rejected")
	}

	if got := thread.PeerOf("a@x.com"); got != "b@x.com" {
		t.Fatalf("expected peer b@x.com, got %q", got)
	}
	if got := thread.PeerOf("b@x.com"); got != "a@x.com" {
		t.Fatalf("expected peer a@x.com, got %q", got)
	}
}
