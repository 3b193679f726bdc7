package main

import (
	"testing"

	"github.com/avelinek/lira-core/core/conversations"
)

func newBareSession() *session {
	return &session{
		turnLog:   conversations.NewTurnLog(),
		systemLog: conversations.NewSystemLog(),
	}
}

func TestTranscriptRendersRolePrefixedLines(t *testing.T) {
	s := newBareSession()
	s.turnLog.Append(conversations.RoleUser, "hello")
	s.turnLog.Append(conversations.RoleAssistant, "hi there")

	if got := s.transcript(); got != "user: hello\nassistant: hi there\n" {
		t.Fatalf("unexpected transcript rendering: %q", got)
	}
}

func TestSummarizeAndRecapReportEmptyConversation(t *testing.T) {
	s := newBareSession()

	s.summarize()
	s.recap()

	entries := s.systemLog.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected two log entries, got %v", entries)
	}
	if entries[0].Text != "nothing to summarize yet" || entries[1].Text != "nothing to recap yet" {
		t.Fatalf("expected empty-conversation notices, got %v", entries)
	}
}
