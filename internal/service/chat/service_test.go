package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	chatmodel "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/chat"
	chat "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/service/chat"
)

const greeting = "Olá! Como posso ajudar?"

func TestCreateSessionSeedsGreeting(t *testing.T) {
	svc := chat.NewService(greeting)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	transcript, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}

	if len(transcript) != 1 {
		t.Fatalf("expected exactly one seeded message, got %d", len(transcript))
	}
	if transcript[0].Sender != chatmodel.SenderBot {
		t.Fatalf("expected bot greeting, got sender %s", transcript[0].Sender)
	}
	if transcript[0].Text != greeting {
		t.Fatalf("unexpected greeting text: %q", transcript[0].Text)
	}
	if transcript[0].ID != 1 {
		t.Fatalf("expected greeting id 1, got %d", transcript[0].ID)
	}
}

func TestAppendMessageAssignsIncreasingIDs(t *testing.T) {
	svc := chat.NewService(greeting)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	texts := []string{"oi", "qual o preço?", "obrigado"}
	for _, text := range texts {
		if _, err := svc.AppendMessage(ctx, session.ID, chatmodel.SenderUser, text); err != nil {
			t.Fatalf("AppendMessage err: %v", err)
		}
	}

	transcript, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}

	if len(transcript) != len(texts)+1 {
		t.Fatalf("expected %d messages, got %d", len(texts)+1, len(transcript))
	}
	for i := 1; i < len(transcript); i++ {
		if transcript[i].ID <= transcript[i-1].ID {
			t.Fatalf("ids not strictly increasing: %d then %d", transcript[i-1].ID, transcript[i].ID)
		}
	}
}

func TestAppendMessageAllowsEmptyText(t *testing.T) {
	svc := chat.NewService(greeting)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	message, err := svc.AppendMessage(ctx, session.ID, chatmodel.SenderUser, "")
	if err != nil {
		t.Fatalf("AppendMessage err: %v", err)
	}
	if message.Text != "" {
		t.Fatalf("expected empty text preserved, got %q", message.Text)
	}
}

func TestAppendMessageRejectsInvalidSender(t *testing.T) {
	svc := chat.NewService(greeting)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	if _, err := svc.AppendMessage(ctx, session.ID, chatmodel.Sender("system"), "nope"); !errors.Is(err, chat.ErrInvalidSender) {
		t.Fatalf("expected ErrInvalidSender, got %v", err)
	}

	// The rejected call must have no effect.
	transcript, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(transcript) != 1 {
		t.Fatalf("expected transcript unchanged, got %d messages", len(transcript))
	}
}

func TestAppendMessageUnknownSession(t *testing.T) {
	svc := chat.NewService(greeting)

	if _, err := svc.AppendMessage(context.Background(), "missing", chatmodel.SenderUser, "oi"); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestTranscriptReturnsIsolatedCopy(t *testing.T) {
	svc := chat.NewService(greeting)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	first, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	first[0].Text = "mutated"

	second, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if second[0].Text != greeting {
		t.Fatalf("store affected by mutating a snapshot: %q", second[0].Text)
	}
}

func TestTranscriptIdempotentWithoutAppends(t *testing.T) {
	svc := chat.NewService(greeting)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	first, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	second, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("snapshots differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("snapshots differ at index %d", i)
		}
	}
}

func TestCloseSessionDiscardsTranscript(t *testing.T) {
	svc := chat.NewService(greeting)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	if err := svc.CloseSession(ctx, session.ID); err != nil {
		t.Fatalf("CloseSession err: %v", err)
	}

	if _, err := svc.Transcript(ctx, session.ID); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after close, got %v", err)
	}
	if _, err := svc.AppendMessage(ctx, session.ID, chatmodel.SenderBot, "late"); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected append after close to fail, got %v", err)
	}
}

func TestIdleSessions(t *testing.T) {
	svc := chat.NewService(greeting)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	idle := svc.IdleSessions(time.Millisecond)
	if len(idle) != 1 || idle[0] != session.ID {
		t.Fatalf("expected session %s to be idle, got %v", session.ID, idle)
	}

	if idle := svc.IdleSessions(time.Hour); len(idle) != 0 {
		t.Fatalf("expected no sessions idle for an hour, got %v", idle)
	}
}
