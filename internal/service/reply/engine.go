package reply

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/analysis/intent"
	chatmodel "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/chat"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/rules"
	chatservice "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/service/chat"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/logger"
)

// Engine orchestrates a conversation: it records user messages, computes
// the canned reply after a simulated thinking delay and fans appended
// messages out to live subscribers. Each session carries its own cancel
// context so teardown drops any reply still waiting on its timer.
type Engine struct {
	store *chatservice.Service
	rules rules.Store
	delay time.Duration

	mu   sync.Mutex
	live map[string]*sessionState
}

type sessionState struct {
	ctx       context.Context
	cancel    context.CancelFunc
	watchers  map[int]chan chatmodel.Message
	nextWatch int
}

// NewEngine wires the engine to its transcript store and rule table.
func NewEngine(store *chatservice.Service, table rules.Store, delay time.Duration) *Engine {
	return &Engine{
		store: store,
		rules: table,
		delay: delay,
		live:  make(map[string]*sessionState),
	}
}

// StartSession opens a conversation seeded with the bot greeting.
func (e *Engine) StartSession(ctx context.Context) (chatmodel.Session, error) {
	session, err := e.store.CreateSession(ctx)
	if err != nil {
		return chatmodel.Session{}, err
	}

	sctx, cancel := context.WithCancel(context.Background())
	e.mu.Lock()
	e.live[session.ID] = &sessionState{
		ctx:      sctx,
		cancel:   cancel,
		watchers: make(map[int]chan chatmodel.Message),
	}
	e.mu.Unlock()

	return session, nil
}

// HandleUserMessage records the utterance and schedules its reply.
//
// Input that is blank after trimming is dropped without any effect. The
// user message is appended synchronously before this returns; the bot
// reply lands once the configured delay elapses, unless the session is
// torn down first. A snapshot therefore always shows the user message
// strictly before its own reply.
func (e *Engine) HandleUserMessage(ctx context.Context, sessionID, rawText string) error {
	if strings.TrimSpace(rawText) == "" {
		return nil
	}

	e.mu.Lock()
	state, ok := e.live[sessionID]
	e.mu.Unlock()
	if !ok {
		return chatservice.ErrSessionNotFound
	}

	message, err := e.store.AppendMessage(ctx, sessionID, chatmodel.SenderUser, rawText)
	if err != nil {
		return err
	}
	e.publish(sessionID, message)

	go e.deliverReply(state.ctx, sessionID, rawText)
	return nil
}

func (e *Engine) deliverReply(ctx context.Context, sessionID, utterance string) {
	timer := time.NewTimer(e.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	response := intent.Classify(e.rules.List(), utterance)
	message, err := e.store.AppendMessage(context.Background(), sessionID, chatmodel.SenderBot, response)
	if err != nil {
		// Session torn down between the submission and the timer firing.
		logger.Log.Debugf("reply dropped for session %s: %v", sessionID, err)
		return
	}
	e.publish(sessionID, message)
}

// Snapshot returns an ordered copy of the session transcript.
func (e *Engine) Snapshot(ctx context.Context, sessionID string) ([]chatmodel.Message, error) {
	return e.store.Transcript(ctx, sessionID)
}

// Session retrieves session metadata.
func (e *Engine) Session(ctx context.Context, sessionID string) (chatmodel.Session, error) {
	return e.store.GetSession(ctx, sessionID)
}

// Subscribe registers a live feed of appended messages for one session.
// The returned cancel function must be called when the consumer goes away;
// the channel is closed on cancel or on session teardown.
func (e *Engine) Subscribe(sessionID string) (<-chan chatmodel.Message, func(), error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, ok := e.live[sessionID]
	if !ok {
		return nil, nil, chatservice.ErrSessionNotFound
	}

	id := state.nextWatch
	state.nextWatch++
	ch := make(chan chatmodel.Message, 16)
	state.watchers[id] = ch

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if current, ok := state.watchers[id]; ok {
			delete(state.watchers, id)
			close(current)
		}
	}
	return ch, cancel, nil
}

// EndSession tears the conversation down: pending replies are cancelled,
// subscriber feeds are closed and the transcript is discarded.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	e.mu.Lock()
	state, ok := e.live[sessionID]
	if ok {
		delete(e.live, sessionID)
		for id, ch := range state.watchers {
			delete(state.watchers, id)
			close(ch)
		}
	}
	e.mu.Unlock()
	if !ok {
		return chatservice.ErrSessionNotFound
	}

	state.cancel()
	return e.store.CloseSession(ctx, sessionID)
}

// IdleSessions lists sessions without activity for at least maxIdle.
func (e *Engine) IdleSessions(maxIdle time.Duration) []string {
	return e.store.IdleSessions(maxIdle)
}

func (e *Engine) publish(sessionID string, message chatmodel.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, ok := e.live[sessionID]
	if !ok {
		return
	}
	for _, ch := range state.watchers {
		select {
		case ch <- message:
		default:
			// Slow consumer; it can recover from a snapshot.
		}
	}
}
