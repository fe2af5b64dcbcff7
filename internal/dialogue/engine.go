// README: Dialogue graph engine; one synchronous pass per inbound message.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jelajah/internal/ai"
	"jelajah/internal/config"
	"jelajah/internal/types"
)

var ErrEmptyMessage = errors.New("empty message")

// ConversationStore is the keyed, durable holder for per-thread state.
// Get returns (nil, nil) when the thread has no snapshot yet.
type ConversationStore interface {
	Get(ctx context.Context, threadID types.ID) (*TripPlanningState, error)
	Put(ctx context.Context, threadID types.ID, state *TripPlanningState) error
}

// UnlockFunc releases a held turn lock.
type UnlockFunc func(ctx context.Context) error

// TurnLocker serializes turns per thread. The engine assumes at most one
// in-flight turn per thread; the locker makes that assumption hold across
// concurrent callers and replicas.
type TurnLocker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

// TurnResult is the outcome of one pass through the dialogue graph.
type TurnResult struct {
	Reply                   string
	Options                 []ai.QuickReply
	State                   *TripPlanningState
	ShouldGenerateItinerary bool
}

// The dialogue graph nodes. Edges are conditional and encoded in runGraph:
//
//	validate -> extract | END(refusal)
//	extract  -> compose
//	compose  -> END(question/summary) | confirm (reply to a presented summary)
//	confirm  -> END(confirmed/reprompt) | extract (edit path, at most once per turn)
type node string

const (
	nodeValidate node = "validate"
	nodeExtract  node = "extract"
	nodeCompose  node = "compose"
	nodeConfirm  node = "confirm"
	nodeEnd      node = "end"
)

const turnLockTTL = 30 * time.Second

// Engine orchestrates validator, extractor, composer and confirmation handler
// over the per-thread persisted state. Each Turn is one synchronous pass:
// state read at the start, written back at the end, nothing in between.
type Engine struct {
	store      ConversationStore
	locker     TurnLocker
	extractor  *Extractor
	composer   *Composer
	llmTimeout time.Duration
}

// NewEngine wires the dialogue graph. locker may be nil when the caller
// serializes turns itself.
func NewEngine(store ConversationStore, locker TurnLocker, llm ai.LLMProvider, cfg config.DialogueConfig) *Engine {
	return &Engine{
		store:      store,
		locker:     locker,
		extractor:  NewExtractor(llm),
		composer:   NewComposer(llm),
		llmTimeout: cfg.LLMTimeout,
	}
}

// Turn processes one inbound message for a thread. seed, when non-nil, becomes
// the initial state for a thread the store has never seen (stateless clients
// replaying history); it is ignored once a snapshot exists.
func (e *Engine) Turn(ctx context.Context, threadID types.ID, message string, seed *TripPlanningState) (*TurnResult, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, string(threadID), turnLockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire turn lock: %w", err)
		}
		defer func() { _ = unlock(ctx) }()
	}

	state, err := e.store.Get(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if state == nil {
		if seed != nil {
			state = seed
		} else {
			state = NewState()
		}
	}

	result := e.runGraph(ctx, state, message)

	if err := e.store.Put(ctx, threadID, state); err != nil {
		return nil, fmt.Errorf("persist conversation: %w", err)
	}
	return result, nil
}

func (e *Engine) runGraph(ctx context.Context, state *TripPlanningState, message string) *TurnResult {
	state.AppendUser(message)

	// Completion is terminal for the collection phase; later messages just get
	// the standing acknowledgement.
	if state.IsComplete {
		state.AppendAssistant(completedReply)
		return e.result(state, completedReply, nil)
	}

	enteredAtSummary := state.CurrentQuestion == QuestionSummary
	confirmRan := false

	var reply string
	var options []ai.QuickReply

	current := nodeValidate
	for current != nodeEnd {
		switch current {
		case nodeValidate:
			if queryAllowed(message) {
				current = nodeExtract
				break
			}
			reply, options = refusalReply, nil
			state.AppendAssistant(reply)
			current = nodeEnd

		case nodeExtract:
			llmCtx, cancel := e.withLLMTimeout(ctx)
			delta := e.extractor.Extract(llmCtx, state, message)
			cancel()
			state.ApplyDelta(delta)
			current = nodeCompose

		case nodeCompose:
			llmCtx, cancel := e.withLLMTimeout(ctx)
			text, tag := e.composer.Compose(llmCtx, state)
			cancel()
			if tag == QuestionSummary && enteredAtSummary && !confirmRan {
				// The message is the user's reply to an already-presented summary.
				current = nodeConfirm
				break
			}
			state.CurrentQuestion = tag
			reply, options = SplitOptions(text)
			state.AppendAssistant(reply)
			current = nodeEnd

		case nodeConfirm:
			confirmRan = true
			switch handleConfirmation(state, message) {
			case outcomeConfirmed:
				reply, options = confirmedReply, nil
				state.AppendAssistant(reply)
				current = nodeEnd
			case outcomeEdited:
				// One slot is unset again; re-enter collection for it.
				current = nodeExtract
			case outcomeUnknown:
				reply, options = SplitOptions(rePromptReply + " " + optionsTag(summaryOptions))
				state.AppendAssistant(reply)
				current = nodeEnd
			}
		}
	}

	return e.result(state, reply, options)
}

func (e *Engine) result(state *TripPlanningState, reply string, options []ai.QuickReply) *TurnResult {
	return &TurnResult{
		Reply:                   reply,
		Options:                 options,
		State:                   state,
		ShouldGenerateItinerary: state.IsComplete,
	}
}

func (e *Engine) withLLMTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.llmTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.llmTimeout)
}
