package usecase

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/domain"
)

type CartAdder interface {
	Add(ctx context.Context, variantID string, qty int) (bool, error)
}

// AssistantUC es una conversación con el asistente. Un solo envío a la vez:
// mientras hay una respuesta pendiente los demás se rechazan con ErrAssistantBusy.
type AssistantUC struct {
	Catalog domain.CatalogReader
	LLM     domain.ChatCompleter
	// Cart, si está presente, recibe cada acción add_to_cart de la respuesta.
	Cart         CartAdder
	Timeout      time.Duration
	FreeShipping int64

	busy       atomic.Bool
	promptOnce sync.Once
	prompt     string

	mu      sync.Mutex
	history []domain.ChatEntry
	gen     uint64
}

type ChatReply struct {
	Text    string              `json:"text"`
	Actions []domain.CartAction `json:"actions"`
	Failed  bool                `json:"failed,omitempty"`
}

func (uc *AssistantUC) systemPrompt() string {
	uc.promptOnce.Do(func() {
		free := uc.FreeShipping
		if free == 0 {
			free = DefaultFreeShippingThreshold
		}
		uc.prompt = BuildSystemPrompt(uc.Catalog.Products(), free)
	})
	return uc.prompt
}

func (uc *AssistantUC) Busy() bool { return uc.busy.Load() }

// Messages devuelve la conversación para mostrar, con el saludo al principio.
func (uc *AssistantUC) Messages() []domain.ChatEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.ChatEntry, 0, len(uc.history)+1)
	out = append(out, domain.ChatEntry{Role: domain.ChatRoleAssistant, Content: WelcomeMessage})
	return append(out, uc.history...)
}

// Reset empieza una conversación nueva. Una respuesta que llegue después para
// la conversación anterior se descarta.
func (uc *AssistantUC) Reset() {
	uc.mu.Lock()
	uc.history = nil
	uc.gen++
	uc.mu.Unlock()
}

// Send manda el mensaje al modelo. Los errores de red nunca salen de acá: se
// convierten en el mensaje de disculpa.
func (uc *AssistantUC) Send(ctx context.Context, text string) (ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatReply{}, domain.NewValidationError("message", "Escribe un mensaje")
	}
	if !uc.busy.CompareAndSwap(false, true) {
		return ChatReply{}, domain.ErrAssistantBusy
	}
	defer uc.busy.Store(false)

	uc.mu.Lock()
	msgs := make([]domain.ChatMessage, 0, len(uc.history)+2)
	msgs = append(msgs, domain.ChatMessage{Role: domain.ChatRoleSystem, Content: uc.systemPrompt()})
	for _, e := range uc.history {
		msgs = append(msgs, domain.ChatMessage{Role: e.Role, Content: e.Content})
	}
	uc.history = append(uc.history, domain.ChatEntry{Role: domain.ChatRoleUser, Content: text})
	gen := uc.gen
	uc.mu.Unlock()
	msgs = append(msgs, domain.ChatMessage{Role: domain.ChatRoleUser, Content: text})

	reply := uc.complete(ctx, msgs)

	if uc.Cart != nil {
		for _, a := range reply.Actions {
			if _, err := uc.Cart.Add(ctx, a.VariantID, 1); err != nil {
				log.Warn().Err(err).Str("variant", a.VariantID).Msg("acción del asistente no se pudo guardar")
			}
		}
	}

	uc.mu.Lock()
	if uc.gen == gen {
		uc.history = append(uc.history, domain.ChatEntry{Role: domain.ChatRoleAssistant, Content: reply.Text, Actions: reply.Actions, Failed: reply.Failed})
	}
	uc.mu.Unlock()
	return reply, nil
}

func (uc *AssistantUC) complete(ctx context.Context, msgs []domain.ChatMessage) ChatReply {
	if uc.LLM == nil {
		log.Warn().Msg("asistente sin cliente LLM configurado")
		return ChatReply{Text: ApologyMessage, Actions: []domain.CartAction{}, Failed: true}
	}
	if uc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.Timeout)
		defer cancel()
	}
	content, err := uc.LLM.Complete(ctx, msgs)
	if err != nil {
		log.Error().Err(err).Msg("chat completion")
		return ChatReply{Text: ApologyMessage, Actions: []domain.CartAction{}, Failed: true}
	}
	text, actions := ParseReply(content, uc.Catalog)
	return ChatReply{Text: text, Actions: actions}
}
