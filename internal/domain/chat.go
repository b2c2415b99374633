package domain

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

const ActionAddToCart = "add_to_cart"

// CartAction es un comando extraído de la respuesta del asistente.
type CartAction struct {
	Type         string `json:"type"`
	ProductID    string `json:"productId"`
	VariantID    string `json:"variantId"`
	ProductName  string `json:"productName"`
	VariantLabel string `json:"variantLabel"`
	Price        int64  `json:"price"`
}

// ChatEntry es un mensaje tal como se muestra en la conversación.
type ChatEntry struct {
	Role    ChatRole     `json:"role"`
	Content string       `json:"content"`
	Actions []CartAction `json:"actions,omitempty"`
	Failed  bool         `json:"failed,omitempty"`
}
