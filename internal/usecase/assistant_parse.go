package usecase

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/phenrril/munek/internal/domain"
)

// commandBlockRe reconoce un bloque cercado con triple backtick, etiqueta
// json opcional y un objeto JSON como único contenido.
var commandBlockRe = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")

// ParseReply separa la respuesta del modelo en texto para mostrar y acciones
// de carrito. Los bloques que no decodifican, con otra acción o con una
// variante desconocida se ignoran; todos los bloques se quitan del texto.
func ParseReply(content string, catalog domain.CatalogLookup) (string, []domain.CartAction) {
	actions := []domain.CartAction{}
	for _, m := range commandBlockRe.FindAllStringSubmatch(content, -1) {
		var cmd struct {
			Action    string `json:"action"`
			VariantID string `json:"variantId"`
		}
		if err := json.Unmarshal([]byte(m[1]), &cmd); err != nil {
			continue
		}
		if cmd.Action != domain.ActionAddToCart || cmd.VariantID == "" {
			continue
		}
		hit, ok := catalog.Lookup(cmd.VariantID)
		if !ok {
			continue
		}
		actions = append(actions, domain.CartAction{
			Type:         domain.ActionAddToCart,
			ProductID:    hit.Product.ID,
			VariantID:    hit.Variant.ID,
			ProductName:  hit.Product.Name,
			VariantLabel: hit.Variant.Label,
			Price:        hit.Variant.Price,
		})
	}
	text := strings.TrimSpace(commandBlockRe.ReplaceAllString(content, ""))
	return text, actions
}
