package order

import (
	"fmt"
	"strings"
)

// Spoken replies for orders with nothing to price.
const (
	MsgNoValidItems = "Não encontrei nenhum sabor válido no pedido. Por favor, diga os sabores do cardápio."
	MsgNoItems      = "Não identifiquei itens no pedido. Pode repetir, por favor?"
)

// BuildResponse renders the total and the per-item breakdown, e.g.
//
//	O total do pedido é 42 reais. (2 carne = 30 reais, 1 queijo = 12 reais).
//
// followed by the phrases that were not recognized, if any.
func BuildResponse(items []Item, unknown []string) string {
	if len(items) == 0 {
		if len(unknown) > 0 {
			return MsgNoValidItems
		}
		return MsgNoItems
	}

	breakdown := make([]string, 0, len(items))
	for _, it := range items {
		breakdown = append(breakdown, fmt.Sprintf("%d %s = %d reais", it.Quantity, it.Key, it.Subtotal()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "O total do pedido é %d reais. (%s).", Total(items), strings.Join(breakdown, ", "))
	if len(unknown) > 0 {
		fmt.Fprintf(&b, " Não encontrei: %s.", strings.Join(unknown, ", "))
	}
	return b.String()
}

// Speech is BuildResponse applied to r.
func (r Result) Speech() string {
	return BuildResponse(r.Items, r.Unknown)
}
