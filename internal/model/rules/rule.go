package rules

// Rule associates trigger keywords with a canned reply. The table is
// evaluated top to bottom and the first rule whose trigger appears in the
// lowercased utterance wins, so declaration order carries meaning.
type Rule struct {
	ID       string   `json:"id"`
	Triggers []string `json:"triggers"`
	Response string   `json:"response"`
}

// Greeting seeds every new conversation as the first bot message.
const Greeting = "Olá! Bem-vindo à Casa Decoração. Como posso ajudar você hoje?"

// Fallback answers utterances that no rule matches.
const Fallback = "Desculpe, não entendi sua pergunta. Para falar com um atendente, ligue para (11) 4002-8922."

// Seed provides the storefront rule table. Pricing outranks shipping when
// both keywords appear in the same utterance.
func Seed() []Rule {
	return []Rule{
		{
			ID:       "pricing",
			Triggers: []string{"preço", "valor"},
			Response: "Os preços variam conforme o produto. Você encontra o valor atualizado na página de cada item. Posso ajudar com mais alguma coisa?",
		},
		{
			ID:       "shipping",
			Triggers: []string{"entrega", "frete"},
			Response: "Entregamos em todo o Brasil! O frete é calculado no carrinho de acordo com o seu CEP.",
		},
		{
			ID:       "catalog",
			Triggers: []string{"produto", "móvel"},
			Response: "Temos móveis e itens de decoração para todos os ambientes. Dê uma olhada no nosso catálogo de produtos!",
		},
		{
			ID:       "payment",
			Triggers: []string{"pagamento"},
			Response: "Aceitamos cartão de crédito, boleto e Pix, com total segurança no pagamento.",
		},
	}
}
