package domain

const (
	AbordagemHistoria  = "historia"
	AbordagemDados     = "dados"
	AbordagemProblema  = "problema"
	AbordagemRevelacao = "revelacao"

	ElementoProvaSocial = "prova-social"
	ElementoUrgencia    = "urgencia"
	ElementoEscassez    = "escassez"
	ElementoBonus       = "bonus"
	ElementoGarantia    = "garantia"

	CTABotao    = "botao"
	CTALink     = "link"
	CTAWhatsApp = "whatsapp"
	CTATelefone = "telefone"
)

var TipoLabels = map[string]string{
	"curta": "VSL Curta (até R$ 497)",
	"media": "VSL Média (R$ 497-1.997)",
	"longa": "VSL Longa (R$ 1.997+)",
}

var AbordagemLabels = map[string]string{
	AbordagemHistoria:  "História Pessoal (storytelling)",
	AbordagemDados:     "Dados e Estatísticas (autoridade)",
	AbordagemProblema:  "Problema Urgente (dor)",
	AbordagemRevelacao: "Revelação/Descoberta (curiosidade)",
}

var ElementoLabels = map[string]string{
	ElementoProvaSocial: "Prova Social (depoimentos)",
	ElementoUrgencia:    "Urgência (tempo limitado)",
	ElementoEscassez:    "Escassez (vagas limitadas)",
	ElementoBonus:       "Bônus Exclusivos",
	ElementoGarantia:    "Garantia Destacada",
}

var CTALabels = map[string]string{
	CTABotao:    "Botão na página",
	CTALink:     "Link na descrição",
	CTAWhatsApp: "WhatsApp",
	CTATelefone: "Telefone",
}

var ModeloNegocioLabels = map[string]string{
	"infoproduto": "Infoprodutos/Cursos Online",
	"ecommerce":   "E-commerce/Loja Virtual",
	"saas":        "SaaS/Software",
	"servicos":    "Prestação de Serviços",
	"afiliados":   "Marketing de Afiliados",
	"agencia":     "Agência de Marketing",
}

var FaixaPrecoLabels = map[string]string{
	"ate-100":   "até R$ 100",
	"100-500":   "R$ 100 a R$ 500",
	"500-1000":  "R$ 500 a R$ 1.000",
	"1000-3000": "R$ 1.000 a R$ 3.000",
	"3000-plus": "acima de R$ 3.000",
}

// Label looks key up in table and falls back to the key itself.
func Label(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}
