package service

import (
	"fmt"
	"strings"

	"github.com/vslstudio/vsl-backend/internal/vsl/domain"
)

var abordagemInstructions = map[string][]string{
	domain.AbordagemHistoria: {
		"Comece com uma história pessoal envolvente",
		"Use storytelling para criar conexão emocional",
		"Mostre a transformação pessoal",
	},
	domain.AbordagemDados: {
		"Apresente estatísticas impactantes logo no início",
		"Use dados para estabelecer autoridade",
		"Baseie argumentos em evidências concretas",
	},
	domain.AbordagemProblema: {
		"Identifique e agite o problema principal",
		"Mostre as consequências de não resolver",
		"Crie urgência através da dor",
	},
	domain.AbordagemRevelacao: {
		"Desperte curiosidade com uma revelação",
		"Construa mistério e interesse",
		"Revele segredos da indústria",
	},
}

var elementoInstructions = map[string][]string{
	domain.ElementoProvaSocial: {
		"Incluir 2-3 depoimentos específicos e detalhados",
		"Mencionar resultados concretos e timeframes",
		"Adicionar estatísticas de sucesso dos clientes",
	},
	domain.ElementoUrgencia: {
		"Criar senso de urgência com prazo limitado",
		"Mencionar oferta especial com tempo determinado",
		"Usar linguagem que incentive ação imediata",
	},
	domain.ElementoEscassez: {
		"Limitar número de vagas ou produtos disponíveis",
		"Criar exclusividade na oferta",
		"Mencionar quantidades específicas restantes",
	},
	domain.ElementoBonus: {
		"Apresentar 3-4 bônus exclusivos com valores específicos",
		"Detalhar cada bônus e seu benefício",
		"Calcular valor total dos bônus",
	},
	domain.ElementoGarantia: {
		"Oferecer garantia robusta (30-90 dias)",
		"Eliminar riscos da compra",
		"Detalhar processo de reembolso",
	},
}

var ctaInstructions = map[string][]string{
	domain.CTABotao: {
		"Direcionar para clicar no botão abaixo do vídeo",
		"Explicar o que acontece após o clique",
		"Criar urgência para a ação",
	},
	domain.CTALink: {
		"Mencionar link na descrição do vídeo",
		"Instruir onde encontrar o link",
		"Facilitar o acesso",
	},
	domain.CTAWhatsApp: {
		"Solicitar mensagem no WhatsApp",
		"Fornecer número específico (usar placeholder)",
		"Explicar o que escrever na mensagem",
	},
	domain.CTATelefone: {
		"Solicitar ligação telefônica",
		"Mencionar número na tela (usar placeholder)",
		"Criar urgência para ligar agora",
	},
}

// BuildPrompt assembles the script-writing prompt from the form. Sections
// are numbered and shift by one when project data adds a personalization
// section.
func BuildPrompt(req domain.Request) string {
	var b strings.Builder
	abordagem := domain.Label(domain.AbordagemLabels, req.Abordagem)

	b.WriteString("Você é um especialista em criação de VSLs (Video Sales Letters) de alta conversão.\n\n")
	b.WriteString("Crie um script completo e profissional de VSL baseado nas seguintes especificações:\n")
	if req.ProjectData != nil {
		writeProjectContext(&b, req.ProjectData)
	}

	b.WriteString("\n**CONFIGURAÇÕES DA VSL:**\n")
	fmt.Fprintf(&b, "- Tipo: %s\n", domain.Label(domain.TipoLabels, req.Tipo))
	fmt.Fprintf(&b, "- Duração total: %s minutos\n", req.Duracao)
	fmt.Fprintf(&b, "- Abordagem principal: %s\n", abordagem)
	fmt.Fprintf(&b, "- Call-to-action: %s\n", domain.Label(domain.CTALabels, req.CTA))
	fmt.Fprintf(&b, "- Elementos incluídos: %s\n", elementLabels(req.Elementos))

	b.WriteString("\n**INSTRUÇÕES ESPECÍFICAS:**\n\n")
	b.WriteString("1. **ESTRUTURA OBRIGATÓRIA:**\n")
	fmt.Fprintf(&b, "   - Introdução: 0:00 - 1:30 (gancho forte usando a abordagem %s)\n", abordagem)
	b.WriteString("   - Desenvolvimento: 1:30 até os últimos 2-3 minutos\n")
	b.WriteString("   - Call-to-action final: últimos 2-3 minutos\n\n")

	b.WriteString("2. **ABORDAGEM ESPECÍFICA:**")
	writeBullets(&b, abordagemInstructions[req.Abordagem])

	section := 3
	if p := req.ProjectData; p != nil {
		fmt.Fprintf(&b, "\n\n%d. **PERSONALIZAÇÃO BASEADA NO PROJETO:**", section)
		writeBullets(&b, []string{
			fmt.Sprintf("Adapte a linguagem para o nicho %q", p.Nicho),
			fmt.Sprintf("Foque nos problemas específicos do público: %q", p.PublicoIdeal),
			fmt.Sprintf("Enfatize a promessa principal: %q", p.PromessaPrincipal),
			fmt.Sprintf("Destaque os diferenciais: %s", strings.Join(p.DiferencialCompetitivo, ", ")),
			fmt.Sprintf("Considere o nível de conhecimento do público (Marketing Digital: %s)", p.NivelMarketingDigital),
			fmt.Sprintf("Aborde o principal desafio: %q", p.PrincipalDesafio),
			fmt.Sprintf("Justifique o investimento para a faixa de preço: %s", p.FaixaPreco),
		})
		section++
	}

	fmt.Fprintf(&b, "\n\n%d. **ELEMENTOS OBRIGATÓRIOS A INCLUIR:**", section)
	for _, e := range req.Elementos {
		writeBullets(&b, elementoInstructions[e])
	}
	section++

	fmt.Fprintf(&b, "\n\n%d. **CALL-TO-ACTION ESPECÍFICO:**", section)
	writeBullets(&b, ctaInstructions[req.CTA])
	section++

	fmt.Fprintf(&b, "\n\n%d. **FORMATO DE SAÍDA:**", section)
	writeBullets(&b, []string{
		"Retorne APENAS o script em markdown",
		"Use títulos e subtítulos para organizar",
		"Inclua marcações de tempo",
		"Escreva como se fosse para ser falado diretamente",
		"Use linguagem natural e persuasiva",
		"Adapte o tom para o público brasileiro",
		`Use "você" para se dirigir ao espectador`,
	})
	section++

	fmt.Fprintf(&b, "\n\n%d. **DURAÇÃO E TIMING:**", section)
	writeBullets(&b, []string{
		fmt.Sprintf("Respeite a duração total de %s minutos", req.Duracao),
		"Distribua o conteúdo proporcionalmente",
		"Inclua pausas naturais e transições",
		"Mantenha ritmo adequado para conversão",
	})

	b.WriteString("\n\nAgora crie o script completo da VSL seguindo todas essas diretrizes.")
	return b.String()
}

func writeProjectContext(b *strings.Builder, p *domain.ProjectData) {
	b.WriteString("\n**CONTEXTO DO PROJETO/NEGÓCIO:**\n")
	fmt.Fprintf(b, "- Nicho/Segmento: %s\n", p.Nicho)
	fmt.Fprintf(b, "- Modelo de Negócio: %s\n", domain.Label(domain.ModeloNegocioLabels, p.ModeloNegocio))
	fmt.Fprintf(b, "- Público-Alvo: %s\n", p.PublicoIdeal)
	fmt.Fprintf(b, "- Faixa de Preço: %s\n", domain.Label(domain.FaixaPrecoLabels, p.FaixaPreco))
	fmt.Fprintf(b, "- Promessa Principal: %s\n", p.PromessaPrincipal)
	fmt.Fprintf(b, "- Diferenciais Competitivos: %s\n", strings.Join(p.DiferencialCompetitivo, ", "))
	fmt.Fprintf(b, "- Nível Marketing Digital: %s\n", p.NivelMarketingDigital)
	fmt.Fprintf(b, "- Faturamento Atual: %s\n", p.FaturamentoAtual)
	fmt.Fprintf(b, "- Principal Desafio: %s\n", p.PrincipalDesafio)
	b.WriteString("\n**IMPORTANTE:** Use essas informações para personalizar completamente a VSL, tornando-a específica para este negócio, nicho e público-alvo.\n")
}

func writeBullets(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString("\n   - ")
		b.WriteString(l)
	}
}

func elementLabels(elementos []string) string {
	labels := make([]string, 0, len(elementos))
	for _, e := range elementos {
		labels = append(labels, domain.Label(domain.ElementoLabels, e))
	}
	return strings.Join(labels, ", ")
}
