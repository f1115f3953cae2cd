package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vslstudio/vsl-backend/internal/vsl/domain"
)

const (
	defaultDurationMinutes = 8
	teleprompterWidth      = 60
)

var (
	teleprompterLine = regexp.MustCompile(`.{1,60}(\s|$)`)
	leadingInt       = regexp.MustCompile(`^\s*(\d+)`)
)

// Slides lists the deck that accompanies the script.
func Slides(req domain.Request) []string {
	second := "A Grande Revelação"
	switch req.Abordagem {
	case domain.AbordagemHistoria:
		second = "Minha História"
	case domain.AbordagemDados:
		second = "Estatísticas Impactantes"
	case domain.AbordagemProblema:
		second = "O Grande Problema"
	}

	slides := []string{
		"Slide 1: Gancho Inicial",
		"Slide 2: " + second,
		"Slide 3: Agitação do Problema",
		"Slide 4: Consequências de Não Agir",
		"Slide 5: Apresentação da Solução",
		"Slide 6: Como Funciona",
		"Slide 7: Benefícios Únicos",
	}
	if req.HasElement(domain.ElementoProvaSocial) {
		slides = append(slides, "Slide 8: Depoimentos de Sucesso")
	}
	if req.HasElement(domain.ElementoBonus) {
		slides = append(slides, "Slide 9: Bônus Exclusivos")
	}
	return append(slides, "Slide Final: Call to Action")
}

// DurationMinutes reads the upper bound of a "min-max" duration range.
// Anything else yields the default.
func DurationMinutes(duracao string) int {
	parts := strings.Split(duracao, "-")
	if len(parts) < 2 {
		return defaultDurationMinutes
	}
	m := leadingInt.FindStringSubmatch(parts[1])
	if m == nil {
		return defaultDurationMinutes
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return defaultDurationMinutes
	}
	return n
}

// EstimateTiming splits the video into introduction, body and call to action.
func EstimateTiming(duracao string) domain.Timing {
	total := DurationMinutes(duracao)
	return domain.Timing{
		Introducao:      "0:00 - 1:30",
		Desenvolvimento: fmt.Sprintf("1:30 - %d:00", total-2),
		CTA:             fmt.Sprintf("%d:00 - %d:00", total-2, total),
		Total:           fmt.Sprintf("%d minutos", total),
	}
}

// CTAPositions suggests where calls to action land in the video.
func CTAPositions(req domain.Request) []string {
	total := DurationMinutes(req.Duracao)
	positions := []string{
		"CTA Suave aos 3:00 - 'Continue assistindo para descobrir...'",
		fmt.Sprintf("CTA Principal aos %d:00 - CTA final completo", total-2),
	}
	if req.HasElement(domain.ElementoUrgencia) {
		positions = append(positions, "CTA de Urgência - Enfatizar prazo limitado")
	}
	if req.HasElement(domain.ElementoEscassez) {
		positions = append(positions, "CTA de Escassez - Enfatizar vagas limitadas")
	}
	return positions
}

// Teleprompter renders the script for reading aloud: upper case, markdown
// markers removed, blank lines dropped and long lines wrapped at 60
// characters.
func Teleprompter(script string) string {
	text := strings.ToUpper(script)
	text = strings.ReplaceAll(text, "\n\n", "\n")
	for _, marker := range []string{"### ", "## ", "# ", "**"} {
		text = strings.ReplaceAll(text, marker, "")
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if utf8.RuneCountInString(line) > teleprompterWidth {
			if parts := teleprompterLine.FindAllString(line, -1); parts != nil {
				line = strings.Join(parts, "\n")
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
