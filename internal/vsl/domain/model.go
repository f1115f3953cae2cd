package domain

// ProjectData is the business profile captured during project onboarding.
type ProjectData struct {
	Nicho                  string   `json:"nicho"`
	ModeloNegocio          string   `json:"modeloNegocio"`
	PublicoIdeal           string   `json:"publicoIdeal"`
	FaixaPreco             string   `json:"faixaPreco"`
	PromessaPrincipal      string   `json:"promessaPrincipal"`
	DiferencialCompetitivo []string `json:"diferencialCompetitivo"`
	NivelMarketingDigital  string   `json:"nivelMarketingDigital"`
	NivelCopywriting       string   `json:"nivelCopywriting"`
	FaturamentoAtual       string   `json:"faturamentoAtual"`
	PrincipalDesafio       string   `json:"principalDesafio"`
}

// Request is the VSL form plus the optional project it belongs to.
type Request struct {
	Tipo        string       `json:"tipo"`
	Duracao     string       `json:"duracao"`
	Abordagem   string       `json:"abordagem"`
	CTA         string       `json:"cta"`
	Elementos   []string     `json:"elementos"`
	ProjectID   string       `json:"projectId,omitempty"`
	ProjectData *ProjectData `json:"projectData,omitempty"`
}

// HasElement reports whether the form selected element.
func (r Request) HasElement(element string) bool {
	for _, e := range r.Elementos {
		if e == element {
			return true
		}
	}
	return false
}

// Timing splits the video into its three sections.
type Timing struct {
	Introducao      string `json:"introducao"`
	Desenvolvimento string `json:"desenvolvimento"`
	CTA             string `json:"cta"`
	Total           string `json:"total"`
}

// Result is a generated VSL.
type Result struct {
	Script        string   `json:"script"`
	Slides        []string `json:"slides"`
	TempoEstimado Timing   `json:"tempoEstimado"`
	CTAsPositions []string `json:"ctasPositions"`
	Teleprompter  string   `json:"teleprompter"`
}
