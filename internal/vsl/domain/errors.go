package domain

import "errors"

var (
	ErrMissingFields    = errors.New("tipo, duracao, abordagem and cta are required")
	ErrGenerationFailed = errors.New("vsl generation failed")
)
