package types

import "errors"

var (
	// ErrInvalidTimeRange indica datas ausentes, malformadas ou end < start.
	ErrInvalidTimeRange = errors.New("start and end must be valid timestamps and end must not be before start")

	// ErrUnknownGenerator indica um nome de gerador fora do conjunto registrado.
	ErrUnknownGenerator = errors.New("unknown report generator")

	// ErrInvalidStaticConfig indica um arquivo de configuração estática inválido.
	ErrInvalidStaticConfig = errors.New("invalid static report configuration")
)
