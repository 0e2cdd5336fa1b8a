package model

import (
	"encoding/json"
	"strings"
)

// StatusCode enumerates the workflow stages an order or shipment moves
// through: COMPRAR → ENCARGADO → MIAMI → SALIENDO → EN TRANSITO → EN BSAS →
// ENTREGADO, with CANCELADO reachable from any non-terminal stage.
// StatusOther carries labels outside the closed vocabulary.
type StatusCode int

const (
	StatusComprar StatusCode = iota
	StatusEncargado
	StatusSaliendo
	StatusMiami
	StatusEnTransito
	StatusEnBsas
	StatusEntregado
	StatusCancelado
	StatusOther
)

var statusLabels = map[StatusCode]string{
	StatusComprar:    "COMPRAR",
	StatusEncargado:  "ENCARGADO",
	StatusSaliendo:   "SALIENDO",
	StatusMiami:      "MIAMI",
	StatusEnTransito: "EN TRANSITO",
	StatusEnBsas:     "EN BSAS",
	StatusEntregado:  "ENTREGADO",
	StatusCancelado:  "CANCELADO",
}

// Status is a workflow label: a closed code plus the original text when the
// code is StatusOther. Consumers must handle the StatusOther branch
// explicitly instead of trusting free text.
type Status struct {
	Code  StatusCode
	Label string
}

// KnownStatus builds a Status from a code of the closed vocabulary.
func KnownStatus(code StatusCode) Status {
	return Status{Code: code, Label: statusLabels[code]}
}

// statusRules are tested in declaration order; the first substring hit wins.
// A label containing both ENCARGADO and CANCELADO therefore normalizes to
// ENCARGADO.
var statusRules = []struct {
	keywords []string
	code     StatusCode
}{
	{[]string{"ENCARGADO"}, StatusEncargado},
	{[]string{"SALIENDO"}, StatusSaliendo},
	{[]string{"MIAMI"}, StatusMiami},
	{[]string{"BSAS", "LLEGÓ", "LLEGO", "RECIBIDO"}, StatusEnBsas},
	{[]string{"TRANSITO"}, StatusEnTransito},
	{[]string{"ENTREGADO", "FINALIZADO"}, StatusEntregado},
	{[]string{"CANCELADO"}, StatusCancelado},
}

// NormalizeStatus collapses a free-text workflow label into the closed
// vocabulary. Empty input means the work has not started (COMPRAR).
// Unmatched non-empty labels pass through verbatim as StatusOther.
func NormalizeStatus(raw string) Status {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return KnownStatus(StatusComprar)
	}
	up := strings.ToUpper(s)
	for _, rule := range statusRules {
		for _, kw := range rule.keywords {
			if strings.Contains(up, kw) {
				return KnownStatus(rule.code)
			}
		}
	}
	return Status{Code: StatusOther, Label: s}
}

// IsDefault reports whether the status is still the not-yet-started state.
func (s Status) IsDefault() bool {
	return s.Code == StatusComprar
}

func (s Status) String() string {
	return s.Label
}

// MarshalJSON emits the label only; the seed files carry plain strings.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Label)
}

// UnmarshalJSON restores a Status from its label. Labels outside the closed
// vocabulary load as StatusOther without re-normalization.
func (s *Status) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	for code, known := range statusLabels {
		if known == label {
			*s = Status{Code: code, Label: label}
			return nil
		}
	}
	*s = Status{Code: StatusOther, Label: label}
	return nil
}
