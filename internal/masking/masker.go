package masking

import (
	"github.com/carson-networks/txreport/internal/logging"
)

// Masker applies the masking functions and reports each call to a hook.
type Masker struct {
	hook logging.Hook
}

// NewMasker returns a Masker reporting to hook, which may be nil.
func NewMasker(hook logging.Hook) *Masker {
	return &Masker{hook: hook}
}

func (m *Masker) Card(raw string) string {
	out := MaskCardNumber(raw)
	m.hook.Emit(logging.Event{Operation: "MaskCardNumber", Input: raw, Output: out})
	return out
}

func (m *Masker) Account(raw string) string {
	out := MaskAccountNumber(raw)
	m.hook.Emit(logging.Event{Operation: "MaskAccountNumber", Input: raw, Output: out})
	return out
}

// AccountOrCard masks a "<description> <number>" string. Malformed input is
// returned unchanged and reported to the hook as rejected.
func (m *Masker) AccountOrCard(full string) string {
	out, err := MaskAccountOrCardStrict(full)
	if err != nil {
		out = full
	}
	m.hook.Emit(logging.Event{Operation: "MaskAccountOrCard", Input: full, Output: out, Err: err})
	return out
}
