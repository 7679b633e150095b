package voice

// DefaultKnown maps the canonical speaker labels the script generator is
// prompted to use onto fixed voices, in both German and English.
func DefaultKnown() map[string]string {
	return map[string]string{
		"Gastgeber": "rachel",
		"Gast":      "drew",
		"Host":      "rachel",
		"Guest":     "drew",
		"Person A":  "mimi",
		"Person B":  "fin",
	}
}

// DefaultFallback is cycled through for speaker labels outside the known
// table, keeping the voice count bounded for any script.
func DefaultFallback() []string {
	return []string{"rachel", "drew", "clyde", "mimi"}
}

// Roster assigns voices to speaker labels for a single generation run.
// Assignment is memoized: a label keeps its first voice for the whole run.
// Rosters are never shared between runs.
type Roster struct {
	known    map[string]string
	fallback []string
	assigned map[string]string
}

func NewRoster(known map[string]string, fallback []string) *Roster {
	if known == nil {
		known = DefaultKnown()
	}
	if len(fallback) == 0 {
		fallback = DefaultFallback()
	}

	return &Roster{
		known:    known,
		fallback: fallback,
		assigned: make(map[string]string),
	}
}

// Assign resolves the voice for a speaker label. First encounters of known
// labels get their fixed voice; unknown labels take the next fallback voice,
// indexed by how many labels have been assigned so far, wrapping around.
func (r *Roster) Assign(speaker string) string {
	if v, ok := r.assigned[speaker]; ok {
		return v
	}

	v, ok := r.known[speaker]
	if !ok {
		v = r.fallback[len(r.assigned)%len(r.fallback)]
	}
	r.assigned[speaker] = v

	return v
}

// Assignments returns a copy of the label→voice mapping made so far.
func (r *Roster) Assignments() map[string]string {
	m := make(map[string]string, len(r.assigned))
	for k, v := range r.assigned {
		m[k] = v
	}
	return m
}
