package exports

import (
	"fmt"
	"sort"
	"strings"

	"Backend-Encuestas/src/models"
)

// dictionary maps categorical answer texts to their numeric codes. Keys are
// stored dash-normalized and lowercased; en-dash/hyphen variants of the same
// option collapse to one entry.
var dictionary map[string]int

// prefixKeys holds the dictionary keys sorted longest-first, so a prefix
// scan always prefers the most specific entry ("no recuerda" before "no").
var prefixKeys []string

func init() {
	raw := map[string]int{
		// Yes/No
		"No":          0,
		"Sí":          1,
		"Si":          1,
		"No recuerda": 2,
		"Desconocido": 2,

		// Identification and sociodemographics
		"Control":       0,
		"Caso (Cáncer)": 1,
		"Hombre":        0,
		"Mujer":         1,
		"Rural":         0,
		"Urbana":        1,
		"Básico":        0,
		"Medio":         1,
		"Superior":      2,

		// Previsión ("Otra" is context dependent: 4 here, 3 for water)
		"Fonasa":            0,
		"Isapre":            1,
		"Capredena/Dipreca": 2,
		"Sin previsión":     3,

		// Habits
		"Nunca":             0,
		"Exfumador":         1,
		"Fumador actual":    2,
		"Exconsumidor":      1,
		"Consumidor actual": 2,

		"1-9/día":  0,
		"10-19/día": 1,
		"≥20/día":  2,

		"<10 años":   0,
		"10-20 años": 1,
		">20 años":   2,

		"Ocasional": 0,
		"Regular":   1,
		"Frecuente": 2,

		"1-2 tragos": 0,
		"3-4 tragos": 1,
		"≥5 tragos":  2,

		// Diet
		"≤1/sem": 0,
		"2/sem":  1,
		"≥3/sem": 2,

		"≤2 porciones": 0,
		"3-4 porciones": 1,
		"≥5 porciones": 2,

		"Casi nunca":    0,
		"1-2 veces/sem": 1,
		"≥3 veces/sem":  2,

		"1-2/sem": 1,

		"Estacional": 1,
		"Diario":     2,

		"Red pública": 0,
		"Pozo":        1,
		"Camión":      2,

		"Ninguno": 0,
		"Hervir":  1,
		"Filtro":  2,
		"Cloro":   3,

		// H. pylori (uninverted; the inverted question-scoped rule runs first)
		"Negativo": 0,
		"Positivo": 1,

		// Histopathology ("Difuso" is context dependent)
		"Intestinal": 0,
		"Mixto":      2,
		"Cardias":    0,
		"Cuerpo":     1,
		"Antro":      2,

		"Nunca fumó": 0,
		"Nunca fumó (menos de 100 cigarrillos en la vida)": 0,

		// Smoking, detailed wording
		"1–9 cigarrillos/día":              0,
		"1–9 cigarrillos/día (poco)":       0,
		"10–19 cigarrillos/día":            1,
		"10–19 cigarrillos/día (moderado)": 1,
		"≥20 cigarrillos/día":              2,
		"≥20 cigarrillos/día (mucho)":      2,

		"<5 años":   0,
		"5–10 años": 1,
		">10 años":  2,

		// Alcohol, detailed wording
		"Ocasional (menos de 1 vez/semana)": 0,
		"Regular (1–3 veces/semana)":        1,
		"Frecuente (≥4 veces/semana)":       2,
		"1–2 tragos (poco)":                 0,
		"3–4 tragos (moderado)":             1,
		"≥5 tragos (mucho)":                 2,

		"Casi nunca / Rara vez":    0,
		"Nunca/Rara vez":           0,
		"1 a 2 veces por semana":   1,
		"3 o más veces por semana": 2,

		"≤2 porciones/día": 0,
		"3-4 porciones/día": 1,
		"≥5 porciones/día": 2,
	}

	dictionary = make(map[string]int, len(raw))
	for text, code := range raw {
		dictionary[strings.ToLower(normalizeAnswer(text))] = code
	}

	prefixKeys = make([]string, 0, len(dictionary))
	for key := range dictionary {
		prefixKeys = append(prefixKeys, key)
	}
	sort.Slice(prefixKeys, func(i, j int) bool {
		if len(prefixKeys[i]) != len(prefixKeys[j]) {
			return len(prefixKeys[i]) > len(prefixKeys[j])
		}
		return prefixKeys[i] < prefixKeys[j]
	})
}

// Dictionary returns a copy of the categorical code table, keyed by the
// normalized lowercase answer text.
func Dictionary() map[string]int {
	out := make(map[string]int, len(dictionary))
	for k, v := range dictionary {
		out[k] = v
	}
	return out
}

// EncodeAnswer transforms an answer text for export under the given role.
// Admins see everything raw. For every other role, question-scoped rules
// run first (they override the global table where option texts collide
// across questions), then the dictionary, then a longest-prefix scan for
// option texts carrying trailing qualifiers. Unmatched text passes through
// unchanged — numeric and date fields arrive here too, and the caller
// cannot tell them from an unmapped categorical value.
func EncodeAnswer(questionText, answer string, role models.Role) string {
	if role == models.RoleAdmin {
		return answer
	}
	if strings.TrimSpace(answer) == "" {
		return ""
	}

	normalized := normalizeAnswer(answer)
	lower := strings.ToLower(normalized)

	// Previsión: "Otra" codes 4 here, and the spaced spelling of
	// Capredena/Dipreca is accepted.
	if questionContains(questionText, "Previsión") || questionContains(questionText, "Prevision") {
		if strings.EqualFold(normalized, "Otra") {
			return "4"
		}
		if strings.EqualFold(normalized, "Capredena / Dipreca") {
			return "2"
		}
	}

	// Histopathology: Lauren classification puts Difuso at 1; tumor
	// location reuses the word at 3.
	if questionContains(questionText, "Histológico") || questionContains(questionText, "Histopatología") {
		if strings.EqualFold(normalized, "Difuso") {
			return "1"
		}
		if strings.EqualFold(normalized, "Otro") {
			return "3"
		}
	}
	if questionContains(questionText, "Localización") {
		if strings.EqualFold(normalized, "Difuso") {
			return "3"
		}
	}

	if questionContains(questionText, "Agua") {
		if strings.EqualFold(normalized, "Otra") || strings.EqualFold(normalized, "Otro") {
			return "3"
		}
	}

	// Nationality is visible raw to admins and investigators only.
	if questionContains(questionText, "Nacionalidad") {
		if role == models.RoleAnalista || role == models.RoleUser {
			return "REDACTED"
		}
		return answer
	}

	// H. pylori status questions invert the usual boolean coding:
	// Positive=0, Negative=1, Unknown=2. "Sí" answers a "have you had a
	// positive result" phrasing, so it means Positive.
	if questionContains(questionText, "Helicobacter") || questionContains(questionText, "H. pylori") {
		switch {
		case strings.EqualFold(normalized, "Positivo"):
			return "0"
		case strings.EqualFold(normalized, "Negativo"):
			return "1"
		case strings.EqualFold(normalized, "Desconocido"):
			return "2"
		case strings.EqualFold(normalized, "Sí"), strings.EqualFold(normalized, "Si"):
			return "0"
		case strings.EqualFold(normalized, "No"):
			return "1"
		case strings.EqualFold(normalized, "No recuerda"):
			return "2"
		}
	}

	// H. pylori exam types are matched by substring: the option texts vary
	// in wording but always name the method.
	if questionContains(questionText, "Tipo de examen") {
		switch {
		case strings.Contains(lower, "aliento"):
			return "1"
		case strings.Contains(lower, "antígeno"):
			return "2"
		case strings.Contains(lower, "serología"):
			return "3"
		case strings.Contains(lower, "ureasa"):
			return "4"
		case strings.Contains(lower, "histología"), strings.Contains(lower, "biopsia"):
			return "5"
		case strings.Contains(lower, "otro"):
			return "6"
		}
	}

	if code, ok := dictionary[lower]; ok {
		return fmt.Sprintf("%d", code)
	}
	for _, key := range prefixKeys {
		if strings.HasPrefix(lower, key) {
			return fmt.Sprintf("%d", dictionary[key])
		}
	}

	return answer
}

// AnonymizePatient renders the patient column. Admins get the full name;
// everyone else gets the participant code, or a synthetic tag when no code
// was assigned.
func AnonymizePatient(p *models.Patient, role models.Role) string {
	if role == models.RoleAdmin {
		return p.FirstName + " " + p.LastName
	}
	if p.ParticipantCode != nil {
		return *p.ParticipantCode
	}
	return "ANON-" + p.ID.Hex()
}

// AnonymizeUser renders the interviewer column.
func AnonymizeUser(u *models.User, role models.Role) string {
	if role == models.RoleAdmin {
		return u.Username
	}
	return "User-" + u.ID.Hex()
}

// normalizeAnswer collapses en-dash, em-dash and the minus sign to a plain
// hyphen and trims surrounding whitespace, so "10–19 años" and "10-19 años"
// encode identically.
func normalizeAnswer(answer string) string {
	r := strings.NewReplacer("–", "-", "—", "-", "−", "-")
	return strings.TrimSpace(r.Replace(answer))
}

func questionContains(questionText, keyword string) bool {
	return strings.Contains(strings.ToLower(questionText), strings.ToLower(keyword))
}
