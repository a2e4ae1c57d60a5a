package models

import "strings"

// Divisions are the nine geographic divisions an account or event belongs to.
var Divisions = []string{
	"Alaska",
	"Central",
	"Eastern",
	"Far West",
	"Foreign",
	"Intermountain",
	"Northern",
	"Pacific Northwest",
	"Rocky",
}

// Disciplines are the six race disciplines.
var Disciplines = []string{
	"Alpine",
	"Combined Alpine",
	"Downhill",
	"Giant Slalom",
	"Slalom",
	"Super G",
}

// IsDivision reports whether s is a known division.
func IsDivision(s string) bool { return contains(Divisions, s) }

// IsDiscipline reports whether s is a known discipline.
func IsDiscipline(s string) bool { return contains(Disciplines, s) }

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// JoinDisciplines renders a discipline set in its stored form, a
// comma-delimited string.
func JoinDisciplines(disciplines []string) string {
	return strings.Join(disciplines, ", ")
}

// SplitDisciplines parses the stored comma-delimited form back into a set.
func SplitDisciplines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
