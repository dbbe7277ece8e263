package models

import "testing"

// Un compte doit toujours conserver au moins un participant : supprimer
// le dernier est refusé.
func TestEstDernierParticipant(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{"dernier participant", 1, true},
		{"deux participants", 2, false},
		{"grand groupe", 8, false},
		{"groupe vide (état anormal)", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstDernierParticipant(tt.count); got != tt.want {
				t.Errorf("EstDernierParticipant(%d) = %v, attendu %v", tt.count, got, tt.want)
			}
		})
	}
}
