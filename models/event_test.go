package models

import (
	"encoding/json"
	"testing"
)

// Une modification d'événement doit distinguer trois cas pour la capacité :
// champ absent (ne pas toucher), null explicite (repasser en illimité),
// valeur (plafonner).
func TestUpdateEventRequestCapacite(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *int
	}{
		{"champ absent", `{"titre":"Grand repas"}`, false, nil},
		{"null explicite", `{"capacite":null}`, true, nil},
		{"valeur fournie", `{"capacite":40}`, true, intPtr(40)},
		{"zéro explicite", `{"capacite":0}`, true, intPtr(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateEventRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if req.Capacite.Set != tt.wantSet {
				t.Errorf("Set = %v, attendu %v", req.Capacite.Set, tt.wantSet)
			}
			switch {
			case tt.wantValue == nil && req.Capacite.Value != nil:
				t.Errorf("Value = %d, attendu nil", *req.Capacite.Value)
			case tt.wantValue != nil && req.Capacite.Value == nil:
				t.Errorf("Value = nil, attendu %d", *tt.wantValue)
			case tt.wantValue != nil && *req.Capacite.Value != *tt.wantValue:
				t.Errorf("Value = %d, attendu %d", *req.Capacite.Value, *tt.wantValue)
			}
		})
	}
}
