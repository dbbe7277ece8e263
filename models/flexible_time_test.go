package models

import (
	"encoding/json"
	"testing"
)

func TestFlexibleTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"format ISO", `"2026-07-10T14:00:00"`, false},
		{"format court", `"2026-07-10T14:00"`, false},
		{"date seule", `"2026-07-10"`, false},
		{"null", `null`, false},
		{"vide", `""`, false},
		{"invalide", `"invalid"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft FlexibleTime
			err := json.Unmarshal([]byte(tt.input), &ft)
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalJSON() erreur = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFlexibleTime_MarshalJSON(t *testing.T) {
	var ft FlexibleTime
	_ = json.Unmarshal([]byte(`"2026-07-10T14:00:00"`), &ft)
	data, err := json.Marshal(ft)
	if err != nil {
		t.Fatalf("MarshalJSON() erreur = %v", err)
	}
	if string(data) != `"2026-07-10T14:00:00"` {
		t.Errorf("MarshalJSON() = %s", data)
	}

	var vide FlexibleTime
	data, err = json.Marshal(vide)
	if err != nil {
		t.Fatalf("MarshalJSON() erreur = %v", err)
	}
	if string(data) != "null" {
		t.Errorf("MarshalJSON() date vide = %s, attendu null", data)
	}
}
