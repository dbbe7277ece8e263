package handlers

import (
	"testing"

	"cousinade-backend/models"
)

func TestValidateAccompagnants(t *testing.T) {
	accompagnants := []models.Accompagnant{
		{Firstname: "Léa", Lastname: "Martin", IsAdult: true},
		{Firstname: "Tom", Lastname: "Martin", IsAdult: false},
	}

	result, err := validateAccompagnants(3, accompagnants)
	if err != nil {
		t.Fatalf("validateAccompagnants() error = %v", err)
	}
	if len(result) != 2 {
		t.Errorf("len(result) = %d, attendu 2", len(result))
	}
}

func TestValidateAccompagnantsTronque(t *testing.T) {
	// Le nombre de personnes fait foi : la liste est tronquée à n-1
	accompagnants := []models.Accompagnant{
		{Firstname: "Léa", Lastname: "Martin"},
		{Firstname: "Tom", Lastname: "Martin"},
		{Firstname: "Zoé", Lastname: "Martin"},
	}

	result, err := validateAccompagnants(2, accompagnants)
	if err != nil {
		t.Fatalf("validateAccompagnants() error = %v", err)
	}
	if len(result) != 1 {
		t.Errorf("len(result) = %d, attendu 1 (tronqué à nombre_personnes-1)", len(result))
	}
	if result[0].Firstname != "Léa" {
		t.Errorf("result[0].Firstname = %s, attendu Léa", result[0].Firstname)
	}
}

func TestValidateAccompagnantsNomManquant(t *testing.T) {
	accompagnants := []models.Accompagnant{
		{Firstname: "Léa", Lastname: ""},
	}

	if _, err := validateAccompagnants(2, accompagnants); err == nil {
		t.Error("validateAccompagnants() devrait refuser un accompagnant sans nom")
	}
}

func TestValidateAccompagnantsListeVide(t *testing.T) {
	result, err := validateAccompagnants(1, nil)
	if err != nil {
		t.Fatalf("validateAccompagnants() error = %v", err)
	}
	if result == nil {
		t.Error("validateAccompagnants() devrait retourner un tableau vide, pas nil")
	}
	if len(result) != 0 {
		t.Errorf("len(result) = %d, attendu 0", len(result))
	}
}
