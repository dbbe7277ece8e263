package database

import (
	"testing"
)

func TestPingSansConnexion(t *testing.T) {
	// Sauvegarder l'état courant pour ne pas perturber les autres tests
	oldClient := Client
	Client = nil
	defer func() { Client = oldClient }()

	err := Ping()
	if err == nil {
		t.Fatal("Ping() devrait échouer quand Client est nil")
	}
	if err.Error() != "client MongoDB non initialisé" {
		t.Errorf("Ping() erreur = %v", err)
	}
}
