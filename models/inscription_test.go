package models

import (
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func TestPlacesRestantes(t *testing.T) {
	tests := []struct {
		name      string
		capacite  *int
		inscrits  int
		want      int
		wantBorne bool
	}{
		{"capacité illimitée", nil, 42, 0, false},
		{"places disponibles", intPtr(10), 3, 7, true},
		{"événement complet", intPtr(10), 10, 0, true},
		{"compteur au-delà de la capacité", intPtr(10), 12, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, borne := PlacesRestantes(tt.capacite, tt.inscrits)
			if got != tt.want || borne != tt.wantBorne {
				t.Errorf("PlacesRestantes() = (%d, %v), attendu (%d, %v)", got, borne, tt.want, tt.wantBorne)
			}
		})
	}
}

func TestCapaciteSuffisante(t *testing.T) {
	tests := []struct {
		name     string
		capacite *int
		inscrits int
		demande  int
		want     bool
	}{
		{"capacité illimitée", nil, 1000, 50, true},
		{"demande qui tient", intPtr(10), 3, 7, true},
		{"demande qui dépasse", intPtr(5), 3, 3, false},
		{"libération de places", intPtr(5), 5, -2, true},
		{"demande nulle", intPtr(5), 5, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CapaciteSuffisante(tt.capacite, tt.inscrits, tt.demande); got != tt.want {
				t.Errorf("CapaciteSuffisante(%v, %d, %d) = %v, attendu %v",
					tt.capacite, tt.inscrits, tt.demande, got, tt.want)
			}
		})
	}
}

// Vérifie que la modification d'une inscription compare bien le delta à la
// capacité, sans recompter la contribution antérieure de l'appelant.
func TestModificationInscriptionRecalcul(t *testing.T) {
	capacite := intPtr(10)

	// L'invité A a 3 personnes, total événement = 3.
	// Passer à 8 : delta = 5, 3+5 = 8 <= 10 -> accepté
	delta := DeltaPersonnes(3, 8)
	if !CapaciteSuffisante(capacite, 3, delta) {
		t.Error("passer de 3 à 8 personnes devrait être accepté (8 <= 10)")
	}

	// Passer à 11 : delta = 8, 3+8 = 11 > 10 -> refusé
	delta = DeltaPersonnes(3, 11)
	if CapaciteSuffisante(capacite, 3, delta) {
		t.Error("passer de 3 à 11 personnes devrait être refusé (11 > 10)")
	}
}

// Scénario : capacité 5, A inscrit 3 personnes, B en demande 3 -> refus,
// le total reste à 3.
func TestScenarioInscriptionPuisDepassement(t *testing.T) {
	capacite := intPtr(5)
	inscrits := 0

	if !CapaciteSuffisante(capacite, inscrits, 3) {
		t.Fatal("l'inscription de A (3 personnes) devrait être acceptée")
	}
	inscrits += 3

	if CapaciteSuffisante(capacite, inscrits, 3) {
		t.Error("l'inscription de B (3 personnes) devrait être refusée (6 > 5)")
	}
	if inscrits != 3 {
		t.Errorf("total = %d, attendu 3", inscrits)
	}
}

// Scénario : capacité 10, A inscrit à 8 demande de passer à 2 mais
// l'écriture de la ligne échoue. Tant que la ligne porte encore 8, le
// compteur doit les garder : B (8 personnes) doit être refusé, sinon la
// somme du registre (8 + 8 = 16) dépasserait la capacité.
func TestEchecModificationConserveLeCompteur(t *testing.T) {
	capacite := intPtr(10)
	inscrits := 8 // la ligne de A

	// Diminution 8 -> 2 : aucune réservation préalable n'est nécessaire
	delta := DeltaPersonnes(8, 2)
	if delta >= 0 {
		t.Fatalf("delta = %d, attendu négatif", delta)
	}

	// L'écriture de la ligne échoue : pas de libération, le compteur
	// reste à 8 et continue de couvrir la ligne de A
	if CapaciteSuffisante(capacite, inscrits, 8) {
		t.Error("B (8 personnes) devrait être refusé tant que A occupe 8 places (16 > 10)")
	}

	// Écriture réussie : les places sont rendues après coup seulement
	inscrits += delta
	if inscrits != 2 {
		t.Fatalf("compteur = %d, attendu 2", inscrits)
	}
	if !CapaciteSuffisante(capacite, inscrits, 8) {
		t.Error("B (8 personnes) devrait être accepté après la libération (10 <= 10)")
	}
}

// Scénario miroir : augmentation 2 -> 8, la réservation du delta réussit
// mais l'écriture de la ligne échoue. Le delta doit être rendu, sinon les
// places restent réservées pour personne.
func TestEchecAugmentationRendLeDelta(t *testing.T) {
	capacite := intPtr(10)
	inscrits := 2

	delta := DeltaPersonnes(2, 8)
	if !CapaciteSuffisante(capacite, inscrits, delta) {
		t.Fatal("la réservation du delta (6) devrait être acceptée (8 <= 10)")
	}
	inscrits += delta

	// Échec d'écriture : rollback du delta
	inscrits -= delta
	if inscrits != 2 {
		t.Fatalf("compteur = %d, attendu 2 après rollback", inscrits)
	}
	if !CapaciteSuffisante(capacite, inscrits, 8) {
		t.Error("B (8 personnes) devrait être accepté après le rollback (10 <= 10)")
	}
}

// La désinscription est idempotente : les places ne sont rendues que si
// la ligne a réellement été supprimée par cet appel.
func TestPlacesALiberer(t *testing.T) {
	tests := []struct {
		name            string
		supprimee       bool
		nombrePersonnes int
		want            int
	}{
		{"ligne supprimée", true, 4, 4},
		{"ligne déjà absente", false, 4, 0},
		{"double désinscription", false, 0, 0},
		{"compte négatif corrompu", true, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlacesALiberer(tt.supprimee, tt.nombrePersonnes); got != tt.want {
				t.Errorf("PlacesALiberer(%v, %d) = %d, attendu %d",
					tt.supprimee, tt.nombrePersonnes, got, tt.want)
			}
		})
	}
}

// Scénario : deux désinscriptions concurrentes du même invité. Une seule
// supprime la ligne, une seule libère les places.
func TestDesinscriptionConcurrente(t *testing.T) {
	liberees := PlacesALiberer(true, 3) + PlacesALiberer(false, 3)
	if liberees != 3 {
		t.Errorf("places libérées = %d, attendu 3 (une seule libération)", liberees)
	}
}

func TestInscriptionsOuvertes(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	avant := now.Add(-time.Hour)
	apres := now.Add(time.Hour)

	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"publié sans fenêtre", Event{Publie: true}, true},
		{"non publié", Event{Publie: false}, false},
		{"ouverture passée", Event{Publie: true, DateOuvertureInscription: &avant}, true},
		{"ouverture future", Event{Publie: true, DateOuvertureInscription: &apres}, false},
		{"fermeture passée", Event{Publie: true, DateFermetureInscription: &avant}, false},
		{"fermeture future", Event{Publie: true, DateFermetureInscription: &apres}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.InscriptionsOuvertes(now); got != tt.want {
				t.Errorf("InscriptionsOuvertes() = %v, attendu %v", got, tt.want)
			}
		})
	}
}
