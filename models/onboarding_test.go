package models

import (
	"testing"
	"time"
)

func ft(s string) FlexibleTime {
	t, _ := time.Parse("2006-01-02T15:04:05", s)
	return FlexibleTime{Time: t}
}

func sejourValide() *Sejour {
	return &Sejour{
		DateArrivee: ft("2026-07-10T14:00:00"),
		DateDepart:  ft("2026-07-15T10:00:00"),
		Transport:   TransportTrain,
		Residence:   "Gîte du Moulin",
	}
}

func TestEtapeSuivante(t *testing.T) {
	tests := []struct {
		etape EtapeOnboarding
		want  EtapeOnboarding
	}{
		{EtapeSejour, EtapeParticipants},
		{EtapeParticipants, EtapeConfirmation},
		{EtapeConfirmation, EtapeTerminee},
		{EtapeTerminee, EtapeTerminee},
	}
	for _, tt := range tests {
		if got := EtapeSuivante(tt.etape); got != tt.want {
			t.Errorf("EtapeSuivante(%s) = %s, attendu %s", tt.etape, got, tt.want)
		}
	}
}

func TestTransitionEtape(t *testing.T) {
	tests := []struct {
		name     string
		courante EtapeOnboarding
		cible    EtapeOnboarding
		wantErr  bool
	}{
		{"séjour vers participants", EtapeSejour, EtapeParticipants, false},
		{"participants vers confirmation", EtapeParticipants, EtapeConfirmation, false},
		{"confirmation vers terminée", EtapeConfirmation, EtapeTerminee, false},
		{"saut d'étape interdit", EtapeSejour, EtapeConfirmation, true},
		{"saut direct vers terminée interdit", EtapeSejour, EtapeTerminee, true},
		{"retour en arrière autorisé", EtapeConfirmation, EtapeSejour, false},
		{"parcours terminé figé", EtapeTerminee, EtapeSejour, true},
		{"étape inconnue", EtapeOnboarding("autre"), EtapeSejour, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TransitionEtape(tt.courante, tt.cible)
			if (err != nil) != tt.wantErr {
				t.Errorf("TransitionEtape(%s, %s) erreur = %v, wantErr %v", tt.courante, tt.cible, err, tt.wantErr)
			}
		})
	}
}

func TestValiderSejour(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Sejour)
		wantErr bool
	}{
		{"séjour complet", func(s *Sejour) {}, false},
		{"date d'arrivée manquante", func(s *Sejour) { s.DateArrivee = FlexibleTime{} }, true},
		{"date de départ manquante", func(s *Sejour) { s.DateDepart = FlexibleTime{} }, true},
		{"départ avant arrivée", func(s *Sejour) {
			s.DateArrivee = ft("2026-07-15T10:00:00")
			s.DateDepart = ft("2026-07-10T14:00:00")
		}, true},
		{"arrivée et départ le même jour", func(s *Sejour) {
			s.DateDepart = s.DateArrivee
		}, false},
		{"transport manquant", func(s *Sejour) { s.Transport = "" }, true},
		{"transport inconnu", func(s *Sejour) { s.Transport = "fusée" }, true},
		{"avion sans aéroport", func(s *Sejour) { s.Transport = TransportAvion }, true},
		{"avion avec aéroport", func(s *Sejour) {
			s.Transport = TransportAvion
			s.Aeroport = "Nantes Atlantique"
		}, false},
		{"résidence manquante", func(s *Sejour) { s.Residence = "  " }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sejourValide()
			tt.mutate(s)
			err := ValiderSejour(s)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValiderSejour() erreur = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValiderSejourNil(t *testing.T) {
	if err := ValiderSejour(nil); err == nil {
		t.Error("ValiderSejour(nil) devrait échouer")
	}
}

func TestValiderGroupeFamilial(t *testing.T) {
	participants := []Participant{
		{Firstname: "Jeanne", Lastname: "Moreau", IsAdult: true},
		{Firstname: "Léo", Lastname: "Moreau", IsAdult: false},
	}

	tests := []struct {
		name         string
		firstname    string
		lastname     string
		participants []Participant
		wantErr      bool
	}{
		{"groupe valide", "Marie", "Moreau", participants, false},
		{"prénom manquant", "", "Moreau", participants, true},
		{"nom manquant", "Marie", "   ", participants, true},
		{"aucun participant", "Marie", "Moreau", nil, true},
		{"participant sans nom", "Marie", "Moreau", []Participant{{Firstname: "Léo"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValiderGroupeFamilial(tt.firstname, tt.lastname, tt.participants)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValiderGroupeFamilial() erreur = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValiderConfirmation(t *testing.T) {
	participants := []Participant{{Firstname: "Marie", Lastname: "Moreau", IsAdult: true}}

	t.Run("profil complet", func(t *testing.T) {
		u := &User{Firstname: "Marie", Lastname: "Moreau", Sejour: sejourValide()}
		if err := ValiderConfirmation(u, participants); err != nil {
			t.Errorf("ValiderConfirmation() erreur = %v", err)
		}
	})

	t.Run("séjour absent", func(t *testing.T) {
		u := &User{Firstname: "Marie", Lastname: "Moreau"}
		if err := ValiderConfirmation(u, participants); err == nil {
			t.Error("ValiderConfirmation() devrait échouer sans séjour")
		}
	})

	t.Run("aucun participant", func(t *testing.T) {
		u := &User{Firstname: "Marie", Lastname: "Moreau", Sejour: sejourValide()}
		if err := ValiderConfirmation(u, nil); err == nil {
			t.Error("ValiderConfirmation() devrait échouer sans participant")
		}
	})
}
