package models

import (
	"fmt"
	"strings"
)

// EtapeOnboarding représente l'étape courante du parcours d'accueil.
// L'étape est stockée telle quelle sur le profil : la transition est une
// fonction pure, indépendante des champs optionnels remplis.
type EtapeOnboarding string

const (
	EtapeSejour       EtapeOnboarding = "sejour"
	EtapeParticipants EtapeOnboarding = "participants"
	EtapeConfirmation EtapeOnboarding = "confirmation"
	EtapeTerminee     EtapeOnboarding = "terminee"
)

// EstValide indique si la valeur correspond à une étape connue
func (e EtapeOnboarding) EstValide() bool {
	switch e {
	case EtapeSejour, EtapeParticipants, EtapeConfirmation, EtapeTerminee:
		return true
	}
	return false
}

// EtapeSuivante retourne l'étape qui suit e dans le parcours.
// L'étape terminée est absorbante.
func EtapeSuivante(e EtapeOnboarding) EtapeOnboarding {
	switch e {
	case EtapeSejour:
		return EtapeParticipants
	case EtapeParticipants:
		return EtapeConfirmation
	case EtapeConfirmation:
		return EtapeTerminee
	default:
		return EtapeTerminee
	}
}

// TransitionEtape valide qu'un passage de courante vers cible est autorisé.
// Seul le passage à l'étape immédiatement suivante est permis ; revenir en
// arrière est toujours autorisé tant que le parcours n'est pas terminé.
func TransitionEtape(courante, cible EtapeOnboarding) error {
	if !courante.EstValide() || !cible.EstValide() {
		return fmt.Errorf("étape d'onboarding inconnue")
	}
	if courante == EtapeTerminee {
		return fmt.Errorf("le parcours d'accueil est déjà terminé")
	}
	if cible == EtapeSuivante(courante) {
		return nil
	}
	// Retour en arrière : autorisé vers une étape déjà franchie
	if rangEtape(cible) < rangEtape(courante) {
		return nil
	}
	return fmt.Errorf("impossible de passer de l'étape %s à l'étape %s", courante, cible)
}

func rangEtape(e EtapeOnboarding) int {
	switch e {
	case EtapeSejour:
		return 0
	case EtapeParticipants:
		return 1
	case EtapeConfirmation:
		return 2
	default:
		return 3
	}
}

// ValiderSejour vérifie les informations de séjour requises pour passer
// à l'étape des participants
func ValiderSejour(s *Sejour) error {
	if s == nil {
		return fmt.Errorf("les informations de séjour sont requises")
	}
	if s.DateArrivee.IsZero() {
		return fmt.Errorf("la date d'arrivée est requise")
	}
	if s.DateDepart.IsZero() {
		return fmt.Errorf("la date de départ est requise")
	}
	if s.DateDepart.Time.Before(s.DateArrivee.Time) {
		return fmt.Errorf("la date de départ doit être postérieure ou égale à la date d'arrivée")
	}
	switch s.Transport {
	case TransportVoiture, TransportTrain, TransportAvion:
	case "":
		return fmt.Errorf("le mode de transport est requis")
	default:
		return fmt.Errorf("mode de transport invalide: %s", s.Transport)
	}
	if s.Transport == TransportAvion && strings.TrimSpace(s.Aeroport) == "" {
		return fmt.Errorf("l'aéroport d'arrivée est requis pour un voyage en avion")
	}
	if strings.TrimSpace(s.Residence) == "" {
		return fmt.Errorf("le lieu de résidence est requis")
	}
	return nil
}

// ValiderGroupeFamilial vérifie l'identité de l'invité et ses participants
// pour passer à l'étape de confirmation
func ValiderGroupeFamilial(firstname, lastname string, participants []Participant) error {
	if strings.TrimSpace(firstname) == "" {
		return fmt.Errorf("le prénom est requis")
	}
	if strings.TrimSpace(lastname) == "" {
		return fmt.Errorf("le nom est requis")
	}
	if len(participants) == 0 {
		return fmt.Errorf("au moins un participant est requis")
	}
	for _, p := range participants {
		if strings.TrimSpace(p.Firstname) == "" || strings.TrimSpace(p.Lastname) == "" {
			return fmt.Errorf("tous les participants doivent avoir un prénom et un nom")
		}
	}
	return nil
}

// ValiderConfirmation revalide l'ensemble du profil avant de le marquer
// comme complet : séjour valide et au moins un participant
func ValiderConfirmation(u *User, participants []Participant) error {
	if err := ValiderSejour(u.Sejour); err != nil {
		return err
	}
	return ValiderGroupeFamilial(u.Firstname, u.Lastname, participants)
}
