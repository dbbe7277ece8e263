package database

import "errors"

// Erreurs métier retournées par les repositories. Les handlers les
// traduisent en codes HTTP sans inspecter de chaînes de caractères.
var (
	ErrEvenementIntrouvable      = errors.New("événement introuvable")
	ErrInscriptionIntrouvable    = errors.New("inscription introuvable")
	ErrDejaInscrit               = errors.New("une inscription existe déjà pour cet événement")
	ErrCapaciteDepassee          = errors.New("capacité de l'événement dépassée")
	ErrDernierParticipant        = errors.New("impossible de supprimer le dernier participant du groupe")
	ErrEmailParticipantUtilise   = errors.New("cet email est déjà utilisé par un autre participant")
	ErrCodeInvitationIntrouvable = errors.New("code d'invitation introuvable")
)
