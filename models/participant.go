package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant représente un membre de la famille rattaché à un compte invité.
// Un compte doit toujours conserver au moins un participant.
type Participant struct {
	ID                  primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	OwnerEmail          string              `json:"owner_email" bson:"owner_email"` // Email du compte invité propriétaire
	Firstname           string              `json:"firstname" bson:"firstname"`
	Lastname            string              `json:"lastname" bson:"lastname"`
	IsAdult             bool                `json:"is_adult" bson:"is_adult"`
	Email               string              `json:"email,omitempty" bson:"email,omitempty"`
	CompteLie           *primitive.ObjectID `json:"compte_lie,omitempty" bson:"compte_lie,omitempty"` // Compte invité lié (si le participant a son propre accès)
	InvitationEnvoyeeLe *time.Time          `json:"invitation_envoyee_le,omitempty" bson:"invitation_envoyee_le,omitempty"`
	CreatedAt           time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" bson:"updated_at"`
}

// CreateParticipantRequest représente la requête d'ajout d'un participant
type CreateParticipantRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	IsAdult   bool   `json:"is_adult"`
	Email     string `json:"email,omitempty"`
}

// UpdateParticipantRequest représente la requête de modification d'un participant
type UpdateParticipantRequest struct {
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	IsAdult   *bool  `json:"is_adult,omitempty"` // Pointeur pour distinguer false de non-fourni
	Email     string `json:"email,omitempty"`
}

// EstDernierParticipant indique si supprimer un participant laisserait le
// groupe vide. Un compte doit toujours conserver au moins un participant.
func EstDernierParticipant(count int) bool {
	return count <= 1
}
