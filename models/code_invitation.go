package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CodeInvitation représente un code d'invitation familial.
// La création de compte exige un code actif.
type CodeInvitation struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code         string             `json:"code" bson:"code"`
	Libelle      string             `json:"libelle,omitempty" bson:"libelle,omitempty"` // Ex: "branche maternelle"
	Utilisations int                `json:"utilisations" bson:"utilisations"`
	Active       bool               `json:"active" bson:"active"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
