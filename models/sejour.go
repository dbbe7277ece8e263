package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Modes de transport acceptés pour venir au rassemblement
const (
	TransportVoiture = "voiture"
	TransportTrain   = "train"
	TransportAvion   = "avion"
)

// Sejour représente les informations de séjour d'un invité
// (dates de voyage, transport, lieu de résidence pendant le rassemblement)
type Sejour struct {
	DateArrivee  FlexibleTime `json:"date_arrivee" bson:"date_arrivee"`
	DateDepart   FlexibleTime `json:"date_depart" bson:"date_depart"`
	Transport    string       `json:"transport" bson:"transport"` // "voiture", "train", "avion"
	Aeroport     string       `json:"aeroport,omitempty" bson:"aeroport,omitempty"`
	Residence    string       `json:"residence" bson:"residence"` // Lieu de résidence sur place
	Commentaires string       `json:"commentaires,omitempty" bson:"commentaires,omitempty"`
}

// SejourLegacy représente l'ancien format de séjour, écrit en best-effort
// dans la collection "sejours" pour les outils qui le lisent encore.
// Un échec d'écriture ne bloque jamais la sauvegarde principale.
type SejourLegacy struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserEmail   string             `json:"user_email" bson:"user_email"`
	DateArrivee time.Time          `json:"date_arrivee" bson:"date_arrivee"`
	DateDepart  time.Time          `json:"date_depart" bson:"date_depart"`
	Transport   string             `json:"transport" bson:"transport"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// SaveSejourRequest représente la requête de sauvegarde du séjour
type SaveSejourRequest struct {
	DateArrivee  FlexibleTime `json:"date_arrivee"`
	DateDepart   FlexibleTime `json:"date_depart"`
	Transport    string       `json:"transport"`
	Aeroport     string       `json:"aeroport,omitempty"`
	Residence    string       `json:"residence"`
	Commentaires string       `json:"commentaires,omitempty"`
}

// Sejour convertit la requête en modèle Sejour
func (r SaveSejourRequest) Sejour() *Sejour {
	return &Sejour{
		DateArrivee:  r.DateArrivee,
		DateDepart:   r.DateDepart,
		Transport:    r.Transport,
		Aeroport:     r.Aeroport,
		Residence:    r.Residence,
		Commentaires: r.Commentaires,
	}
}
