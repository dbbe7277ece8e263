package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Accompagnant représente une personne accompagnant l'invité principal
// sur une inscription (métadonnée d'affichage, le compteur fait foi)
type Accompagnant struct {
	Firstname string `json:"firstname" bson:"firstname"`
	Lastname  string `json:"lastname" bson:"lastname"`
	IsAdult   bool   `json:"is_adult" bson:"is_adult"`
}

// Inscription représente l'inscription d'un compte invité à un événement.
// Au plus une inscription par couple (event_id, user_email), garantie par
// un index unique composé.
type Inscription struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID         primitive.ObjectID `json:"event_id" bson:"event_id"`
	UserEmail       string             `json:"user_email" bson:"user_email"`
	NombrePersonnes int                `json:"nombre_personnes" bson:"nombre_personnes"`
	Accompagnants   []Accompagnant     `json:"accompagnants" bson:"accompagnants"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateInscriptionRequest représente la requête d'inscription à un événement
type CreateInscriptionRequest struct {
	NombrePersonnes int            `json:"nombre_personnes"`
	Accompagnants   []Accompagnant `json:"accompagnants"`
}

// UpdateInscriptionRequest représente la requête de modification d'inscription
type UpdateInscriptionRequest struct {
	NombrePersonnes int            `json:"nombre_personnes"`
	Accompagnants   []Accompagnant `json:"accompagnants"`
}

// InscriptionWithUserInfo contient les infos complètes pour l'admin
type InscriptionWithUserInfo struct {
	ID              string         `json:"id"`
	UserEmail       string         `json:"user_email"`
	UserName        string         `json:"user_name"`
	UserPhone       string         `json:"user_phone"`
	NombrePersonnes int            `json:"nombre_personnes"`
	Accompagnants   []Accompagnant `json:"accompagnants"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// PlacesRestantes retourne le nombre de places encore disponibles.
// Une capacité nil signifie illimité : le second retour vaut alors false.
func PlacesRestantes(capacite *int, inscrits int) (int, bool) {
	if capacite == nil {
		return 0, false
	}
	restantes := *capacite - inscrits
	if restantes < 0 {
		restantes = 0
	}
	return restantes, true
}

// CapaciteSuffisante indique si demande places supplémentaires tiennent dans
// la capacité. demande peut être négative (libération de places).
func CapaciteSuffisante(capacite *int, inscrits, demande int) bool {
	if capacite == nil || demande <= 0 {
		return true
	}
	return inscrits+demande <= *capacite
}

// DeltaPersonnes calcule les places supplémentaires à réserver lors d'une
// modification d'inscription. Le total courant contient déjà la contribution
// de l'appelant : seule la différence est à comparer à la capacité.
func DeltaPersonnes(ancienNombre, nouveauNombre int) int {
	return nouveauNombre - ancienNombre
}

// PlacesALiberer retourne le nombre de places à rendre après une
// désinscription. Rien n'est libéré si la ligne n'a pas été supprimée
// par cet appel (déjà supprimée par une requête concurrente, ou absente).
func PlacesALiberer(supprimee bool, nombrePersonnes int) int {
	if !supprimee || nombrePersonnes < 0 {
		return 0
	}
	return nombrePersonnes
}
