package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catégories d'événements du rassemblement
const (
	CategorieProgramme    = "programme"    // Événement du programme officiel
	CategoriePersonnalise = "personnalise" // Événement proposé par un invité
)

// Event représente un événement du rassemblement familial
type Event struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Titre       string             `json:"titre" bson:"titre"`
	Date        time.Time          `json:"date" bson:"date"`
	Description string             `json:"description" bson:"description"`
	// Capacite est un plafond sur le total de personnes inscrites.
	// nil = capacité illimitée
	Capacite    *int   `json:"capacite" bson:"capacite"`
	Inscrits    int    `json:"inscrits" bson:"inscrits"` // Compteur de personnes inscrites
	MediasCount int    `json:"medias_count" bson:"medias_count"`
	Publie      bool   `json:"publie" bson:"publie"` // Visible des invités non-admin
	Categorie   string `json:"categorie" bson:"categorie"`
	Lieu        string `json:"lieu" bson:"lieu"`
	Adresse     string `json:"adresse" bson:"adresse"`
	Ville       string `json:"ville" bson:"ville"`
	TarifInfo   string `json:"tarif_info,omitempty" bson:"tarif_info,omitempty"`
	// Fenêtre d'inscription (optionnelle)
	DateOuvertureInscription *time.Time `json:"date_ouverture_inscription,omitempty" bson:"date_ouverture_inscription,omitempty"`
	DateFermetureInscription *time.Time `json:"date_fermeture_inscription,omitempty" bson:"date_fermeture_inscription,omitempty"`
	NotificationSentOpening  bool       `json:"notification_sent_opening" bson:"notification_sent_opening"`
	CreatedAt                time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at" bson:"updated_at"`
}

// InscriptionsOuvertes indique si l'événement accepte les inscriptions
// à l'instant donné (publié + fenêtre d'inscription respectée)
func (e *Event) InscriptionsOuvertes(now time.Time) bool {
	if !e.Publie {
		return false
	}
	if e.DateOuvertureInscription != nil && now.Before(*e.DateOuvertureInscription) {
		return false
	}
	if e.DateFermetureInscription != nil && now.After(*e.DateFermetureInscription) {
		return false
	}
	return true
}

// CreateEventRequest représente la requête de création d'événement
type CreateEventRequest struct {
	Titre                    string        `json:"titre"`
	Date                     FlexibleTime  `json:"date"`
	Description              string        `json:"description"`
	Capacite                 *int          `json:"capacite"`
	Publie                   *bool         `json:"publie,omitempty"`
	Categorie                string        `json:"categorie"`
	Lieu                     string        `json:"lieu"`
	Adresse                  string        `json:"adresse"`
	Ville                    string        `json:"ville"`
	TarifInfo                string        `json:"tarif_info,omitempty"`
	DateOuvertureInscription *FlexibleTime `json:"date_ouverture_inscription,omitempty"`
	DateFermetureInscription *FlexibleTime `json:"date_fermeture_inscription,omitempty"`
}

// NullableInt distingue, dans une requête de modification, un champ absent
// d'un null explicite : Set vaut true dès que le champ figure dans le JSON.
// Un null explicite donne Set=true, Value=nil.
type NullableInt struct {
	Set   bool
	Value *int
}

func (n *NullableInt) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// UpdateEventRequest représente la requête de modification d'événement
type UpdateEventRequest struct {
	Titre                    string        `json:"titre,omitempty"`
	Date                     FlexibleTime  `json:"date,omitempty"`
	Description              string        `json:"description,omitempty"`
	Capacite                 NullableInt   `json:"capacite,omitempty"`
	Publie                   *bool         `json:"publie,omitempty"`
	Categorie                string        `json:"categorie,omitempty"`
	Lieu                     string        `json:"lieu,omitempty"`
	Adresse                  string        `json:"adresse,omitempty"`
	Ville                    string        `json:"ville,omitempty"`
	TarifInfo                string        `json:"tarif_info,omitempty"`
	DateOuvertureInscription *FlexibleTime `json:"date_ouverture_inscription,omitempty"`
	DateFermetureInscription *FlexibleTime `json:"date_fermeture_inscription,omitempty"`
}

// MarshalJSON formate les dates de l'événement en heure française
// (Europe/Paris), quel que soit le fuseau de stockage
func (e Event) MarshalJSON() ([]byte, error) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		paris = time.FixedZone("CET", 2*3600)
	}

	// Alias pour éviter la récursion infinie
	type Alias Event

	dateStr := ""
	if !e.Date.IsZero() {
		dateStr = e.Date.In(paris).Format("2006-01-02T15:04:05")
	}

	dateOuvertureStr := (*string)(nil)
	if e.DateOuvertureInscription != nil && !e.DateOuvertureInscription.IsZero() {
		s := e.DateOuvertureInscription.In(paris).Format("2006-01-02T15:04:05")
		dateOuvertureStr = &s
	}

	dateFermetureStr := (*string)(nil)
	if e.DateFermetureInscription != nil && !e.DateFermetureInscription.IsZero() {
		s := e.DateFermetureInscription.In(paris).Format("2006-01-02T15:04:05")
		dateFermetureStr = &s
	}

	return json.Marshal(&struct {
		*Alias
		Date                     string  `json:"date"`
		DateOuvertureInscription *string `json:"date_ouverture_inscription,omitempty"`
		DateFermetureInscription *string `json:"date_fermeture_inscription,omitempty"`
	}{
		Alias:                    (*Alias)(&e),
		Date:                     dateStr,
		DateOuvertureInscription: dateOuvertureStr,
		DateFermetureInscription: dateFermetureStr,
	})
}
