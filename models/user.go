package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User représente un compte invité dans le système
type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CodeInvitation  string             `json:"code_invitation" bson:"code_invitation,omitempty"`
	Firstname       string             `json:"firstname" bson:"firstname"`
	Lastname        string             `json:"lastname" bson:"lastname"`
	Email           string             `json:"email" bson:"email"`
	Phone           string             `json:"phone" bson:"phone"`
	Password        string             `json:"-" bson:"password"` // Le "-" empêche la sérialisation du mot de passe
	ProfileImageURL string             `json:"profileImageUrl,omitempty" bson:"profile_image_url,omitempty"`
	Admin           int                `json:"admin" bson:"admin"` // 0 = invité, 1 = admin
	// Onboarding : l'étape courante est persistée explicitement, jamais
	// déduite des champs remplis (un profil partiel serait ambigu)
	EtapeOnboarding EtapeOnboarding `json:"etape_onboarding" bson:"etape_onboarding"`
	ProfilComplet   bool            `json:"profil_complet" bson:"profil_complet"`
	Sejour          *Sejour         `json:"sejour,omitempty" bson:"sejour,omitempty"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
}

// RegisterRequest représente la requête de création de compte
type RegisterRequest struct {
	CodeInvitation string `json:"code_invitation"`
	Firstname      string `json:"prenom"` // Le frontend envoie les champs en français
	Lastname       string `json:"nom"`
	Email          string `json:"email"`
	Phone          string `json:"telephone"`
	Password       string `json:"password"`
}

// LoginRequest représente la requête de connexion
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest représente la requête de modification d'utilisateur (admin)
type UpdateUserRequest struct {
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Admin     *int   `json:"admin,omitempty"` // Pointeur pour distinguer 0 de non-fourni
}

// ErrorResponse représente une réponse d'erreur
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse représente une réponse de succès générique
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// AdminStatsResponse représente les statistiques globales pour l'admin
type AdminStatsResponse struct {
	TotalUtilisateurs int `json:"total_utilisateurs"`
	TotalAdmins       int `json:"total_admins"`
	TotalEvenements   int `json:"total_evenements"`
	EvenementsPublies int `json:"evenements_publies"`
	TotalPersonnes    int `json:"total_personnes"`
	TotalMedias       int `json:"total_medias"`
}
