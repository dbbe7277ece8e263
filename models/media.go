package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media représente un média (photo ou vidéo) partagé pour un événement.
// Le fichier lui-même vit dans le stockage objet ; seule la métadonnée
// est conservée ici.
type Media struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID     primitive.ObjectID `json:"event_id" bson:"event_id"`
	UserEmail   string             `json:"user_email" bson:"user_email"`
	UserName    string             `json:"user_name" bson:"user_name"`
	Type        string             `json:"type" bson:"type"` // "image" ou "video"
	URL         string             `json:"url" bson:"url"`
	StoragePath string             `json:"storage_path" bson:"storage_path"`
	Filename    string             `json:"filename" bson:"filename"`
	Size        int64              `json:"size" bson:"size"`
	UploadedAt  time.Time          `json:"uploaded_at" bson:"uploaded_at"`
}

// CreateMediaRequest représente la requête d'ajout d'un média
// (après upload direct vers le stockage objet)
type CreateMediaRequest struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	StoragePath string `json:"storage_path"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
}
