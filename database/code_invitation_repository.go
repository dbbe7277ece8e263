package database

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"cousinade-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Alphabet des codes générés : pas de 0/O ni de 1/I pour éviter
// les confusions à la saisie
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeInvitationRepository gère les codes d'invitation familiaux
type CodeInvitationRepository struct {
	collection *mongo.Collection
}

// NewCodeInvitationRepository crée une nouvelle instance
func NewCodeInvitationRepository(db *mongo.Database) *CodeInvitationRepository {
	return &CodeInvitationRepository{
		collection: db.Collection("codes_invitation"),
	}
}

// IsCodeValid vérifie qu'un code existe et est actif
func (r *CodeInvitationRepository) IsCodeValid(code string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"code":   code,
		"active": true,
	})
	if err != nil {
		return false, fmt.Errorf("erreur lors de la vérification du code: %w", err)
	}

	return count > 0, nil
}

// IncrementUsage incrémente le compteur d'utilisations d'un code
func (r *CodeInvitationRepository) IncrementUsage(code string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"code": code},
		bson.M{"$inc": bson.M{"utilisations": 1}},
	)
	if err != nil {
		return fmt.Errorf("erreur lors de l'incrémentation du code: %w", err)
	}

	return nil
}

// FindAll retourne tous les codes d'invitation, du plus récent au plus ancien
func (r *CodeInvitationRepository) FindAll() ([]models.CodeInvitation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des codes: %w", err)
	}
	defer cursor.Close(ctx)

	var codes []models.CodeInvitation
	if err = cursor.All(ctx, &codes); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des codes: %w", err)
	}

	return codes, nil
}

// Create enregistre un code d'invitation
func (r *CodeInvitationRepository) Create(code *models.CodeInvitation) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	code.ID = primitive.NewObjectID()
	code.CreatedAt = time.Now()
	code.Utilisations = 0

	_, err := r.collection.InsertOne(ctx, code)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("ce code d'invitation existe déjà")
		}
		return fmt.Errorf("erreur lors de la création du code: %w", err)
	}

	return nil
}

// Generate crée un nouveau code aléatoire de 8 caractères avec le libellé
// donné et l'enregistre
func (r *CodeInvitationRepository) Generate(libelle string) (*models.CodeInvitation, error) {
	raw := make([]byte, 8)
	for i := range raw {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return nil, fmt.Errorf("erreur lors de la génération du code: %w", err)
		}
		raw[i] = codeAlphabet[n.Int64()]
	}

	code := &models.CodeInvitation{
		Code:    string(raw),
		Libelle: libelle,
		Active:  true,
	}

	if err := r.Create(code); err != nil {
		return nil, err
	}

	return code, nil
}

// SetActive active ou désactive un code
func (r *CodeInvitationRepository) SetActive(code string, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"code": code},
		bson.M{"$set": bson.M{"active": active}},
	)
	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour du code: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCodeInvitationIntrouvable
	}

	return nil
}
