package database

import (
	"context"
	"fmt"
	"time"

	"cousinade-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParticipantRepository gère les opérations sur les participants
// (les membres de la famille rattachés à un compte invité)
type ParticipantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository crée une nouvelle instance de ParticipantRepository
func NewParticipantRepository(db *mongo.Database) *ParticipantRepository {
	return &ParticipantRepository{
		collection: db.Collection("participants"),
	}
}

// Create ajoute un participant au groupe familial d'un compte.
// L'index unique sparse sur l'email retourne ErrEmailParticipantUtilise
// si l'email est déjà pris par un autre participant.
func (r *ParticipantRepository) Create(participant *models.Participant) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	participant.ID = primitive.NewObjectID()
	participant.CreatedAt = time.Now()
	participant.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, participant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailParticipantUtilise
		}
		return fmt.Errorf("erreur lors de la création du participant: %w", err)
	}

	return nil
}

// FindByID recherche un participant par ID
func (r *ParticipantRepository) FindByID(id primitive.ObjectID) (*models.Participant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&participant)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche du participant: %w", err)
	}

	return &participant, nil
}

// FindByOwner retourne les participants d'un compte invité,
// dans l'ordre d'ajout
func (r *ParticipantRepository) FindByOwner(ownerEmail string) ([]models.Participant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_email": ownerEmail}, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des participants: %w", err)
	}
	defer cursor.Close(ctx)

	var participants []models.Participant
	if err = cursor.All(ctx, &participants); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des participants: %w", err)
	}

	return participants, nil
}

// FindByEmail recherche un participant par son email
func (r *ParticipantRepository) FindByEmail(email string) (*models.Participant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&participant)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche du participant: %w", err)
	}

	return &participant, nil
}

// CountByOwner compte les participants d'un compte
func (r *ParticipantRepository) CountByOwner(ownerEmail string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"owner_email": ownerEmail})
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage des participants: %w", err)
	}

	return count, nil
}

// Update met à jour des champs d'un participant
func (r *ParticipantRepository) Update(id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailParticipantUtilise
		}
		return fmt.Errorf("erreur lors de la mise à jour du participant: %w", err)
	}

	return nil
}

// Delete supprime un participant
func (r *ParticipantRepository) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression du participant: %w", err)
	}

	return nil
}

// MarquerInvitationEnvoyee horodate l'envoi de l'invitation au participant
func (r *ParticipantRepository) MarquerInvitationEnvoyee(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"invitation_envoyee_le": now}},
	)
	if err != nil {
		return fmt.Errorf("erreur lors du marquage de l'invitation: %w", err)
	}

	return nil
}

// LierCompte rattache un compte invité nouvellement créé au participant
// portant cet email
func (r *ParticipantRepository) LierCompte(email string, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"compte_lie": userID, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("erreur lors du rattachement du compte: %w", err)
	}

	return nil
}
