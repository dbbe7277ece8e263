package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"cousinade-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository gère les opérations sur les comptes invités
type UserRepository struct {
	collection *mongo.Collection
	sejours    *mongo.Collection
}

// NewUserRepository crée une nouvelle instance de UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
		sejours:    db.Collection("sejours"),
	}
}

// Create crée un nouveau compte invité
func (r *UserRepository) Create(user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user.CreatedAt = time.Now()
	user.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("cet email est déjà utilisé")
		}
		return fmt.Errorf("erreur lors de la création de l'utilisateur: %w", err)
	}

	return nil
}

// FindByEmail recherche un compte par email
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	// Augmenter le timeout à 10 secondes pour éviter les blocages
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de l'utilisateur: %w", err)
	}

	return &user, nil
}

// FindByID recherche un compte par ID
func (r *UserRepository) FindByID(id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de l'utilisateur: %w", err)
	}

	return &user, nil
}

// EmailExists vérifie si un email existe déjà
func (r *UserRepository) EmailExists(email string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("erreur lors de la vérification de l'email: %w", err)
	}

	return count > 0, nil
}

// Update met à jour les champs de base d'un compte
func (r *UserRepository) Update(user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": user.ID}
	update := bson.M{
		"$set": bson.M{
			"firstname": user.Firstname,
			"lastname":  user.Lastname,
			"email":     user.Email,
			"phone":     user.Phone,
			"password":  user.Password,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour de l'utilisateur: %w", err)
	}

	return nil
}

// UpdateFields met à jour des champs spécifiques d'un compte
func (r *UserRepository) UpdateFields(id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)

	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour: %w", err)
	}

	return nil
}

// UpdateByEmail met à jour un compte par email
func (r *UserRepository) UpdateByEmail(email string, updateData map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": updateData},
	)

	if err != nil {
		return fmt.Errorf("erreur mise à jour utilisateur: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("utilisateur non trouvé")
	}

	return nil
}

// SaveSejour enregistre les informations de séjour et l'étape d'onboarding
// sur le profil, puis réplique un extrait dans l'ancienne collection
// "sejours" en best-effort (un échec y est logué, jamais remonté)
func (r *UserRepository) SaveSejour(email string, sejour *models.Sejour, etape models.EtapeOnboarding) error {
	err := r.UpdateByEmail(email, map[string]interface{}{
		"sejour":           sejour,
		"etape_onboarding": etape,
	})
	if err != nil {
		return err
	}

	r.saveSejourLegacy(email, sejour)
	return nil
}

func (r *UserRepository) saveSejourLegacy(email string, sejour *models.Sejour) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	legacy := models.SejourLegacy{
		UserEmail:   email,
		DateArrivee: sejour.DateArrivee.Time,
		DateDepart:  sejour.DateDepart.Time,
		Transport:   sejour.Transport,
		UpdatedAt:   time.Now(),
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.sejours.ReplaceOne(ctx, bson.M{"user_email": email}, legacy, opts)
	if err != nil {
		log.Printf("⚠️ Écriture du séjour legacy échouée pour %s: %v", email, err)
	}
}

// UpdateEtapeOnboarding persiste l'étape d'onboarding courante
func (r *UserRepository) UpdateEtapeOnboarding(email string, etape models.EtapeOnboarding) error {
	return r.UpdateByEmail(email, map[string]interface{}{
		"etape_onboarding": etape,
	})
}

// MarquerProfilComplet marque le parcours d'accueil comme terminé
func (r *UserRepository) MarquerProfilComplet(email string) error {
	return r.UpdateByEmail(email, map[string]interface{}{
		"etape_onboarding": models.EtapeTerminee,
		"profil_complet":   true,
	})
}

// Delete supprime un compte invité
func (r *UserRepository) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression de l'utilisateur: %w", err)
	}

	return nil
}

// FindAll retourne tous les comptes invités
func (r *UserRepository) FindAll() ([]models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des utilisateurs: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des utilisateurs: %w", err)
	}

	return users, nil
}

// FindAdmins retourne tous les comptes administrateurs
func (r *UserRepository) FindAdmins() ([]models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var admins []models.User
	cursor, err := r.collection.Find(ctx, bson.M{"admin": 1})
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des admins: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &admins); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des admins: %w", err)
	}

	return admins, nil
}

// CountAll compte tous les comptes invités
func (r *UserRepository) CountAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage: %w", err)
	}

	return count, nil
}

// CountAdmins compte les administrateurs
func (r *UserRepository) CountAdmins() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"admin": 1})
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage des admins: %w", err)
	}

	return count, nil
}
