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

// EventRepository gère les opérations sur les événements
type EventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository crée une nouvelle instance de EventRepository
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		collection: db.Collection("events"),
	}
}

// Create crée un nouvel événement
func (r *EventRepository) Create(event *models.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	event.Inscrits = 0
	event.MediasCount = 0

	if event.Categorie == "" {
		event.Categorie = models.CategorieProgramme
	}

	_, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("erreur lors de la création de l'événement: %w", err)
	}

	return nil
}

// FindAll retourne tous les événements, publiés ou non
func (r *EventRepository) FindAll() ([]models.Event, error) {
	return r.find(bson.M{})
}

// FindPublies retourne les événements visibles des invités
func (r *EventRepository) FindPublies() ([]models.Event, error) {
	return r.find(bson.M{"publie": true})
}

func (r *EventRepository) find(filter bson.M) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des événements: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des événements: %w", err)
	}

	return events, nil
}

// FindByID recherche un événement par ID
func (r *EventRepository) FindByID(id primitive.ObjectID) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de l'événement: %w", err)
	}

	return &event, nil
}

// Update met à jour un événement
func (r *EventRepository) Update(id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
	)

	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour de l'événement: %w", err)
	}

	return nil
}

// Delete supprime un événement
func (r *EventRepository) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression de l'événement: %w", err)
	}

	return nil
}

// ReserverPlaces réserve n places sur l'événement en une seule opération
// conditionnelle : le filtre vérifie la capacité et l'incrément ne
// s'applique que si elle suffit. Deux inscriptions simultanées ne peuvent
// donc jamais dépasser le plafond.
// Retourne ErrEvenementIntrouvable ou ErrCapaciteDepassee selon le cas.
func (r *EventRepository) ReserverPlaces(id primitive.ObjectID, n int) error {
	if n <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id": id,
		"$or": []bson.M{
			{"capacite": nil}, // capacité illimitée
			{"$expr": bson.M{
				"$lte": []interface{}{
					bson.M{"$add": []interface{}{"$inscrits", n}},
					"$capacite",
				},
			}},
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"inscrits": n},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("erreur lors de la réservation des places: %w", err)
	}

	if result.MatchedCount == 0 {
		// Distinguer événement absent et capacité insuffisante
		event, findErr := r.FindByID(id)
		if findErr != nil {
			return findErr
		}
		if event == nil {
			return ErrEvenementIntrouvable
		}
		return ErrCapaciteDepassee
	}

	return nil
}

// LibererPlaces rend n places à l'événement, sans jamais passer le
// compteur en négatif
func (r *EventRepository) LibererPlaces(id primitive.ObjectID, n int) error {
	if n <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Pipeline de mise à jour : clamp à zéro côté serveur
	update := bson.A{
		bson.M{"$set": bson.M{
			"inscrits": bson.M{"$max": bson.A{
				0,
				bson.M{"$add": bson.A{"$inscrits", -n}},
			}},
			"updated_at": "$$NOW",
		}},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("erreur lors de la libération des places: %w", err)
	}

	return nil
}

// IncrementMediasCount ajuste le compteur de médias d'un événement
func (r *EventRepository) IncrementMediasCount(id primitive.ObjectID, delta int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"medias_count": delta}},
	)
	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour du compteur de médias: %w", err)
	}

	return nil
}

// CountAll compte tous les événements
func (r *EventRepository) CountAll() (int64, error) {
	return r.count(bson.M{})
}

// CountPublies compte les événements publiés
func (r *EventRepository) CountPublies() (int64, error) {
	return r.count(bson.M{"publie": true})
}

func (r *EventRepository) count(filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage des événements: %w", err)
	}

	return count, nil
}

// GetTotalInscrits calcule le total des personnes inscrites sur tous
// les événements
func (r *EventRepository) GetTotalInscrits() (int, error) {
	return r.sumField("$inscrits")
}

// GetTotalMedias calcule le total des médias sur tous les événements
func (r *EventRepository) GetTotalMedias() (int, error) {
	return r.sumField("$medias_count")
}

func (r *EventRepository) sumField(field string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": field},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("erreur lors de l'agrégation: %w", err)
	}
	defer cursor.Close(ctx)

	var result []bson.M
	if err = cursor.All(ctx, &result); err != nil {
		return 0, err
	}

	if len(result) == 0 {
		return 0, nil
	}

	total, ok := result[0]["total"].(int32)
	if !ok {
		return 0, nil
	}

	return int(total), nil
}

// FindEventsToNotifyOpening trouve les événements dont l'ouverture des
// inscriptions vient d'être atteinte
func (r *EventRepository) FindEventsToNotifyOpening() ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	twoMinutesAgo := now.Add(-2 * time.Minute)

	// Chercher les événements où :
	// - date_ouverture_inscription est entre maintenant et il y a 2 minutes
	// - notification_sent_opening est false ou null
	filter := bson.M{
		"publie": true,
		"date_ouverture_inscription": bson.M{
			"$lte": now,
			"$gte": twoMinutesAgo,
		},
		"$or": []bson.M{
			{"notification_sent_opening": false},
			{"notification_sent_opening": bson.M{"$exists": false}},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des événements: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des événements: %w", err)
	}

	return events, nil
}

// MarkOpeningNotificationSent marque la notification d'ouverture comme envoyée
func (r *EventRepository) MarkOpeningNotificationSent(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"notification_sent_opening": true}},
	)
	if err != nil {
		return fmt.Errorf("erreur lors du marquage de la notification: %w", err)
	}

	return nil
}
