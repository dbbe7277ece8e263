package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"cousinade-backend/constants"
	"cousinade-backend/database"
	"cousinade-backend/middleware"
	"cousinade-backend/models"
	"cousinade-backend/utils"

	webpush "github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationHandler gère les abonnements web-push (VAPID)
type NotificationHandler struct {
	subscriptionRepo *database.SubscriptionRepository
	vapidPublicKey   string
	vapidPrivateKey  string
	vapidSubject     string
}

// NewNotificationHandler crée une nouvelle instance de NotificationHandler
func NewNotificationHandler(db *mongo.Database, vapidPublicKey, vapidPrivateKey, vapidSubject string) *NotificationHandler {
	return &NotificationHandler{
		subscriptionRepo: database.NewSubscriptionRepository(db),
		vapidPublicKey:   vapidPublicKey,
		vapidPrivateKey:  vapidPrivateKey,
		vapidSubject:     vapidSubject,
	}
}

// Subscribe abonne le compte connecté aux notifications web-push
func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if req.Subscription.Endpoint == "" {
		utils.RespondError(w, http.StatusBadRequest, "Endpoint requis")
		return
	}

	// Vérifier si l'abonnement existe déjà
	existing, err := h.subscriptionRepo.FindByEndpoint(req.Subscription.Endpoint)
	if err != nil {
		log.Printf("Erreur lors de la vérification de l'abonnement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if existing != nil {
		utils.RespondSuccess(w, "Abonnement déjà existant", nil)
		return
	}

	// L'abonnement est rattaché au compte authentifié
	subscription := &models.PushSubscription{
		UserID:   claims.Email,
		Endpoint: req.Subscription.Endpoint,
		Keys:     req.Subscription.Keys,
	}

	if err := h.subscriptionRepo.Create(subscription); err != nil {
		log.Printf("Erreur lors de la création de l'abonnement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la création de l'abonnement")
		return
	}

	log.Printf("✓ Nouvel abonnement créé pour: %s", claims.Email)
	utils.RespondSuccess(w, "Abonnement créé avec succès", subscription)
}

// Unsubscribe supprime un abonnement web-push
func (h *NotificationHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Endpoint string `json:"endpoint"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := h.subscriptionRepo.Delete(req.Endpoint); err != nil {
		log.Printf("Erreur lors de la suppression de l'abonnement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Abonnement supprimé: %s", req.Endpoint)
	utils.RespondSuccess(w, "Désabonnement réussi", nil)
}

// SendNotification envoie une notification web-push à tous les abonnés
// (admin uniquement)
func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	// Récupérer tous les abonnements
	subscriptions, err := h.subscriptionRepo.FindAll()
	if err != nil {
		log.Printf("Erreur lors de la récupération des abonnements: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if len(subscriptions) == 0 {
		utils.RespondSuccess(w, "Aucun abonné trouvé", map[string]interface{}{
			"sent":  0,
			"total": 0,
		})
		return
	}

	// Créer la notification
	title := req.Title
	if title == "" {
		title = "Nouvelle notification"
	}

	message := req.Message
	if message == "" {
		message = "Vous avez reçu une nouvelle notification"
	}

	payload := models.NotificationPayload{
		Title: title,
		Body:  message,
		Icon:  "/icon-192x192.png",
		Badge: "/badge-72x72.png",
		Data:  req.Data,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Erreur lors de la création du payload: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Envoyer les notifications
	sent := 0
	failed := 0

	for _, sub := range subscriptions {
		s := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.Keys.P256dh,
				Auth:   sub.Keys.Auth,
			},
		}

		resp, err := webpush.SendNotification(payloadBytes, s, &webpush.Options{
			Subscriber:      h.vapidSubject,
			VAPIDPublicKey:  h.vapidPublicKey,
			VAPIDPrivateKey: h.vapidPrivateKey,
			TTL:             86400, // 24 heures en secondes
			Urgency:         webpush.UrgencyHigh,
		})

		if err != nil {
			log.Printf("❌ Erreur lors de l'envoi de la notification à %s: %v", sub.UserID, err)
			failed++

			// Si l'endpoint n'est plus valide (410 Gone), supprimer l'abonnement
			if resp != nil && resp.StatusCode == http.StatusGone {
				log.Printf("🗑️  Suppression de l'abonnement invalide: %s", sub.Endpoint)
				_ = h.subscriptionRepo.Delete(sub.Endpoint)
			}
			continue
		}

		if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
			sent++
		} else {
			bodyBytes := make([]byte, 0)
			if resp.Body != nil {
				bodyBytes, _ = io.ReadAll(resp.Body)
			}
			log.Printf("⚠️  Réponse inattendue pour %s: %d - Body: %s", sub.UserID, resp.StatusCode, string(bodyBytes))
			failed++
		}

		resp.Body.Close()
	}

	log.Printf("📊 Notifications envoyées: %d/%d (échecs: %d)", sent, len(subscriptions), failed)

	utils.RespondSuccess(w, "Notifications envoyées", map[string]interface{}{
		"sent":   sent,
		"failed": failed,
		"total":  len(subscriptions),
	})
}

// GetVAPIDPublicKey retourne la clé publique VAPID
func (h *NotificationHandler) GetVAPIDPublicKey(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"publicKey": h.vapidPublicKey,
	})
}
