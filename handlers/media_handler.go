package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"cousinade-backend/constants"
	"cousinade-backend/database"
	"cousinade-backend/middleware"
	"cousinade-backend/models"
	"cousinade-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MediaHandler gère la galerie de médias des événements
type MediaHandler struct {
	mediaRepo       *database.MediaRepository
	eventRepo       *database.EventRepository
	userRepo        *database.UserRepository
	inscriptionRepo *database.InscriptionRepository
	fcmTokenRepo    *database.FCMTokenRepository
	fcmService      interface {
		SendToAll(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string)
	}
	cloudName     string
	previewPreset string
}

// NewMediaHandler crée une nouvelle instance
func NewMediaHandler(
	db *mongo.Database,
	fcmService interface {
		SendToAll(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string)
	},
	cloudName, previewPreset string,
) *MediaHandler {
	return &MediaHandler{
		mediaRepo:       database.NewMediaRepository(db),
		eventRepo:       database.NewEventRepository(db),
		userRepo:        database.NewUserRepository(db),
		inscriptionRepo: database.NewInscriptionRepository(db),
		fcmTokenRepo:    database.NewFCMTokenRepository(db),
		fcmService:      fcmService,
		cloudName:       cloudName,
		previewPreset:   previewPreset,
	}
}

// GetMedias retourne tous les médias d'un événement, du plus récent
// au plus ancien
func (h *MediaHandler) GetMedias(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	eventID, ok := ParseEventID(w, r)
	if !ok {
		return
	}

	// Vérifier que l'événement existe
	event, err := h.eventRepo.FindByID(eventID)
	if err != nil || event == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrEventNotFound)
		return
	}

	// Récupérer tous les médias
	medias, err := h.mediaRepo.FindByEvent(eventID)
	if err != nil {
		log.Printf("Erreur récupération médias: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Si aucun média, retourner un tableau vide
	if medias == nil {
		medias = []models.Media{}
	}

	// Compter les images et vidéos
	totalImages := 0
	totalVideos := 0
	for _, media := range medias {
		if media.Type == "image" {
			totalImages++
		} else if media.Type == "video" {
			totalVideos++
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"medias":       medias,
		"total_images": totalImages,
		"total_videos": totalVideos,
	})
}

// CreateMedia enregistre la métadonnée d'un média après upload direct
// vers le stockage objet. L'auteur est le compte authentifié, jamais
// un champ de la requête.
func (h *MediaHandler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	eventID, ok := ParseEventID(w, r)
	if !ok {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	// Vérifier que l'événement existe
	event, err := h.eventRepo.FindByID(eventID)
	if err != nil || event == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrEventNotFound)
		return
	}

	// Décoder la requête
	var req models.CreateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	// Validations
	if req.Type != "image" && req.Type != "video" {
		utils.RespondError(w, http.StatusBadRequest, "Type de média invalide. Utilisez 'image' ou 'video'.")
		return
	}

	if req.URL == "" {
		utils.RespondError(w, http.StatusBadRequest, "URL du média requise")
		return
	}

	// Seules les URLs de nos stockages sont acceptées
	validURL := strings.HasPrefix(req.URL, "https://firebasestorage.googleapis.com") ||
		strings.HasPrefix(req.URL, "https://res.cloudinary.com") ||
		strings.Contains(req.URL, "cloudinary.com")

	if !validURL {
		utils.RespondError(w, http.StatusBadRequest, "URL de média invalide")
		return
	}

	if req.Filename == "" {
		utils.RespondError(w, http.StatusBadRequest, "Nom de fichier requis")
		return
	}

	// Récupérer l'utilisateur pour obtenir son nom
	user, err := h.userRepo.FindByEmail(claims.Email)
	userName := ""
	if err == nil && user != nil {
		userName = fmt.Sprintf("%s %s", user.Firstname, user.Lastname)
	}

	// Créer le média
	media := &models.Media{
		EventID:     eventID,
		UserEmail:   claims.Email,
		UserName:    userName,
		Type:        req.Type,
		URL:         req.URL,
		StoragePath: req.StoragePath,
		Filename:    req.Filename,
		Size:        req.Size,
	}

	if err := h.mediaRepo.Create(media); err != nil {
		log.Printf("Erreur création média: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de l'ajout du média")
		return
	}

	// Mettre à jour le compteur de médias de l'événement
	if err := h.eventRepo.IncrementMediasCount(eventID, 1); err != nil {
		log.Printf("⚠️  Erreur mise à jour compteur médias: %v", err)
	}

	log.Printf("Média ajouté: %s (%s) par %s", req.Filename, req.Type, claims.Email)

	// Notifier les inscrits de l'événement
	go h.sendGalleryNotification(eventID, claims.Email, userName, req.URL)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Média ajouté avec succès",
		"media":   media,
	})
}

// DeleteMedia supprime un média. Autorisé pour son auteur et pour
// les admins (modération).
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	vars := mux.Vars(r)
	eventID, ok := ParseObjectIDVar(w, vars, "event_id", constants.ErrInvalidEventID)
	if !ok {
		return
	}

	mediaID, ok := ParseObjectIDVar(w, vars, "media_id", "ID média invalide")
	if !ok {
		return
	}

	// Récupérer le média
	media, err := h.mediaRepo.FindByID(mediaID)
	if err != nil {
		log.Printf("Erreur recherche média: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if media == nil {
		utils.RespondError(w, http.StatusNotFound, "Média non trouvé")
		return
	}

	// Vérifier que le média appartient bien à cet événement
	if media.EventID != eventID {
		utils.RespondError(w, http.StatusBadRequest, "Ce média n'appartient pas à cet événement")
		return
	}

	// Auteur ou admin uniquement
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	if media.UserEmail != claims.Email {
		user, err := h.userRepo.FindByEmail(claims.Email)
		if err != nil || user == nil || user.Admin != 1 {
			utils.RespondError(w, http.StatusForbidden, "Vous ne pouvez supprimer que vos propres médias")
			return
		}
	}

	// Supprimer le média
	if err := h.mediaRepo.Delete(mediaID); err != nil {
		log.Printf("Erreur suppression média: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la suppression")
		return
	}

	// Décrémenter le compteur de médias
	if err := h.eventRepo.IncrementMediasCount(eventID, -1); err != nil {
		log.Printf("⚠️  Erreur mise à jour compteur médias: %v", err)
	}

	log.Printf("Média supprimé: %s", media.Filename)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Média supprimé avec succès",
		"media_id": mediaID.Hex(),
	})
}

// sendGalleryNotification notifie les inscrits de l'événement qu'un
// nouveau média a été partagé
func (h *MediaHandler) sendGalleryNotification(eventID primitive.ObjectID, userEmail, userName, mediaURL string) {
	if h.fcmService == nil {
		return
	}

	// Récupérer l'événement
	event, err := h.eventRepo.FindByID(eventID)
	if err != nil || event == nil {
		log.Printf("❌ Erreur récupération événement pour notification: %v", err)
		return
	}

	// Récupérer les tokens des inscrits (hors auteur du média)
	tokens, err := h.getEventTokens(eventID, userEmail)
	if err != nil {
		log.Printf("❌ Erreur récupération inscrits: %v", err)
		return
	}

	if len(tokens) == 0 {
		log.Println("Aucun inscrit à notifier pour l'événement")
		return
	}

	// Construire le message de notification
	title := "Nouveau souvenir partagé 📸"
	body := fmt.Sprintf("%s a ajouté une photo dans la galerie %s", userName, event.Titre)

	notificationData := map[string]string{
		"type":        "gallery_update",
		"event_id":    eventID.Hex(),
		"user_name":   userName,
		"event_title": event.Titre,
		"preview_url": h.generatePreviewURL(mediaURL),
		"action_url":  fmt.Sprintf("/galerie/%s", eventID.Hex()),
	}

	// Envoyer les notifications
	successCount, failedCount, failedTokens := h.fcmService.SendToAll(tokens, title, body, notificationData)

	// Nettoyer les tokens invalides
	if len(failedTokens) > 0 {
		go h.cleanupInvalidTokens(failedTokens)
	}

	log.Printf("Notification galerie envoyée: %d succès, %d échecs", successCount, failedCount)
}

// getEventTokens récupère les tokens FCM des inscrits à un événement,
// en excluant l'auteur du média
func (h *MediaHandler) getEventTokens(eventID primitive.ObjectID, excludeUserEmail string) ([]string, error) {
	inscriptions, err := h.inscriptionRepo.FindByEvent(eventID)
	if err != nil {
		return nil, err
	}

	var tokens []string
	for _, inscription := range inscriptions {
		if inscription.UserEmail == excludeUserEmail {
			continue
		}

		userTokens, err := h.fcmTokenRepo.FindByUserID(inscription.UserEmail)
		if err != nil {
			log.Printf("Erreur récupération tokens FCM: %v", err)
			continue
		}

		for _, token := range userTokens {
			if token.Token != "" {
				tokens = append(tokens, token.Token)
			}
		}
	}

	return tokens, nil
}

// generatePreviewURL génère une URL de preview floutée pour la
// notification (transformation Cloudinary ajoutée à la volée)
func (h *MediaHandler) generatePreviewURL(originalURL string) string {
	if originalURL == "" {
		return ""
	}

	if !strings.Contains(originalURL, "res.cloudinary.com") {
		return originalURL
	}

	parts := strings.Split(originalURL, "/upload/")
	if len(parts) < 2 {
		return originalURL
	}

	transformation := "w_400,h_400,c_fill,q_auto,f_auto,blur_100"
	return parts[0] + "/upload/" + transformation + "/" + parts[1]
}

// cleanupInvalidTokens supprime les tokens FCM refusés par Firebase
func (h *MediaHandler) cleanupInvalidTokens(failedTokens []string) {
	for _, token := range failedTokens {
		if err := h.fcmTokenRepo.Delete(token); err != nil {
			log.Printf("Erreur suppression token invalide: %v", err)
			continue
		}
		log.Println("🧹 Token FCM invalide supprimé")
	}
}
