package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"cousinade-backend/constants"
	"cousinade-backend/database"
	"cousinade-backend/models"
	"cousinade-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminHandler gère les requêtes admin
type AdminHandler struct {
	userRepo           *database.UserRepository
	eventRepo          *database.EventRepository
	inscriptionRepo    *database.InscriptionRepository
	mediaRepo          *database.MediaRepository
	codeInvitationRepo *database.CodeInvitationRepository
	fcmService         interface {
		SendToAll(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string)
	}
	fcmTokenRepo *database.FCMTokenRepository
}

// NewAdminHandler crée une nouvelle instance de AdminHandler
func NewAdminHandler(db *mongo.Database, fcmService interface {
	SendToAll(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string)
}) *AdminHandler {
	return &AdminHandler{
		userRepo:           database.NewUserRepository(db),
		eventRepo:          database.NewEventRepository(db),
		inscriptionRepo:    database.NewInscriptionRepository(db),
		mediaRepo:          database.NewMediaRepository(db),
		codeInvitationRepo: database.NewCodeInvitationRepository(db),
		fcmService:         fcmService,
		fcmTokenRepo:       database.NewFCMTokenRepository(db),
	}
}

// ========== GESTION DES UTILISATEURS ==========

// GetUsers retourne la liste de tous les comptes invités
func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	users, err := h.userRepo.FindAll()
	if err != nil {
		log.Printf("Erreur lors de la récupération des utilisateurs: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"utilisateurs": users,
	})
}

// UpdateUser met à jour un compte invité
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	userID, ok := ParseObjectIDVar(w, mux.Vars(r), "id", "ID utilisateur invalide")
	if !ok {
		return
	}

	// Décoder la requête
	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	// Construire l'update
	update := bson.M{}
	if req.Firstname != "" {
		update["firstname"] = req.Firstname
	}
	if req.Lastname != "" {
		update["lastname"] = req.Lastname
	}
	if req.Email != "" {
		update["email"] = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		update["phone"] = req.Phone
	}
	if req.Admin != nil {
		update["admin"] = *req.Admin
	}

	if len(update) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Aucune donnée à mettre à jour")
		return
	}

	// Mettre à jour l'utilisateur
	if err := h.userRepo.UpdateFields(userID, update); err != nil {
		log.Printf("Erreur lors de la mise à jour de l'utilisateur: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Récupérer l'utilisateur mis à jour
	updatedUser, err := h.userRepo.FindByID(userID)
	if err != nil || updatedUser == nil {
		log.Printf("Erreur lors de la récupération de l'utilisateur: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Utilisateur modifié avec succès",
		"utilisateur": updatedUser,
	})
}

// DeleteUser supprime un compte invité
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	userID, ok := ParseObjectIDVar(w, mux.Vars(r), "id", "ID utilisateur invalide")
	if !ok {
		return
	}

	// Supprimer l'utilisateur
	if err := h.userRepo.Delete(userID); err != nil {
		log.Printf("Erreur lors de la suppression de l'utilisateur: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Utilisateur supprimé: ID %s", userID.Hex())
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Utilisateur supprimé",
	})
}

// ========== GESTION DES ÉVÉNEMENTS ==========

// GetEvent retourne les détails d'un événement, publié ou non (admin)
func (h *AdminHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	eventID, ok := ParseEventID(w, r)
	if !ok {
		return
	}

	// Récupérer l'événement
	event, err := h.eventRepo.FindByID(eventID)
	if err != nil || event == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrEventNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"evenement": event,
	})
}

// GetEvents retourne la liste de tous les événements, brouillons compris
func (h *AdminHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	events, err := h.eventRepo.FindAll()
	if err != nil {
		log.Printf("Erreur lors de la récupération des événements: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"evenements": events,
	})
}

// CreateEvent crée un nouvel événement
func (h *AdminHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	// Valider les données
	if req.Titre == "" || req.Date.Time.IsZero() {
		utils.RespondError(w, http.StatusBadRequest, "Titre et date sont requis")
		return
	}

	if req.Capacite != nil && *req.Capacite < 0 {
		utils.RespondError(w, http.StatusBadRequest, "La capacité ne peut pas être négative")
		return
	}

	// Créer l'événement
	event := &models.Event{
		Titre:       req.Titre,
		Date:        req.Date.Time, // Convertir FlexibleTime en time.Time
		Description: req.Description,
		Capacite:    req.Capacite,
		Categorie:   req.Categorie,
		Lieu:        req.Lieu,
		Adresse:     req.Adresse,
		Ville:       req.Ville,
		TarifInfo:   req.TarifInfo,
	}

	// Par défaut l'événement reste en brouillon, invisible des invités
	if req.Publie != nil {
		event.Publie = *req.Publie
	}

	// Ajouter la fenêtre d'inscription si fournie
	if req.DateOuvertureInscription != nil && !req.DateOuvertureInscription.Time.IsZero() {
		t := req.DateOuvertureInscription.Time
		event.DateOuvertureInscription = &t
	}
	if req.DateFermetureInscription != nil && !req.DateFermetureInscription.Time.IsZero() {
		t := req.DateFermetureInscription.Time
		event.DateFermetureInscription = &t
	}

	if err := h.eventRepo.Create(event); err != nil {
		log.Printf("Erreur lors de la création de l'événement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la création de l'événement")
		return
	}

	log.Printf("✓ Événement créé: %s (ID: %s)", event.Titre, event.ID.Hex())
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"message":   "Événement créé avec succès",
		"evenement": event,
	})
}

// UpdateEvent met à jour un événement
func (h *AdminHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	eventID, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidEventID)
	if !ok {
		return
	}

	// Décoder la requête
	var req models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	// Construire l'update
	update := bson.M{}
	if req.Titre != "" {
		update["titre"] = req.Titre
	}
	if !req.Date.Time.IsZero() {
		update["date"] = req.Date.Time // Convertir FlexibleTime en time.Time
	}
	if req.Description != "" {
		update["description"] = req.Description
	}
	if req.Capacite.Set {
		if req.Capacite.Value != nil && *req.Capacite.Value < 0 {
			utils.RespondError(w, http.StatusBadRequest, "La capacité ne peut pas être négative")
			return
		}
		// Un null explicite repasse l'événement en capacité illimitée
		update["capacite"] = req.Capacite.Value
	}
	if req.Publie != nil {
		update["publie"] = *req.Publie
	}
	if req.Categorie != "" {
		update["categorie"] = req.Categorie
	}
	if req.Lieu != "" {
		update["lieu"] = req.Lieu
	}
	if req.Adresse != "" {
		update["adresse"] = req.Adresse
	}
	if req.Ville != "" {
		update["ville"] = req.Ville
	}
	if req.TarifInfo != "" {
		update["tarif_info"] = req.TarifInfo
	}
	if req.DateOuvertureInscription != nil && !req.DateOuvertureInscription.Time.IsZero() {
		update["date_ouverture_inscription"] = req.DateOuvertureInscription.Time
	}
	if req.DateFermetureInscription != nil && !req.DateFermetureInscription.Time.IsZero() {
		update["date_fermeture_inscription"] = req.DateFermetureInscription.Time
	}

	if len(update) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Aucune donnée à mettre à jour")
		return
	}

	// Mettre à jour
	if err := h.eventRepo.Update(eventID, update); err != nil {
		log.Printf("Erreur lors de la mise à jour de l'événement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Récupérer l'événement mis à jour
	updatedEvent, err := h.eventRepo.FindByID(eventID)
	if err != nil || updatedEvent == nil {
		log.Printf("Erreur lors de la récupération de l'événement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Événement modifié: %s (ID: %s)", updatedEvent.Titre, eventID.Hex())
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Événement modifié",
		"evenement": updatedEvent,
	})
}

// DeleteEvent supprime un événement
func (h *AdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	eventID, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidEventID)
	if !ok {
		return
	}

	// Supprimer l'événement
	if err := h.eventRepo.Delete(eventID); err != nil {
		log.Printf("Erreur lors de la suppression de l'événement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Événement supprimé: ID %s", eventID.Hex())
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Événement supprimé",
	})
}

// RecalculateEventCounters recale les compteurs d'un événement sur les
// registres d'inscriptions et de médias (outil de réparation admin)
func (h *AdminHandler) RecalculateEventCounters(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	eventID, ok := ParseEventID(w, r)
	if !ok {
		return
	}

	// Récupérer l'événement
	event, err := h.eventRepo.FindByID(eventID)
	if err != nil || event == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrEventNotFound)
		return
	}

	// Recalculer le nombre total de personnes inscrites
	totalPersonnes, err := h.inscriptionRepo.GetTotalPersonnesByEvent(eventID)
	if err != nil {
		log.Printf("Erreur calcul total personnes: %v", err)
		totalPersonnes = 0
	}

	// Recalculer le nombre de médias
	totalMedias, err := h.mediaRepo.CountByEvent(eventID)
	if err != nil {
		log.Printf("Erreur calcul total médias: %v", err)
		totalMedias = 0
	}

	// Mettre à jour l'événement
	err = h.eventRepo.Update(eventID, bson.M{
		"inscrits":     totalPersonnes,
		"medias_count": int(totalMedias),
	})

	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors du recalcul")
		return
	}

	// Recharger l'événement
	event, _ = h.eventRepo.FindByID(eventID)

	log.Printf("✓ Compteurs recalculés pour %s: %d personnes, %d médias", event.Titre, totalPersonnes, totalMedias)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Compteurs recalculés",
		"evenement": event,
	})
}

// ========== STATISTIQUES ==========

// GetStats retourne les statistiques globales
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	totalUsers, err := h.userRepo.CountAll()
	if err != nil {
		log.Printf("Erreur comptage users: %v", err)
		totalUsers = 0
	}

	totalAdmins, err := h.userRepo.CountAdmins()
	if err != nil {
		totalAdmins = 0
	}

	totalEvents, err := h.eventRepo.CountAll()
	if err != nil {
		totalEvents = 0
	}

	publishedEvents, err := h.eventRepo.CountPublies()
	if err != nil {
		publishedEvents = 0
	}

	totalPersonnes, err := h.eventRepo.GetTotalInscrits()
	if err != nil {
		totalPersonnes = 0
	}

	totalMedias, err := h.eventRepo.GetTotalMedias()
	if err != nil {
		totalMedias = 0
	}

	stats := models.AdminStatsResponse{
		TotalUtilisateurs: int(totalUsers),
		TotalAdmins:       int(totalAdmins),
		TotalEvenements:   int(totalEvents),
		EvenementsPublies: int(publishedEvents),
		TotalPersonnes:    totalPersonnes,
		TotalMedias:       totalMedias,
	}

	utils.RespondJSON(w, http.StatusOK, stats)
}

// ========== NOTIFICATIONS ADMIN ==========

// SendAdminNotification envoie une notification push depuis l'espace admin
func (h *AdminHandler) SendAdminNotification(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		UserIDs []string          `json:"user_ids"`
		Title   string            `json:"title"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	// Récupérer les tokens
	var tokens []string

	if len(req.UserIDs) == 1 && req.UserIDs[0] == "all" {
		// Envoyer à tous
		allTokens, err := h.fcmTokenRepo.FindAll()
		if err != nil {
			log.Printf("Erreur récupération tokens: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
			return
		}
		for _, t := range allTokens {
			tokens = append(tokens, t.Token)
		}
	} else {
		// Envoyer à des utilisateurs spécifiques
		for _, userID := range req.UserIDs {
			userTokens, err := h.fcmTokenRepo.FindByUserID(userID)
			if err != nil {
				continue
			}
			for _, t := range userTokens {
				tokens = append(tokens, t.Token)
			}
		}
	}

	if len(tokens) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Aucun token trouvé pour ces utilisateurs")
		return
	}

	// Envoyer les notifications
	title := req.Title
	if title == "" {
		title = "Nouvelle notification"
	}
	message := req.Message
	if message == "" {
		message = "Vous avez reçu une nouvelle notification"
	}

	success, failed, _ := h.fcmService.SendToAll(tokens, title, message, req.Data)

	log.Printf("📊 Admin notification: %d succès, %d échecs", success, failed)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Notification envoyée à %d utilisateurs", success),
	})
}

// ========== CODES D'INVITATION ==========

// GetCodesInvitation retourne tous les codes d'invitation
func (h *AdminHandler) GetCodesInvitation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	codes, err := h.codeInvitationRepo.FindAll()
	if err != nil {
		log.Printf("Erreur lors de la récupération des codes d'invitation: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if codes == nil {
		codes = []models.CodeInvitation{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"codes": codes,
	})
}

// GenerateCodeInvitation génère un nouveau code d'invitation
func (h *AdminHandler) GenerateCodeInvitation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Libelle string `json:"libelle"`
	}
	// Le body est optionnel, on ignore les erreurs de décodage
	_ = json.NewDecoder(r.Body).Decode(&req)

	code, err := h.codeInvitationRepo.Generate(req.Libelle)
	if err != nil {
		log.Printf("Erreur lors de la génération du code d'invitation: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Code d'invitation généré: %s (%s)", code.Code, code.Libelle)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"code":    code,
	})
}

// SetCodeInvitationActive active ou désactive un code d'invitation
func (h *AdminHandler) SetCodeInvitationActive(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	code := mux.Vars(r)["code"]
	if code == "" {
		utils.RespondError(w, http.StatusBadRequest, "Code requis")
		return
	}

	var req struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		utils.RespondError(w, http.StatusBadRequest, "Le champ active est requis")
		return
	}

	if err := h.codeInvitationRepo.SetActive(code, *req.Active); err != nil {
		if errors.Is(err, database.ErrCodeInvitationIntrouvable) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Erreur lors de la mise à jour du code d'invitation: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	etat := "désactivé"
	if *req.Active {
		etat = "activé"
	}
	log.Printf("✓ Code d'invitation %s: %s", etat, code)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Code %s", etat),
	})
}
