package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"cousinade-backend/constants"
	"cousinade-backend/database"
	"cousinade-backend/middleware"
	"cousinade-backend/models"
	"cousinade-backend/services"
	"cousinade-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ParticipantHandler gère le groupe familial d'un compte invité
type ParticipantHandler struct {
	participantRepo *database.ParticipantRepository
	userRepo        *database.UserRepository
	mailer          *services.MailerService
}

// NewParticipantHandler crée une nouvelle instance de ParticipantHandler
func NewParticipantHandler(db *mongo.Database, mailer *services.MailerService) *ParticipantHandler {
	return &ParticipantHandler{
		participantRepo: database.NewParticipantRepository(db),
		userRepo:        database.NewUserRepository(db),
		mailer:          mailer,
	}
}

// GetParticipants retourne les participants du compte connecté
func (h *ParticipantHandler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	participants, err := h.participantRepo.FindByOwner(claims.Email)
	if err != nil {
		log.Printf("Erreur lors de la récupération des participants: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"participants": participants,
		"count":        len(participants),
	})
}

// AddParticipant ajoute un membre de la famille au groupe du compte connecté
func (h *ParticipantHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	var req models.CreateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidJSONBody)
		return
	}

	if err := utils.ValidateRequired("firstname", req.Firstname); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateRequired("lastname", req.Lastname); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateEmailOptional(req.Email); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	participant := &models.Participant{
		OwnerEmail: claims.Email,
		Firstname:  strings.TrimSpace(req.Firstname),
		Lastname:   strings.TrimSpace(req.Lastname),
		IsAdult:    req.IsAdult,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := h.participantRepo.Create(participant); err != nil {
		if errors.Is(err, database.ErrEmailParticipantUtilise) {
			utils.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		log.Printf("Erreur lors de la création du participant: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Participant ajouté: %s %s (groupe de %s)", participant.Firstname, participant.Lastname, claims.Email)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"participant": participant,
	})
}

// UpdateParticipant modifie un membre du groupe du compte connecté
func (h *ParticipantHandler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	participantID, ok := ParseObjectIDVar(w, mux.Vars(r), "participant_id", constants.ErrInvalidParticipantID)
	if !ok {
		return
	}

	participant, err := h.participantRepo.FindByID(participantID)
	if err != nil {
		log.Printf("Erreur lors de la recherche du participant: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if participant == nil || participant.OwnerEmail != claims.Email {
		utils.RespondError(w, http.StatusNotFound, constants.ErrParticipantNotFound)
		return
	}

	var req models.UpdateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidJSONBody)
		return
	}

	fields := bson.M{}
	if req.Firstname != "" {
		fields["firstname"] = strings.TrimSpace(req.Firstname)
	}
	if req.Lastname != "" {
		fields["lastname"] = strings.TrimSpace(req.Lastname)
	}
	if req.IsAdult != nil {
		fields["is_adult"] = *req.IsAdult
	}
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		fields["email"] = strings.ToLower(strings.TrimSpace(req.Email))
	}

	if len(fields) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Aucun champ à modifier")
		return
	}

	if err := h.participantRepo.Update(participantID, fields); err != nil {
		if errors.Is(err, database.ErrEmailParticipantUtilise) {
			utils.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		log.Printf("Erreur lors de la mise à jour du participant: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondSuccess(w, "Participant mis à jour", nil)
}

// DeleteParticipant retire un membre du groupe. Le dernier participant
// du groupe ne peut pas être supprimé : chaque compte doit en garder un.
func (h *ParticipantHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	participantID, ok := ParseObjectIDVar(w, mux.Vars(r), "participant_id", constants.ErrInvalidParticipantID)
	if !ok {
		return
	}

	participant, err := h.participantRepo.FindByID(participantID)
	if err != nil {
		log.Printf("Erreur lors de la recherche du participant: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if participant == nil || participant.OwnerEmail != claims.Email {
		utils.RespondError(w, http.StatusNotFound, constants.ErrParticipantNotFound)
		return
	}

	count, err := h.participantRepo.CountByOwner(claims.Email)
	if err != nil {
		log.Printf("Erreur lors du comptage des participants: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if models.EstDernierParticipant(int(count)) {
		utils.RespondError(w, http.StatusConflict, database.ErrDernierParticipant.Error())
		return
	}

	if err := h.participantRepo.Delete(participantID); err != nil {
		log.Printf("Erreur lors de la suppression du participant: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Participant supprimé: %s %s (groupe de %s)", participant.Firstname, participant.Lastname, claims.Email)
	utils.RespondSuccess(w, "Participant supprimé", nil)
}

// SendInvitation envoie l'email d'invitation à un participant disposant
// d'un email, pour qu'il crée son propre compte. L'échec d'envoi est
// signalé à l'appelant mais le participant n'est jamais modifié en retour.
func (h *ParticipantHandler) SendInvitation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	participantID, ok := ParseObjectIDVar(w, mux.Vars(r), "participant_id", constants.ErrInvalidParticipantID)
	if !ok {
		return
	}

	participant, err := h.participantRepo.FindByID(participantID)
	if err != nil {
		log.Printf("Erreur lors de la recherche du participant: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if participant == nil || participant.OwnerEmail != claims.Email {
		utils.RespondError(w, http.StatusNotFound, constants.ErrParticipantNotFound)
		return
	}

	if participant.Email == "" {
		utils.RespondError(w, http.StatusBadRequest, "Ce participant n'a pas d'adresse email")
		return
	}

	// Le code d'invitation du compte propriétaire est réutilisé pour la famille
	owner, err := h.userRepo.FindByEmail(claims.Email)
	if err != nil || owner == nil {
		log.Printf("Erreur lors de la recherche du propriétaire: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if err := h.mailer.SendInvitationEmail(participant.Email, participant.Firstname, owner.CodeInvitation); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "L'email d'invitation n'a pas pu être envoyé")
		return
	}

	if err := h.participantRepo.MarquerInvitationEnvoyee(participantID); err != nil {
		log.Printf("Erreur lors du marquage de l'invitation: %v", err)
	}

	utils.RespondSuccess(w, "Invitation envoyée", nil)
}
