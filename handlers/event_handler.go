package handlers

import (
	"log"
	"net/http"

	"cousinade-backend/constants"
	"cousinade-backend/database"
	"cousinade-backend/models"
	"cousinade-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// EventHandler gère les requêtes des invités pour les événements
type EventHandler struct {
	eventRepo       *database.EventRepository
	inscriptionRepo *database.InscriptionRepository
}

// NewEventHandler crée une nouvelle instance de EventHandler
func NewEventHandler(db *mongo.Database) *EventHandler {
	return &EventHandler{
		eventRepo:       database.NewEventRepository(db),
		inscriptionRepo: database.NewInscriptionRepository(db),
	}
}

// GetEvents retourne la liste des événements publiés, triés par date
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	// Seuls les événements publiés sont visibles des invités
	events, err := h.eventRepo.FindPublies()
	if err != nil {
		log.Printf("Erreur lors de la récupération des événements: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Si aucun événement, retourner un tableau vide
	if events == nil {
		events = []models.Event{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"evenements": events,
	})
}

// GetEvent retourne les détails d'un événement publié, avec les places
// restantes calculées côté serveur
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	eventID, ok := ParseEventID(w, r)
	if !ok {
		return
	}

	// Récupérer l'événement
	event, err := h.eventRepo.FindByID(eventID)
	if err != nil {
		log.Printf("Erreur lors de la récupération de l'événement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Un événement non publié est invisible pour les invités
	if event == nil || !event.Publie {
		utils.RespondError(w, http.StatusNotFound, constants.ErrEventNotFound)
		return
	}

	response := map[string]interface{}{
		"success":   true,
		"evenement": event,
	}

	if restantes, limite := models.PlacesRestantes(event.Capacite, event.Inscrits); limite {
		response["places_restantes"] = restantes
	} else {
		response["places_restantes"] = nil // capacité illimitée
	}

	utils.RespondJSON(w, http.StatusOK, response)
}
