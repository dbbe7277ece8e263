package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"cousinade-backend/constants"
	"cousinade-backend/database"
	"cousinade-backend/middleware"
	"cousinade-backend/models"
	"cousinade-backend/services"
	"cousinade-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
)

// InscriptionHandler gère les inscriptions aux événements
type InscriptionHandler struct {
	inscriptionRepo *database.InscriptionRepository
	eventRepo       *database.EventRepository
	userRepo        *database.UserRepository
	fcmService      interface {
		SendToAll(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string)
	}
	fcmTokenRepo *database.FCMTokenRepository
	mailer       *services.MailerService
}

// EventWithInscription représente un événement avec les détails de l'inscription de l'utilisateur
type EventWithInscription struct {
	models.Event
	UserInscription *InscriptionDetails `json:"user_inscription,omitempty"`
}

// InscriptionDetails représente les détails de l'inscription dans la réponse
type InscriptionDetails struct {
	ID              string `json:"id"`
	NombrePersonnes int    `json:"nombre_personnes"`
	CreatedAt       string `json:"created_at"`
}

// NewInscriptionHandler crée une nouvelle instance
func NewInscriptionHandler(db *mongo.Database, fcmService interface {
	SendToAll(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string)
}, mailer *services.MailerService) *InscriptionHandler {
	return &InscriptionHandler{
		inscriptionRepo: database.NewInscriptionRepository(db),
		eventRepo:       database.NewEventRepository(db),
		userRepo:        database.NewUserRepository(db),
		fcmService:      fcmService,
		fcmTokenRepo:    database.NewFCMTokenRepository(db),
		mailer:          mailer,
	}
}

// validateAccompagnants vérifie les noms et tronque la liste au nombre
// de personnes déclaré moins un : le compteur fait foi, les accompagnants
// ne sont que des métadonnées d'affichage
func validateAccompagnants(nombrePersonnes int, accompagnants []models.Accompagnant) ([]models.Accompagnant, error) {
	for _, acc := range accompagnants {
		if acc.Firstname == "" || acc.Lastname == "" {
			return nil, fmt.Errorf("tous les accompagnants doivent avoir un prénom et un nom")
		}
	}
	if len(accompagnants) > nombrePersonnes-1 {
		accompagnants = accompagnants[:nombrePersonnes-1]
	}
	if accompagnants == nil {
		accompagnants = []models.Accompagnant{}
	}
	return accompagnants, nil
}

// CreateInscription inscrit le compte connecté à un événement.
// Les places sont réservées par une mise à jour conditionnelle unique :
// en cas de concurrence, la capacité ne peut jamais être dépassée.
func (h *InscriptionHandler) CreateInscription(w http.ResponseWriter, r *http.Request) {
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
	userEmail := claims.Email

	// Décoder la requête
	var req models.CreateInscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := utils.ValidateNombrePersonnes(req.NombrePersonnes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	accompagnants, err := validateAccompagnants(req.NombrePersonnes, req.Accompagnants)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Récupérer l'événement
	event, err := h.eventRepo.FindByID(eventID)
	if err != nil {
		log.Printf("Erreur recherche événement: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if event == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrEventNotFound)
		return
	}

	// Vérifier que les inscriptions sont ouvertes
	if !event.InscriptionsOuvertes(time.Now()) {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Les inscriptions sont fermées pour cet événement",
		})
		return
	}

	// Déjà inscrit ? Répondre 409 avant de regarder la capacité ;
	// l'index unique reste le garde-fou en cas de requêtes concurrentes
	existante, err := h.inscriptionRepo.FindByEventAndUser(eventID, userEmail)
	if err != nil {
		log.Printf("Erreur recherche inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if existante != nil {
		utils.RespondError(w, http.StatusConflict, "Vous êtes déjà inscrit à cet événement")
		return
	}

	// Réserver les places atomiquement AVANT de créer l'inscription
	if err := h.eventRepo.ReserverPlaces(eventID, req.NombrePersonnes); err != nil {
		switch {
		case errors.Is(err, database.ErrCapaciteDepassee):
			restantes, _ := models.PlacesRestantes(event.Capacite, event.Inscrits)
			utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":            "Plus assez de places disponibles",
				"places_restantes": restantes,
				"demande":          req.NombrePersonnes,
			})
		case errors.Is(err, database.ErrEvenementIntrouvable):
			utils.RespondError(w, http.StatusNotFound, constants.ErrEventNotFound)
		default:
			log.Printf("Erreur réservation places: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		}
		return
	}

	// Créer l'inscription ; l'index unique protège contre le double clic
	inscription := &models.Inscription{
		EventID:         eventID,
		UserEmail:       userEmail,
		NombrePersonnes: req.NombrePersonnes,
		Accompagnants:   accompagnants,
	}

	if err := h.inscriptionRepo.Create(inscription); err != nil {
		// Rendre les places réservées : l'inscription n'a pas abouti
		if libErr := h.eventRepo.LibererPlaces(eventID, req.NombrePersonnes); libErr != nil {
			log.Printf("Erreur libération places après échec: %v", libErr)
		}

		if errors.Is(err, database.ErrDejaInscrit) {
			utils.RespondError(w, http.StatusConflict, "Vous êtes déjà inscrit à cet événement")
			return
		}
		log.Printf("Erreur création inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la création de l'inscription")
		return
	}

	// Recharger l'événement pour avoir les données à jour
	event, _ = h.eventRepo.FindByID(eventID)

	log.Printf("✓ Nouvelle inscription: %s à l'événement %s (%d personnes)", userEmail, event.Titre, req.NombrePersonnes)

	// Notifier les admins et confirmer par email (best-effort)
	go h.notifyAdminsNewInscription(userEmail, event, req.NombrePersonnes)
	if h.mailer != nil {
		go func() {
			if err := h.mailer.SendInscriptionConfirmation(userEmail, event.Titre, req.NombrePersonnes); err != nil {
				log.Printf("⚠️  Email de confirmation non envoyé à %s: %v", userEmail, err)
			}
		}()
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Inscription réussie",
		"inscription": inscription,
		"evenement": map[string]interface{}{
			"id":       event.ID.Hex(),
			"titre":    event.Titre,
			"inscrits": event.Inscrits,
		},
	})
}

// GetInscription récupère l'inscription du compte connecté pour un événement
func (h *InscriptionHandler) GetInscription(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
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

	// Chercher l'inscription
	inscription, err := h.inscriptionRepo.FindByEventAndUser(eventID, claims.Email)
	if err != nil {
		log.Printf("Erreur recherche inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if inscription == nil {
		utils.RespondJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":   constants.ErrInscriptionNotFound,
			"inscrit": false,
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"inscription": inscription,
	})
}

// UpdateInscription modifie le nombre de personnes d'une inscription.
// Seule la différence avec l'ancien nombre est re-réservée : le total
// courant contient déjà la contribution de l'appelant.
func (h *InscriptionHandler) UpdateInscription(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
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
	userEmail := claims.Email

	// Décoder la requête
	var req models.UpdateInscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := utils.ValidateNombrePersonnes(req.NombrePersonnes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	accompagnants, err := validateAccompagnants(req.NombrePersonnes, req.Accompagnants)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Récupérer l'inscription existante
	inscription, err := h.inscriptionRepo.FindByEventAndUser(eventID, userEmail)
	if err != nil {
		log.Printf("Erreur recherche inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if inscription == nil {
		utils.RespondError(w, http.StatusNotFound, "Aucune inscription trouvée à modifier")
		return
	}

	// Récupérer l'événement
	event, err := h.eventRepo.FindByID(eventID)
	if err != nil || event == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrEventNotFound)
		return
	}

	// Vérifier que les inscriptions sont toujours ouvertes
	if !event.InscriptionsOuvertes(time.Now()) {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Les modifications sont fermées pour cet événement",
		})
		return
	}

	// Réserver uniquement la différence de personnes, AVANT d'écrire la
	// ligne : en cas d'augmentation le compteur doit refuser d'abord
	difference := models.DeltaPersonnes(inscription.NombrePersonnes, req.NombrePersonnes)

	if difference > 0 {
		if err := h.eventRepo.ReserverPlaces(eventID, difference); err != nil {
			if errors.Is(err, database.ErrCapaciteDepassee) {
				restantes, _ := models.PlacesRestantes(event.Capacite, event.Inscrits)
				utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
					"error":                 "Plus assez de places pour cette modification",
					"places_restantes":      restantes,
					"augmentation_demandee": difference,
				})
				return
			}
			log.Printf("Erreur réservation places: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
			return
		}
	}

	// Mettre à jour l'inscription
	inscription.NombrePersonnes = req.NombrePersonnes
	inscription.Accompagnants = accompagnants

	if err := h.inscriptionRepo.Update(inscription); err != nil {
		// Rendre la différence réservée : la ligne garde son ancien compte
		if difference > 0 {
			if libErr := h.eventRepo.LibererPlaces(eventID, difference); libErr != nil {
				log.Printf("Erreur libération places après échec: %v", libErr)
			}
		}
		log.Printf("Erreur mise à jour inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la modification")
		return
	}

	// En cas de diminution, ne libérer qu'une fois la ligne écrite :
	// tant que la ligne porte l'ancien compte, le compteur doit le garder
	if difference < 0 {
		if err := h.eventRepo.LibererPlaces(eventID, -difference); err != nil {
			log.Printf("Erreur libération places: %v", err)
		}
	}

	// Recharger l'événement
	event, _ = h.eventRepo.FindByID(eventID)

	log.Printf("✓ Inscription modifiée: %s (diff: %+d personnes)", userEmail, difference)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Inscription modifiée",
		"inscription": inscription,
		"evenement": map[string]interface{}{
			"id":       event.ID.Hex(),
			"titre":    event.Titre,
			"inscrits": event.Inscrits,
		},
	})
}

// DeleteInscription désinscrit le compte connecté. L'opération est
// idempotente : sans inscription existante, elle répond succès sans
// toucher au compteur ; les places ne sont libérées que si une ligne
// a réellement été supprimée.
func (h *InscriptionHandler) DeleteInscription(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
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
	userEmail := claims.Email

	// Récupérer l'inscription pour connaître les places à libérer
	inscription, err := h.inscriptionRepo.FindByEventAndUser(eventID, userEmail)
	if err != nil {
		log.Printf("Erreur recherche inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if inscription == nil {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message":                  "Aucune inscription à supprimer",
			"nombre_personnes_liberes": 0,
		})
		return
	}

	nombrePersonnes := inscription.NombrePersonnes

	// Supprimer l'inscription
	deleted, err := h.inscriptionRepo.Delete(eventID, userEmail)
	if err != nil {
		log.Printf("Erreur suppression inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la désinscription")
		return
	}

	// Libérer les places seulement si la ligne a été supprimée ici
	// (une requête concurrente a pu la supprimer entre temps)
	liberees := models.PlacesALiberer(deleted, nombrePersonnes)
	if liberees > 0 {
		if err := h.eventRepo.LibererPlaces(eventID, liberees); err != nil {
			log.Printf("Erreur libération places: %v", err)
			liberees = 0
		}
	}

	event, _ := h.eventRepo.FindByID(eventID)
	response := map[string]interface{}{
		"message":                  "Désinscription réussie",
		"nombre_personnes_liberes": liberees,
	}
	if event != nil {
		response["evenement"] = map[string]interface{}{
			"id":       event.ID.Hex(),
			"titre":    event.Titre,
			"inscrits": event.Inscrits,
		}
	}

	log.Printf("✓ Désinscription: %s (%d personnes libérées)", userEmail, liberees)
	utils.RespondJSON(w, http.StatusOK, response)
}

// GetInscrits retourne la liste des inscrits (admin uniquement).
// Le total de personnes est recalculé depuis les inscriptions
// elles-mêmes, indépendamment du compteur de l'événement.
func (h *InscriptionHandler) GetInscrits(w http.ResponseWriter, r *http.Request) {
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

	// Récupérer toutes les inscriptions
	inscriptions, err := h.inscriptionRepo.FindByEvent(eventID)
	if err != nil {
		log.Printf("Erreur récupération inscriptions: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Total recalculé côté serveur depuis le registre
	totalPersonnes, err := h.inscriptionRepo.GetTotalPersonnesByEvent(eventID)
	if err != nil {
		log.Printf("Erreur agrégation personnes: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Enrichir avec les infos utilisateur
	var inscriptionsWithInfo []models.InscriptionWithUserInfo
	totalAdultes := 0
	totalMineurs := 0

	for _, insc := range inscriptions {
		// Récupérer l'utilisateur
		user, err := h.userRepo.FindByEmail(insc.UserEmail)
		userName := ""
		userPhone := ""
		if err == nil && user != nil {
			userName = fmt.Sprintf("%s %s", user.Firstname, user.Lastname)
			userPhone = user.Phone
		}

		// Compter adultes et mineurs
		adultes := 1 // L'inscrit principal est toujours adulte
		mineurs := 0
		for _, acc := range insc.Accompagnants {
			if acc.IsAdult {
				adultes++
			} else {
				mineurs++
			}
		}

		totalAdultes += adultes
		totalMineurs += mineurs

		inscriptionsWithInfo = append(inscriptionsWithInfo, models.InscriptionWithUserInfo{
			ID:              insc.ID.Hex(),
			UserEmail:       insc.UserEmail,
			UserName:        userName,
			UserPhone:       userPhone,
			NombrePersonnes: insc.NombrePersonnes,
			Accompagnants:   insc.Accompagnants,
			CreatedAt:       insc.CreatedAt,
			UpdatedAt:       insc.UpdatedAt,
		})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"event_id":        event.ID.Hex(),
		"titre":           event.Titre,
		"total_inscrits":  len(inscriptions),
		"total_personnes": totalPersonnes,
		"total_adultes":   totalAdultes,
		"total_mineurs":   totalMineurs,
		"inscriptions":    inscriptionsWithInfo,
	})
}

// DeleteInscriptionAdmin permet à un admin de supprimer n'importe quelle inscription
func (h *InscriptionHandler) DeleteInscriptionAdmin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	eventID, ok := ParseEventID(w, r)
	if !ok {
		return
	}

	inscriptionID, ok := ParseObjectIDVar(w, mux.Vars(r), "inscription_id", "ID inscription invalide")
	if !ok {
		return
	}

	// Récupérer l'inscription
	inscription, err := h.inscriptionRepo.FindByID(inscriptionID)
	if err != nil {
		log.Printf("Erreur recherche inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if inscription == nil {
		utils.RespondError(w, http.StatusNotFound, "Inscription non trouvée")
		return
	}

	// Vérifier que l'inscription appartient bien à cet événement
	if inscription.EventID != eventID {
		utils.RespondError(w, http.StatusBadRequest, "Cette inscription n'appartient pas à cet événement")
		return
	}

	nombrePersonnes := inscription.NombrePersonnes

	// Supprimer l'inscription
	deleted, err := h.inscriptionRepo.DeleteByID(inscriptionID)
	if err != nil {
		log.Printf("Erreur suppression inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la suppression")
		return
	}

	liberees := models.PlacesALiberer(deleted, nombrePersonnes)
	if liberees > 0 {
		if err := h.eventRepo.LibererPlaces(eventID, liberees); err != nil {
			log.Printf("Erreur libération places: %v", err)
			liberees = 0
		}
	}

	event, _ := h.eventRepo.FindByID(eventID)

	log.Printf("✓ Inscription supprimée par admin: %s (%d personnes)", inscription.UserEmail, nombrePersonnes)

	response := map[string]interface{}{
		"message":                  "Inscription supprimée avec succès",
		"inscription_id":           inscriptionID.Hex(),
		"nombre_personnes_liberes": liberees,
	}
	if event != nil {
		response["evenement"] = map[string]interface{}{
			"id":       event.ID.Hex(),
			"titre":    event.Titre,
			"inscrits": event.Inscrits,
		}
	}

	utils.RespondJSON(w, http.StatusOK, response)
}

// DeleteAccompagnant supprime un accompagnant spécifique (admin uniquement)
func (h *InscriptionHandler) DeleteAccompagnant(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	eventID, ok := ParseEventID(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	inscriptionID, ok := ParseObjectIDVar(w, vars, "inscription_id", "ID inscription invalide")
	if !ok {
		return
	}

	index := 0
	if _, err := fmt.Sscanf(vars["index"], "%d", &index); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Index invalide")
		return
	}

	// Récupérer l'inscription
	inscription, err := h.inscriptionRepo.FindByID(inscriptionID)
	if err != nil {
		log.Printf("Erreur recherche inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if inscription == nil {
		utils.RespondError(w, http.StatusNotFound, "Inscription non trouvée")
		return
	}

	// Vérifier que l'inscription appartient à cet événement
	if inscription.EventID != eventID {
		utils.RespondError(w, http.StatusBadRequest, "Cette inscription n'appartient pas à cet événement")
		return
	}

	// Vérifier que l'index est valide
	if index < 0 || index >= len(inscription.Accompagnants) {
		utils.RespondError(w, http.StatusBadRequest, "Index d'accompagnant invalide")
		return
	}

	// Récupérer le nom de l'accompagnant avant suppression
	accompagnantName := fmt.Sprintf("%s %s", inscription.Accompagnants[index].Firstname, inscription.Accompagnants[index].Lastname)

	// Retirer l'accompagnant du tableau et décrémenter le compteur
	inscription.Accompagnants = append(
		inscription.Accompagnants[:index],
		inscription.Accompagnants[index+1:]...,
	)
	inscription.NombrePersonnes--

	if err := h.inscriptionRepo.Update(inscription); err != nil {
		log.Printf("Erreur mise à jour inscription: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la suppression")
		return
	}

	if err := h.eventRepo.LibererPlaces(eventID, 1); err != nil {
		log.Printf("Erreur libération place: %v", err)
	}

	event, _ := h.eventRepo.FindByID(eventID)

	log.Printf("✓ Accompagnant supprimé par admin: %s de l'inscription %s", accompagnantName, inscription.UserEmail)

	response := map[string]interface{}{
		"message":     "Accompagnant supprimé avec succès",
		"inscription": inscription,
	}
	if event != nil {
		response["evenement"] = map[string]interface{}{
			"id":       event.ID.Hex(),
			"inscrits": event.Inscrits,
		}
	}

	utils.RespondJSON(w, http.StatusOK, response)
}

// notifyAdminsNewInscription envoie une notification aux admins lors d'une nouvelle inscription
func (h *InscriptionHandler) notifyAdminsNewInscription(userEmail string, event *models.Event, nombrePersonnes int) {
	if h.fcmService == nil {
		return
	}

	// Récupérer l'utilisateur qui s'inscrit
	user, err := h.userRepo.FindByEmail(userEmail)
	if err != nil || user == nil {
		log.Printf("⚠️  Impossible de récupérer l'utilisateur %s", userEmail)
		return
	}

	// Récupérer tous les admins
	admins, err := h.userRepo.FindAdmins()
	if err != nil {
		log.Printf("⚠️  Erreur récupération admins: %v", err)
		return
	}

	if len(admins) == 0 {
		log.Println("⚠️  Aucun admin à notifier")
		return
	}

	// Récupérer les tokens FCM des admins
	var adminTokens []string
	for _, admin := range admins {
		tokens, err := h.fcmTokenRepo.FindByUserID(admin.Email)
		if err != nil {
			continue
		}
		for _, t := range tokens {
			adminTokens = append(adminTokens, t.Token)
		}
	}

	if len(adminTokens) == 0 {
		log.Println("⚠️  Aucun token FCM pour les admins")
		return
	}

	capacite := "illimitée"
	if event.Capacite != nil {
		capacite = fmt.Sprintf("%d", *event.Capacite)
	}

	// Préparer la notification
	title := "🎉 Nouvelle inscription à un événement !"
	message := fmt.Sprintf("%s %s s'est inscrit à %s (%d/%s personnes)",
		user.Firstname,
		user.Lastname,
		event.Titre,
		event.Inscrits,
		capacite,
	)

	data := map[string]string{
		"type":             "new_inscription",
		"event_id":         event.ID.Hex(),
		"event_titre":      event.Titre,
		"user_email":       userEmail,
		"user_firstname":   user.Firstname,
		"user_lastname":    user.Lastname,
		"nombre_personnes": fmt.Sprintf("%d", nombrePersonnes),
		"inscrits":         fmt.Sprintf("%d", event.Inscrits),
		"capacite":         capacite,
	}

	// Envoyer aux admins
	success, failed, _ := h.fcmService.SendToAll(adminTokens, title, message, data)
	log.Printf("📧 Notification inscription envoyée aux admins: %d succès, %d échecs", success, failed)
}

// GetMesEvenements retourne la liste des événements auxquels le compte
// connecté est inscrit
func (h *InscriptionHandler) GetMesEvenements(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	// Récupérer toutes les inscriptions de cet utilisateur
	inscriptions, err := h.inscriptionRepo.FindByUser(claims.Email)
	if err != nil {
		log.Printf("Erreur lors de la récupération des inscriptions: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Construire la liste des événements avec les détails d'inscription
	var evenements []EventWithInscription

	for _, inscription := range inscriptions {
		event, err := h.eventRepo.FindByID(inscription.EventID)
		if err != nil {
			log.Printf("Erreur récupération événement %s: %v", inscription.EventID.Hex(), err)
			continue
		}

		if event == nil {
			continue // Événement supprimé
		}

		evenements = append(evenements, EventWithInscription{
			Event: *event,
			UserInscription: &InscriptionDetails{
				ID:              inscription.ID.Hex(),
				NombrePersonnes: inscription.NombrePersonnes,
				CreatedAt:       inscription.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			},
		})
	}

	// Si aucune inscription, retourner un tableau vide
	if evenements == nil {
		evenements = []EventWithInscription{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"evenements": evenements,
	})
}
