package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"cousinade-backend/database"
	"cousinade-backend/middleware"
	"cousinade-backend/models"
	"cousinade-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// OnboardingHandler gère le parcours d'accueil des invités
type OnboardingHandler struct {
	userRepo        *database.UserRepository
	participantRepo *database.ParticipantRepository
}

// NewOnboardingHandler crée une nouvelle instance de OnboardingHandler
func NewOnboardingHandler(db *mongo.Database) *OnboardingHandler {
	return &OnboardingHandler{
		userRepo:        database.NewUserRepository(db),
		participantRepo: database.NewParticipantRepository(db),
	}
}

// Etat retourne l'état courant du parcours d'accueil de l'invité :
// étape, informations déjà saisies et participants du groupe
func (h *OnboardingHandler) Etat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	participants, err := h.participantRepo.FindByOwner(user.Email)
	if err != nil {
		log.Printf("Erreur lors de la récupération des participants: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	etape := user.EtapeOnboarding
	if !etape.EstValide() {
		etape = models.EtapeSejour
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"etape_courante": etape,
		"profil_complet": user.ProfilComplet,
		"firstname":      user.Firstname,
		"lastname":       user.Lastname,
		"sejour":         user.Sejour,
		"participants":   participants,
	})
}

// SaveSejour enregistre les informations de séjour et fait avancer le
// parcours vers l'étape des participants
func (h *OnboardingHandler) SaveSejour(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req models.SaveSejourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Données invalides")
		return
	}

	sejour := req.Sejour()
	if err := models.ValiderSejour(sejour); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Le séjour peut être re-saisi après coup : l'étape n'avance que
	// depuis le début du parcours
	etape := user.EtapeOnboarding
	if etape == models.EtapeSejour || !etape.EstValide() {
		etape = models.EtapeParticipants
	}

	if err := h.userRepo.SaveSejour(user.Email, sejour, etape); err != nil {
		log.Printf("Erreur lors de la sauvegarde du séjour: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	log.Printf("✓ Séjour enregistré pour %s (transport: %s)", user.Email, sejour.Transport)
	utils.RespondSuccess(w, "Informations de séjour enregistrées", map[string]interface{}{
		"etape_courante": etape,
		"sejour":         sejour,
	})
}

// saveGroupeRequest porte l'identité de l'invité saisie à l'étape
// des participants
type saveGroupeRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// SaveGroupe valide le groupe familial (identité de l'invité + au moins
// un participant) et fait avancer le parcours vers la confirmation.
// Les participants eux-mêmes sont gérés par les routes /api/participants.
func (h *OnboardingHandler) SaveGroupe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req saveGroupeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Données invalides")
		return
	}

	firstname := strings.TrimSpace(req.Firstname)
	lastname := strings.TrimSpace(req.Lastname)
	if firstname == "" {
		firstname = user.Firstname
	}
	if lastname == "" {
		lastname = user.Lastname
	}

	participants, err := h.participantRepo.FindByOwner(user.Email)
	if err != nil {
		log.Printf("Erreur lors de la récupération des participants: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	if err := models.ValiderGroupeFamilial(firstname, lastname, participants); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Impossible de sauter l'étape du séjour
	if user.EtapeOnboarding == models.EtapeSejour {
		utils.RespondError(w, http.StatusBadRequest, "Renseignez d'abord vos informations de séjour")
		return
	}

	etape := user.EtapeOnboarding
	if etape == models.EtapeParticipants {
		etape = models.EtapeConfirmation
	}

	err = h.userRepo.UpdateByEmail(user.Email, map[string]interface{}{
		"firstname":        firstname,
		"lastname":         lastname,
		"etape_onboarding": etape,
	})
	if err != nil {
		log.Printf("Erreur lors de la sauvegarde du groupe: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	log.Printf("✓ Groupe familial validé pour %s (%d participant(s))", user.Email, len(participants))
	utils.RespondSuccess(w, "Groupe familial enregistré", map[string]interface{}{
		"etape_courante": etape,
		"participants":   participants,
	})
}

// Confirmer revalide l'ensemble du profil et termine le parcours d'accueil
func (h *OnboardingHandler) Confirmer(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if user.ProfilComplet {
		utils.RespondSuccess(w, "Profil déjà confirmé", map[string]interface{}{
			"etape_courante": models.EtapeTerminee,
		})
		return
	}

	if err := models.TransitionEtape(user.EtapeOnboarding, models.EtapeTerminee); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	participants, err := h.participantRepo.FindByOwner(user.Email)
	if err != nil {
		log.Printf("Erreur lors de la récupération des participants: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	// Revalidation complète avant de marquer le profil comme terminé
	if err := models.ValiderConfirmation(user, participants); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userRepo.MarquerProfilComplet(user.Email); err != nil {
		log.Printf("Erreur lors de la confirmation du profil: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	log.Printf("🎉 Parcours d'accueil terminé pour %s", user.Email)
	utils.RespondSuccess(w, "Profil confirmé, bienvenue à la cousinade !", map[string]interface{}{
		"etape_courante": models.EtapeTerminee,
	})
}

// currentUser récupère le compte invité authentifié depuis le contexte
func (h *OnboardingHandler) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, "Non authentifié")
		return nil, false
	}

	user, err := h.userRepo.FindByEmail(claims.Email)
	if err != nil {
		log.Printf("Erreur lors de la recherche de l'utilisateur: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return nil, false
	}
	if user == nil {
		utils.RespondError(w, http.StatusUnauthorized, "Utilisateur non trouvé")
		return nil, false
	}

	return user, true
}
