package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"cousinade-backend/database"
	"cousinade-backend/models"
	"cousinade-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// AuthHandler gère les requêtes d'authentification
type AuthHandler struct {
	userRepo           *database.UserRepository
	participantRepo    *database.ParticipantRepository
	codeInvitationRepo *database.CodeInvitationRepository
	jwtSecret          string
	fcmService         interface {
		SendToAll(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string)
	}
	fcmTokenRepo *database.FCMTokenRepository
}

// NewAuthHandler crée une nouvelle instance de AuthHandler
func NewAuthHandler(db *mongo.Database, jwtSecret string, fcmService interface {
	SendToAll(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string)
}) *AuthHandler {
	return &AuthHandler{
		userRepo:           database.NewUserRepository(db),
		participantRepo:    database.NewParticipantRepository(db),
		codeInvitationRepo: database.NewCodeInvitationRepository(db),
		jwtSecret:          jwtSecret,
		fcmService:         fcmService,
		fcmTokenRepo:       database.NewFCMTokenRepository(db),
	}
}

// Register gère la création d'un compte invité.
// Le compte démarre au début du parcours d'accueil : l'accès à
// l'application principale reste bloqué tant qu'il n'est pas terminé.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	// Décoder la requête
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Données invalides")
		return
	}

	// Valider les données
	if err := h.validateRegisterRequest(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Vérifier que le code d'invitation existe et est actif
	codeValid, err := h.codeInvitationRepo.IsCodeValid(req.CodeInvitation)
	if err != nil {
		log.Printf("Erreur lors de la vérification du code d'invitation: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}
	if !codeValid {
		utils.RespondError(w, http.StatusBadRequest, "Code d'invitation invalide ou inactif")
		return
	}

	// Vérifier si l'email existe déjà
	exists, err := h.userRepo.EmailExists(req.Email)
	if err != nil {
		log.Printf("Erreur lors de la vérification de l'email: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}
	if exists {
		utils.RespondError(w, http.StatusConflict, "Cet email est déjà utilisé")
		return
	}

	// Hacher le mot de passe avec bcrypt
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Erreur lors du hachage du mot de passe: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	// Créer le compte invité
	user := &models.User{
		CodeInvitation:  req.CodeInvitation,
		Firstname:       req.Firstname,
		Lastname:        req.Lastname,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           req.Phone,
		Password:        hashedPassword,
		Admin:           0, // Par défaut, les nouveaux comptes ne sont pas admin
		EtapeOnboarding: models.EtapeSejour,
		ProfilComplet:   false,
	}

	if err := h.userRepo.Create(user); err != nil {
		log.Printf("Erreur lors de la création de l'utilisateur: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur lors de la création du compte")
		return
	}

	// Incrémenter le compteur d'utilisations du code d'invitation
	if err := h.codeInvitationRepo.IncrementUsage(req.CodeInvitation); err != nil {
		log.Printf("Erreur lors de l'incrémentation du code d'invitation: %v", err)
		// Ne pas bloquer l'inscription si l'incrémentation échoue
	}

	// Si un participant porte cet email, rattacher le nouveau compte
	if err := h.participantRepo.LierCompte(user.Email, user.ID); err != nil {
		log.Printf("Erreur lors du rattachement du participant: %v", err)
	}

	// Notifier les admins en arrière-plan
	go h.notifyAdminsNewUser(user)

	// Générer le token JWT
	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, h.jwtSecret)
	if err != nil {
		log.Printf("Erreur lors de la génération du token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	// Répondre avec le token et les informations du compte
	response := map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    *user,
	}

	log.Printf("✓ Nouveau compte invité: %s (ID: %s)", user.Email, user.ID.Hex())

	utils.RespondJSON(w, http.StatusCreated, response)
}

// notifyAdminsNewUser envoie une notification aux admins lors d'une nouvelle inscription
func (h *AuthHandler) notifyAdminsNewUser(user *models.User) {
	if h.fcmService == nil {
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

	// Préparer la notification
	title := "🎉 Nouvelle inscription !"
	message := fmt.Sprintf("%s %s vient de créer son compte", user.Firstname, user.Lastname)
	data := map[string]string{
		"type":      "new_user",
		"user_id":   user.ID.Hex(),
		"email":     user.Email,
		"firstname": user.Firstname,
		"lastname":  user.Lastname,
	}

	// Envoyer aux admins
	success, failed, _ := h.fcmService.SendToAll(adminTokens, title, message, data)
	log.Printf("📧 Notification nouvelle inscription envoyée aux admins: %d succès, %d échecs", success, failed)
}

// Login gère la connexion d'un compte invité
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	// Décoder la requête
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Données invalides")
		return
	}

	// Valider les données
	if err := h.validateLoginRequest(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Rechercher le compte par email
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.userRepo.FindByEmail(email)
	if err != nil {
		log.Printf("Erreur lors de la recherche de l'utilisateur: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	if user == nil {
		utils.RespondError(w, http.StatusUnauthorized, "Email ou mot de passe incorrect")
		return
	}

	// Vérifier le mot de passe
	if !utils.CheckPassword(user.Password, req.Password) {
		utils.RespondError(w, http.StatusUnauthorized, "Email ou mot de passe incorrect")
		return
	}

	// Générer le token JWT
	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, h.jwtSecret)
	if err != nil {
		log.Printf("Erreur lors de la génération du token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	// Répondre avec le token et les informations du compte.
	// L'étape d'onboarding est incluse pour que le frontend reprenne
	// le parcours là où il s'était arrêté.
	response := map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    *user,
	}

	log.Printf("✓ Utilisateur connecté: %s (ID: %s)", user.Email, user.ID.Hex())
	utils.RespondJSON(w, http.StatusOK, response)
}

// validateRegisterRequest valide les données de création de compte
func (h *AuthHandler) validateRegisterRequest(req *models.RegisterRequest) error {
	if err := utils.ValidateRequired("code_invitation", req.CodeInvitation); err != nil {
		return err
	}
	if err := utils.ValidateRequired("prenom", req.Firstname); err != nil {
		return err
	}
	if err := utils.ValidateRequired("nom", req.Lastname); err != nil {
		return err
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		return err
	}
	if req.Phone != "" {
		if err := utils.ValidatePhone(req.Phone); err != nil {
			return err
		}
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return err
	}
	return nil
}

// validateLoginRequest valide les données de connexion
func (h *AuthHandler) validateLoginRequest(req *models.LoginRequest) error {
	if err := utils.ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return err
	}
	return nil
}
