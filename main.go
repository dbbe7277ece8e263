package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cousinade-backend/config"
	"cousinade-backend/database"
	"cousinade-backend/handlers"
	"cousinade-backend/middleware"
	"cousinade-backend/services"
	"cousinade-backend/utils"

	"github.com/gorilla/mux"
)

func main() {
	// Charger la configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	// Connexion à MongoDB
	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatalf("❌ Erreur de connexion à MongoDB: %v", err)
	}
	defer database.Close()

	// Service Slack pour les alertes d'erreurs critiques
	slackService := services.NewSlackService(cfg.SlackWebhookURL)

	// Initialiser Firebase Cloud Messaging (optionnel)
	fcmService, err := services.NewFCMService(cfg.FirebaseCredentialsFile)
	if err != nil {
		log.Printf("⚠️  Erreur d'initialisation Firebase: %v", err)
		log.Println("⚠️  Le serveur démarre SANS notifications push")
		fcmService = services.NewDisabledFCMService()
	} else {
		log.Println("✓ Firebase Cloud Messaging initialisé")

		// Cron de notification d'ouverture des inscriptions
		notificationCron := services.NewNotificationCron(database.DB, fcmService)
		notificationCron.Start()
		defer notificationCron.Stop()
	}

	// Service d'envoi d'emails (invitations familiales)
	mailerService := services.NewMailerService(cfg)

	// Créer le routeur
	router := mux.NewRouter()

	// Middlewares globaux
	router.Use(middleware.Logging(slackService))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Créer les handlers
	healthHandler := handlers.NewHealthHandler(cfg.Environment)
	authHandler := handlers.NewAuthHandler(database.DB, cfg.JWTSecret, fcmService)
	onboardingHandler := handlers.NewOnboardingHandler(database.DB)
	participantHandler := handlers.NewParticipantHandler(database.DB, mailerService)
	eventHandler := handlers.NewEventHandler(database.DB)
	inscriptionHandler := handlers.NewInscriptionHandler(database.DB, fcmService, mailerService)
	mediaHandler := handlers.NewMediaHandler(database.DB, fcmService, cfg.StorageCloudName, cfg.StorageUploadPreset)
	storageHandler := handlers.NewStorageHandler(cfg.StorageCloudName, cfg.StorageUploadPreset, cfg.StorageAPIKey, cfg.StorageAPISecret)
	adminHandler := handlers.NewAdminHandler(database.DB, fcmService)
	fcmHandler := handlers.NewFCMHandler(database.DB, fcmService)
	notificationHandler := handlers.NewNotificationHandler(
		database.DB,
		cfg.VAPIDPublicKey,
		cfg.VAPIDPrivateKey,
		cfg.VAPIDSubject,
	)

	// Middleware Guest pour empêcher l'accès si déjà connecté
	guestMiddleware := middleware.Guest(cfg.JWTSecret)

	// Routes publiques d'authentification
	router.Handle("/api/inscription", guestMiddleware(http.HandlerFunc(authHandler.Register))).Methods("POST", "OPTIONS")
	router.Handle("/api/connexion", guestMiddleware(http.HandlerFunc(authHandler.Login))).Methods("POST", "OPTIONS")

	// Routes alternatives (pour compatibilité)
	router.Handle("/api/auth/register", guestMiddleware(http.HandlerFunc(authHandler.Register))).Methods("POST", "OPTIONS")
	router.Handle("/api/auth/login", guestMiddleware(http.HandlerFunc(authHandler.Login))).Methods("POST", "OPTIONS")

	// Route de santé (health check)
	router.HandleFunc("/api/health", healthHandler.Health).Methods("GET", "OPTIONS")

	// Clés publiques de notification (publiques)
	router.HandleFunc("/api/notifications/vapid-public-key", notificationHandler.GetVAPIDPublicKey).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/fcm/vapid-key", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"vapidKey": cfg.FCMVAPIDKey,
		})
	}).Methods("GET", "OPTIONS")

	// Routes protégées (authentification requise)
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.Auth(cfg.JWTSecret))

	// Parcours d'accueil : accessible dès la création du compte
	protected.HandleFunc("/onboarding", onboardingHandler.Etat).Methods("GET", "OPTIONS")
	protected.HandleFunc("/onboarding/sejour", onboardingHandler.SaveSejour).Methods("POST", "OPTIONS")
	protected.HandleFunc("/onboarding/groupe", onboardingHandler.SaveGroupe).Methods("POST", "OPTIONS")
	protected.HandleFunc("/onboarding/confirmation", onboardingHandler.Confirmer).Methods("POST", "OPTIONS")

	// Groupe familial : nécessaire pendant le parcours d'accueil,
	// donc PAS derrière le garde-fou d'onboarding
	protected.HandleFunc("/participants", participantHandler.GetParticipants).Methods("GET", "OPTIONS")
	protected.HandleFunc("/participants", participantHandler.AddParticipant).Methods("POST", "OPTIONS")
	protected.HandleFunc("/participants/{participant_id}", participantHandler.UpdateParticipant).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/participants/{participant_id}", participantHandler.DeleteParticipant).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/participants/{participant_id}/invitation", participantHandler.SendInvitation).Methods("POST", "OPTIONS")

	// Abonnements aux notifications (rattachés au compte connecté)
	protected.HandleFunc("/notifications/subscribe", notificationHandler.Subscribe).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notifications/unsubscribe", notificationHandler.Unsubscribe).Methods("POST", "OPTIONS")
	protected.HandleFunc("/fcm/subscribe", fcmHandler.Subscribe).Methods("POST", "OPTIONS")
	protected.HandleFunc("/fcm/unsubscribe", fcmHandler.Unsubscribe).Methods("POST", "OPTIONS")

	// Profil du compte connecté
	protected.HandleFunc("/protected/profile", func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.GetUserFromContext(r.Context())
		if claims == nil {
			utils.RespondError(w, http.StatusUnauthorized, "Utilisateur non authentifié")
			return
		}

		utils.RespondSuccess(w, "Profil récupéré avec succès", map[string]interface{}{
			"user_id": claims.UserID,
			"email":   claims.Email,
		})
	}).Methods("GET", "OPTIONS")

	// Application principale : réservée aux profils complets
	app := protected.NewRoute().Subrouter()
	app.Use(middleware.RequireOnboarding(database.DB))

	// Événements
	app.HandleFunc("/evenements", eventHandler.GetEvents).Methods("GET", "OPTIONS")
	app.HandleFunc("/evenements/{event_id}", eventHandler.GetEvent).Methods("GET", "OPTIONS")

	// Inscriptions aux événements
	app.HandleFunc("/evenements/{event_id}/inscription", inscriptionHandler.CreateInscription).Methods("POST", "OPTIONS")
	app.HandleFunc("/evenements/{event_id}/inscription", inscriptionHandler.GetInscription).Methods("GET", "OPTIONS")
	app.HandleFunc("/evenements/{event_id}/inscription", inscriptionHandler.UpdateInscription).Methods("PUT", "OPTIONS")
	app.HandleFunc("/evenements/{event_id}/desinscription", inscriptionHandler.DeleteInscription).Methods("DELETE", "OPTIONS")
	app.HandleFunc("/mes-evenements", inscriptionHandler.GetMesEvenements).Methods("GET", "OPTIONS")

	// Galerie de médias
	app.HandleFunc("/evenements/{event_id}/medias", mediaHandler.GetMedias).Methods("GET", "OPTIONS")
	app.HandleFunc("/evenements/{event_id}/medias", mediaHandler.CreateMedia).Methods("POST", "OPTIONS")
	app.HandleFunc("/evenements/{event_id}/medias/{media_id}", mediaHandler.DeleteMedia).Methods("DELETE", "OPTIONS")
	app.HandleFunc("/storage/signature", storageHandler.GetUploadSignature).Methods("POST", "OPTIONS")

	// Routes Admin (Auth + RequireAdmin)
	adminRouter := protected.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.RequireAdmin(database.DB))

	// Gestion des utilisateurs
	adminRouter.HandleFunc("/utilisateurs", adminHandler.GetUsers).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/utilisateurs/{id}", adminHandler.UpdateUser).Methods("PUT", "OPTIONS")
	adminRouter.HandleFunc("/utilisateurs/{id}", adminHandler.DeleteUser).Methods("DELETE", "OPTIONS")

	// Gestion des événements
	adminRouter.HandleFunc("/evenements", adminHandler.GetEvents).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/evenements", adminHandler.CreateEvent).Methods("POST", "OPTIONS")
	adminRouter.HandleFunc("/evenements/{event_id}", adminHandler.GetEvent).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/evenements/{id}", adminHandler.UpdateEvent).Methods("PUT", "OPTIONS")
	adminRouter.HandleFunc("/evenements/{id}", adminHandler.DeleteEvent).Methods("DELETE", "OPTIONS")
	adminRouter.HandleFunc("/evenements/{event_id}/recalculer", adminHandler.RecalculateEventCounters).Methods("POST", "OPTIONS")

	// Inscriptions (vue admin)
	adminRouter.HandleFunc("/evenements/{event_id}/inscrits", inscriptionHandler.GetInscrits).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/evenements/{event_id}/inscrits/{inscription_id}", inscriptionHandler.DeleteInscriptionAdmin).Methods("DELETE", "OPTIONS")
	adminRouter.HandleFunc("/evenements/{event_id}/inscrits/{inscription_id}/accompagnant/{index}", inscriptionHandler.DeleteAccompagnant).Methods("DELETE", "OPTIONS")

	// Statistiques
	adminRouter.HandleFunc("/stats", adminHandler.GetStats).Methods("GET", "OPTIONS")

	// Notifications admin
	adminRouter.HandleFunc("/notifications/send", adminHandler.SendAdminNotification).Methods("POST", "OPTIONS")
	adminRouter.HandleFunc("/fcm/send", fcmHandler.SendNotification).Methods("POST", "OPTIONS")
	adminRouter.HandleFunc("/fcm/send-to-user", fcmHandler.SendToUser).Methods("POST", "OPTIONS")
	adminRouter.HandleFunc("/webpush/send", notificationHandler.SendNotification).Methods("POST", "OPTIONS")

	// Codes d'invitation
	adminRouter.HandleFunc("/codes-invitation", adminHandler.GetCodesInvitation).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/codes-invitation/generate", adminHandler.GenerateCodeInvitation).Methods("POST", "OPTIONS")
	adminRouter.HandleFunc("/codes-invitation/{code}/active", adminHandler.SetCodeInvitationActive).Methods("PUT", "OPTIONS")

	// Stockage objet (nettoyage après modération)
	adminRouter.HandleFunc("/storage/delete", storageHandler.DeleteObject).Methods("POST", "OPTIONS")

	// Démarrer le serveur
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Gérer l'arrêt gracieux du serveur
	go func() {
		log.Printf("🚀 Serveur démarré sur http://%s", addr)
		log.Printf("📝 Environnement: %s", cfg.Environment)
		log.Printf("🗄️  Base de données: MongoDB")
		log.Println("📋 Routes disponibles:")
		log.Println("   POST   /api/inscription                    - Création de compte (code d'invitation requis)")
		log.Println("   POST   /api/connexion                      - Connexion")
		log.Println("   GET    /api/health                         - Health check")
		log.Println("")
		log.Println("   🧭 Parcours d'accueil (authentifié):")
		log.Println("   GET    /api/onboarding                     - État du parcours")
		log.Println("   POST   /api/onboarding/sejour              - Étape séjour")
		log.Println("   POST   /api/onboarding/groupe              - Étape groupe familial")
		log.Println("   POST   /api/onboarding/confirmation        - Confirmation finale")
		log.Println("")
		log.Println("   👨‍👩‍👧 Groupe familial (authentifié):")
		log.Println("   GET    /api/participants                   - Liste des participants")
		log.Println("   POST   /api/participants                   - Ajouter un participant")
		log.Println("   PUT    /api/participants/{id}              - Modifier un participant")
		log.Println("   DELETE /api/participants/{id}              - Supprimer un participant")
		log.Println("   POST   /api/participants/{id}/invitation   - Envoyer l'invitation par email")
		log.Println("")
		log.Println("   📝 Événements et inscriptions (profil complet requis):")
		log.Println("   GET    /api/evenements                     - Liste des événements publiés")
		log.Println("   GET    /api/evenements/{id}                - Détails d'un événement")
		log.Println("   POST   /api/evenements/{id}/inscription    - S'inscrire")
		log.Println("   GET    /api/evenements/{id}/inscription    - Voir son inscription")
		log.Println("   PUT    /api/evenements/{id}/inscription    - Modifier inscription")
		log.Println("   DELETE /api/evenements/{id}/desinscription - Se désinscrire")
		log.Println("   GET    /api/mes-evenements                 - Mes événements")
		log.Println("")
		log.Println("   📸 Galerie médias (profil complet requis):")
		log.Println("   GET    /api/evenements/{id}/medias         - Liste des médias")
		log.Println("   POST   /api/evenements/{id}/medias         - Ajouter un média")
		log.Println("   DELETE /api/evenements/{id}/medias/{id}    - Supprimer un média")
		log.Println("   POST   /api/storage/signature              - Signature d'upload")
		log.Println("")
		log.Println("   👑 Routes Admin (admin=1 requis):")
		log.Println("   GET    /api/admin/utilisateurs             - Liste utilisateurs")
		log.Println("   PUT    /api/admin/utilisateurs/{id}        - Modifier utilisateur")
		log.Println("   DELETE /api/admin/utilisateurs/{id}        - Supprimer utilisateur")
		log.Println("   GET    /api/admin/evenements               - Liste événements (brouillons inclus)")
		log.Println("   POST   /api/admin/evenements               - Créer événement")
		log.Println("   PUT    /api/admin/evenements/{id}          - Modifier événement")
		log.Println("   DELETE /api/admin/evenements/{id}          - Supprimer événement")
		log.Println("   GET    /api/admin/evenements/{id}/inscrits - Liste des inscrits")
		log.Println("   GET    /api/admin/stats                    - Statistiques globales")
		log.Println("   GET    /api/admin/codes-invitation         - Liste des codes d'invitation")
		log.Println("   POST   /api/admin/codes-invitation/generate - Générer un code")
		log.Println("\n✨ Le serveur est prêt à recevoir des requêtes!")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Erreur du serveur: %v", err)
		}
	}()

	// Attendre le signal d'arrêt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n🛑 Arrêt du serveur...")
	if err := server.Close(); err != nil {
		log.Printf("❌ Erreur lors de l'arrêt du serveur: %v", err)
	}
	log.Println("✓ Serveur arrêté proprement")
}
