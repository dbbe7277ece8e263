package constants

// Messages d'erreur HTTP courants
const (
	ErrMethodNotAllowed      = "Méthode non autorisée"
	ErrServerError           = "Erreur serveur"
	ErrInvalidData           = "Données invalides"
	ErrNotAuthenticated      = "Non authentifié"
	ErrInvalidToken          = "Token invalide"
	ErrEventIDRequired       = "ID d'événement requis"
	ErrInvalidEventID        = "ID événement invalide"
	ErrEventNotFound         = "Événement non trouvé"
	ErrUserNotFound          = "Utilisateur introuvable"
	ErrAdminOnly             = "Accès refusé. Admin uniquement"
	ErrInvalidJSONBody       = "Body JSON invalide"
	ErrInvalidParticipantID  = "ID de participant invalide"
	ErrParticipantNotFound   = "Participant non trouvé"
	ErrInscriptionNotFound   = "Aucune inscription trouvée"
	ErrOnboardingIncomplete  = "Profil incomplet - terminez d'abord votre parcours d'accueil"
	ErrInvitationCodeInvalid = "Code d'invitation invalide ou inactif"
)

// En-têtes HTTP
const (
	HeaderContentType     = "Content-Type"
	HeaderApplicationJSON = "application/json"
)
