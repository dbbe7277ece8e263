package middleware

import (
	"net/http"

	"cousinade-backend/database"
	"cousinade-backend/models"
	"cousinade-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// RequireOnboarding bloque l'accès à l'application principale tant que
// le parcours d'accueil n'est pas terminé. La réponse indique l'étape
// courante pour que le frontend puisse rediriger l'invité au bon endroit.
func RequireOnboarding(db *mongo.Database) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims == nil {
				utils.RespondError(w, http.StatusUnauthorized, "Non authentifié")
				return
			}

			userRepo := database.NewUserRepository(db)
			user, err := userRepo.FindByEmail(claims.Email)
			if err != nil || user == nil {
				utils.RespondError(w, http.StatusUnauthorized, "Utilisateur non trouvé")
				return
			}

			if !user.ProfilComplet {
				etape := user.EtapeOnboarding
				if !etape.EstValide() {
					etape = models.EtapeSejour
				}
				utils.RespondJSON(w, http.StatusForbidden, map[string]interface{}{
					"error":             "Forbidden",
					"message":           "Profil incomplet - terminez d'abord votre parcours d'accueil",
					"onboarding_requis": true,
					"etape_courante":    etape,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
