package handlers

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"cousinade-backend/constants"
	"cousinade-backend/middleware"
	"cousinade-backend/utils"
)

// StorageHandler délivre des signatures d'upload vers le stockage objet.
// Les fichiers partent directement du client vers Cloudinary : le backend
// ne fait que signer les paramètres, puis enregistre la métadonnée via
// le MediaHandler.
type StorageHandler struct {
	cloudName    string
	uploadPreset string
	apiKey       string
	apiSecret    string
}

// NewStorageHandler crée une nouvelle instance
func NewStorageHandler(cloudName, uploadPreset, apiKey, apiSecret string) *StorageHandler {
	return &StorageHandler{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		apiKey:       apiKey,
		apiSecret:    apiSecret,
	}
}

// GetUploadSignature retourne les paramètres signés pour un upload direct.
// La signature couvre le timestamp : elle expire d'elle-même côté Cloudinary.
func (h *StorageHandler) GetUploadSignature(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	if h.cloudName == "" || h.apiKey == "" || h.apiSecret == "" {
		utils.RespondError(w, http.StatusServiceUnavailable, "Stockage non configuré")
		return
	}

	var req struct {
		Folder string `json:"folder"`
	}
	// Le body est optionnel
	_ = json.NewDecoder(r.Body).Decode(&req)

	// Organiser les fichiers par compte
	folder := req.Folder
	if folder == "" {
		folder = fmt.Sprintf("galerie/%s", strings.Replace(claims.Email, "@", "_", -1))
	}

	timestamp := time.Now().Unix()

	params := map[string]string{
		"timestamp":     fmt.Sprintf("%d", timestamp),
		"folder":        folder,
		"upload_preset": h.uploadPreset,
	}

	signature := h.signParams(params)

	log.Printf("📤 Signature d'upload délivrée pour %s (dossier %s)", claims.Email, folder)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"cloud_name":    h.cloudName,
		"api_key":       h.apiKey,
		"timestamp":     timestamp,
		"folder":        folder,
		"upload_preset": h.uploadPreset,
		"signature":     signature,
		"upload_url":    fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/auto/upload", h.cloudName),
	})
}

// signParams calcule la signature Cloudinary : SHA1 des paramètres triés
// par clé, concaténés en query string, suivis du secret
func (h *StorageHandler) signParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}

	toSign := strings.Join(pairs, "&") + h.apiSecret
	return fmt.Sprintf("%x", sha1.Sum([]byte(toSign)))
}

// DeleteObject supprime un objet du stockage (admin uniquement, après
// suppression de la métadonnée côté base)
func (h *StorageHandler) DeleteObject(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PublicID == "" {
		utils.RespondError(w, http.StatusBadRequest, "public_id requis")
		return
	}

	resourceType := req.ResourceType
	if resourceType != "video" {
		resourceType = "image"
	}

	if err := h.destroyObject(req.PublicID, resourceType); err != nil {
		log.Printf("⚠️  Erreur suppression stockage: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "La suppression du fichier a échoué")
		return
	}

	log.Printf("🧹 Objet supprimé du stockage: %s", req.PublicID)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"public_id": req.PublicID,
	})
}

// destroyObject envoie une requête destroy signée à Cloudinary
func (h *StorageHandler) destroyObject(publicID, resourceType string) error {
	destroyURL := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/%s/destroy", h.cloudName, resourceType)

	timestamp := time.Now().Unix()
	signature := h.signParams(map[string]string{
		"public_id": publicID,
		"timestamp": fmt.Sprintf("%d", timestamp),
	})

	data := fmt.Sprintf("public_id=%s&api_key=%s&timestamp=%d&signature=%s",
		publicID, h.apiKey, timestamp, signature)

	httpReq, err := http.NewRequest("POST", destroyURL, strings.NewReader(data))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.Printf("⚠️  Cloudinary delete error: %s", string(bodyBytes))
		return fmt.Errorf("cloudinary delete returned status %d", resp.StatusCode)
	}

	return nil
}
