package services

import (
	"fmt"
	"log"
	"net/smtp"

	"cousinade-backend/config"
)

// MailerService gère l'envoi d'emails transactionnels via SMTP
type MailerService struct {
	host     string
	port     string
	from     string
	password string
	baseURL  string
}

// NewMailerService crée une nouvelle instance de MailerService
func NewMailerService(cfg *config.Config) *MailerService {
	if cfg.SMTPFrom == "" {
		log.Println("⚠️  SMTP non configuré - envoi d'emails désactivé")
	}

	return &MailerService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		password: cfg.SMTPPassword,
		baseURL:  cfg.InvitationBaseURL,
	}
}

// SendInvitationEmail envoie l'email d'invitation à un participant pour
// qu'il crée son propre compte avec le code familial
func (m *MailerService) SendInvitationEmail(recipientEmail, firstname, codeInvitation string) error {
	if m.from == "" {
		return nil // Service désactivé
	}

	subject := "🎉 Vous êtes invité à la cousinade !"
	body := fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Un membre de votre famille vous a ajouté à son groupe pour le grand rassemblement familial.\n\n"+
			"Créez votre compte avec le code d'invitation suivant : %s\n\n"+
			"Rendez-vous sur %s pour vous inscrire.\n\n"+
			"À très bientôt !",
		firstname, codeInvitation, m.baseURL,
	)

	return m.send(recipientEmail, subject, body)
}

// SendInscriptionConfirmation confirme par email une inscription à un événement
func (m *MailerService) SendInscriptionConfirmation(recipientEmail, eventTitle string, nombrePersonnes int) error {
	if m.from == "" {
		return nil
	}

	subject := "✅ Inscription confirmée"
	body := fmt.Sprintf(
		"Bonjour,\n\n"+
			"Votre inscription à « %s » est confirmée pour %d personne(s).\n\n"+
			"À très bientôt !",
		eventTitle, nombrePersonnes,
	)

	return m.send(recipientEmail, subject, body)
}

func (m *MailerService) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, to, subject, body,
	)

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		log.Printf("❌ Erreur lors de l'envoi de l'email à %s: %v", to, err)
		return fmt.Errorf("erreur lors de l'envoi de l'email: %w", err)
	}

	log.Printf("📧 Email envoyé à %s (%s)", to, subject)
	return nil
}
