package alerts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

var errNotInitialized = errors.New("alerts not initialized")

// EnqueueWelcomeEmail schedules a welcome email after registration.
func EnqueueWelcomeEmail(userID, email, name string) error {
	if client == nil {
		return errNotInitialized
	}

	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:5173"
	}
	base = strings.TrimRight(base, "/")

	subject := fmt.Sprintf("Welcome to BlogHub, %s!", name)
	body := fmt.Sprintf("Hi %s, thanks for joining BlogHub.\n\nOpen BlogHub: %s\n\nIf the link doesn't work, copy and paste the URL above.", name, base)

	env := EmailEnvelope{To: email, Subject: subject, Body: body}
	payload := WelcomeEmailPayload{UserID: userID, Name: name, Email: email, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskWelcomeEmail, b)
	_, err := client.Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueContactReceived notifies the site administrator that a visitor
// submitted the contact form.
func EnqueueContactReceived(messageID, name, email, subject string) error {
	if client == nil {
		return errNotInitialized
	}

	env := EmailEnvelope{
		To:      adminEmail,
		Subject: fmt.Sprintf("New contact message: %s", subject),
		Body:    fmt.Sprintf("%s <%s> sent a new message.\n\nSubject: %s\n\nOpen the admin dashboard to read and reply.", name, email, subject),
	}
	payload := ContactReceivedPayload{MessageID: messageID, Name: name, Email: email, Subject: subject, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskContactReceived, b)
	_, err := client.Enqueue(task, asynq.Queue("alerts"))
	return err
}

// EnqueuePasswordReset schedules a password reset notification.
func EnqueuePasswordReset(userID, email, resetURL, name string) error {
	if client == nil {
		return errNotInitialized
	}

	subject := "Password reset instructions"
	body := fmt.Sprintf("Hello %s,\n\nWe received a request to reset your BlogHub password.\n\nTo proceed, open the link below:\n%s\n\nThis link expires in 30 minutes. If you did not request this, no action is required.\n\n— BlogHub Team", name, resetURL)

	env := EmailEnvelope{To: email, Subject: subject, Body: body}
	payload := PasswordResetPayload{UserID: userID, Email: email, ResetURL: resetURL, Envelope: env, Requested: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskPasswordReset, b)
	_, err := client.Enqueue(task, asynq.Queue("emails"))
	return err
}
