package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const defaultPlunkURL = "https://api.useplunk.com/v1/send"

var (
	plunkAPIKey string
	plunkFrom   string
	plunkURL    string
)

// ConfigurePlunkFromEnv loads Plunk settings. PLUNK_API_KEY is required;
// PLUNK_FROM and PLUNK_API_URL are optional.
func ConfigurePlunkFromEnv() error {
	plunkAPIKey = os.Getenv("PLUNK_API_KEY")
	plunkFrom = os.Getenv("PLUNK_FROM")
	plunkURL = os.Getenv("PLUNK_API_URL")
	if plunkURL == "" {
		plunkURL = defaultPlunkURL
	}
	if plunkAPIKey == "" {
		return fmt.Errorf("plunk not configured: set PLUNK_API_KEY")
	}
	return nil
}

type plunkRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	From    string `json:"from,omitempty"`
}

func sendViaPlunk(to, subject, body string) error {
	if plunkAPIKey == "" {
		if err := ConfigurePlunkFromEnv(); err != nil {
			return err
		}
	}

	b, _ := json.Marshal(plunkRequest{To: to, Subject: subject, Body: body, From: plunkFrom})
	req, err := http.NewRequest(http.MethodPost, plunkURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+plunkAPIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if detail, readErr := io.ReadAll(resp.Body); readErr == nil && len(detail) > 0 {
			return fmt.Errorf("plunk send failed: status=%d body=%s", resp.StatusCode, detail)
		}
		return fmt.Errorf("plunk send failed: status=%d", resp.StatusCode)
	}
	return nil
}
