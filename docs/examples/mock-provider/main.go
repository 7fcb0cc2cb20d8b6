// Mock email provider
//
// Accepts the notification POST the waitlist server sends and logs it, so
// the notification path can be exercised without a real provider account.
//
// Usage:
//   export MOCK_PROVIDER_KEY="re_test"     # optional; checked when set
//   export MOCK_PROVIDER_FAIL=1             # optional; answer every call with 500
//   go run main.go
//
// Then start the server with:
//   RESEND_ENDPOINT=http://localhost:9000/emails RESEND_API_KEY=re_test \
//   WAITLIST_FROM_EMAIL=waitlist@example.com WAITLIST_NOTIFY_EMAIL=ops@example.com

package main

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
)

// Email is the request body the waitlist server sends.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// provider remembers idempotency keys so replays return the same id.
type provider struct {
	key  string
	fail bool

	mu      sync.Mutex
	counter int
	seen    map[string]string
}

func main() {
	p := &provider{
		key:  os.Getenv("MOCK_PROVIDER_KEY"),
		fail: os.Getenv("MOCK_PROVIDER_FAIL") != "",
		seen: make(map[string]string),
	}

	http.HandleFunc("/emails", p.emailsHandler)
	http.HandleFunc("/health", healthHandler)

	log.Println("Starting mock provider on :9000")
	log.Println("Endpoint: http://localhost:9000/emails")
	log.Fatal(http.ListenAndServe(":9000", nil))
}

func (p *provider) emailsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if p.key != "" && !validBearer(r.Header.Get("Authorization"), p.key) {
		log.Println("Rejected request with a bad Authorization header")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "API key is invalid"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading body: %v", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var email Email
	if err := json.Unmarshal(body, &email); err != nil {
		log.Printf("Error parsing JSON: %v", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "invalid JSON"})
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")

	log.Printf("Received email %q", email.Subject)
	log.Printf("  From:            %s", email.From)
	log.Printf("  To:              %s", strings.Join(email.To, ", "))
	log.Printf("  Text:            %s", email.Text)
	log.Printf("  Idempotency-Key: %s", idemKey)
	log.Printf("  User-Agent:      %s", r.Header.Get("User-Agent"))

	if p.fail {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "mock failure"})
		return
	}

	p.mu.Lock()
	id, replay := p.seen[idemKey]
	if !replay {
		p.counter++
		id = fmt.Sprintf("mock_%06d", p.counter)
		if idemKey != "" {
			p.seen[idemKey] = id
		}
	}
	p.mu.Unlock()

	if replay {
		log.Printf("  Replayed idempotency key, returning %s", id)
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func validBearer(header, key string) bool {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(key)) == 1
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
