//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://localhost:8080"

var (
	baseURL string
	client  = &http.Client{Timeout: 10 * time.Second}
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Wait for the server to come up.
	for i := 0; i < 10; i++ {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				os.Exit(m.Run())
			}
		}
		time.Sleep(time.Second)
	}

	fmt.Println("server not reachable at", baseURL)
	os.Exit(1)
}

func getJSON(t *testing.T, path string) (int, envelope) {
	t.Helper()
	resp, err := client.Get(baseURL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, env
}

func postJSON(t *testing.T, path string, body any) (int, envelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, env
}

func TestHealthReportsMode(t *testing.T) {
	status, env := getJSON(t, "/health")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	var health struct {
		Status string `json:"status"`
		Mode   string `json:"mode"`
	}
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" {
		t.Errorf("status = %q", health.Status)
	}
	if health.Mode != "demo" && health.Mode != "persistent" {
		t.Errorf("mode = %q, want demo or persistent", health.Mode)
	}
}

func TestPublicQuestionsNeedNoAuth(t *testing.T) {
	status, env := getJSON(t, "/api/v1/public/nursing-questions?topic=pharmacology&limit=5")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	var payload struct {
		Questions []struct {
			ID            string `json:"id"`
			Question      string `json:"question"`
			CorrectAnswer string `json:"correct_answer"`
		} `json:"questions"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Count == 0 {
		t.Fatal("public endpoint returned no questions")
	}
	for _, q := range payload.Questions {
		if q.CorrectAnswer != "" {
			t.Errorf("question %s leaked its correct answer", q.ID)
		}
	}
}

func TestExamEndpointsRequireAuth(t *testing.T) {
	status, env := postJSON(t, "/api/v1/exams/start", map[string]any{"topic_id": "pharmacology"})
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if env.Error == nil || env.Error.Code != "TOKEN_REQUIRED" {
		t.Errorf("error = %+v, want TOKEN_REQUIRED", env.Error)
	}
}
