package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const baseURL = "http://localhost:8080"

// Manual end-to-end check against a running server: ingest one document,
// then query it through both the answer and document-id endpoints.
func main() {
	time.Sleep(2 * time.Second)

	fmt.Println("Starting integration check...")

	featureID := fmt.Sprintf("feature-%d", time.Now().Unix())
	documentID := "doc-1"

	fmt.Println("1. Ingesting document...")
	ingest := map[string]string{
		"feature_id":    featureID,
		"document_id":   documentID,
		"document_text": "Alice worked on the login feature with Bob reviewing. The login feature was based on the OAuth design document authored by Carol.",
	}
	if !sendRequest("POST", "/ingest-data", ingest) {
		fmt.Println("FAILED: ingest")
		os.Exit(1)
	}
	fmt.Println("PASSED: ingest")

	fmt.Println("2. Querying (answer variant)...")
	query := map[string]any{
		"query":      "Who worked on the login feature?",
		"top_k":      3,
		"feature_id": featureID,
	}
	if !sendRequest("POST", "/query", query) {
		fmt.Println("FAILED: query")
		os.Exit(1)
	}
	fmt.Println("PASSED: query")

	fmt.Println("3. Querying (document-id variant)...")
	if !sendRequest("POST", "/retrieve", query) {
		fmt.Println("FAILED: retrieve")
		os.Exit(1)
	}
	fmt.Println("PASSED: retrieve")

	fmt.Println("All checks passed.")
}

func sendRequest(method, path string, payload any) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("marshal error: %v\n", err)
		return false
	}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("request error: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("http error: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("  %s %s -> %d\n  %s\n", method, path, resp.StatusCode, string(respBody))

	return resp.StatusCode == http.StatusOK
}
