package statusapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Uguee/accessvc/domain"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "test-bearer", "test-key", 5*time.Second)
	return client, server
}

func TestClient_FetchDocuments(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		expectedFound bool
		expectedError error
	}{
		{
			name: "row present",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{"numericId": 42})
			},
			expectedFound: true,
		},
		{
			name: "404 means absence",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			expectedFound: false,
		},
		{
			name: "credential rejection",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			expectedError: domain.ErrAuthFailure,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedError: domain.ErrNetworkFailure,
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			expectedError: domain.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(tt.handler)
			defer server.Close()

			found, err := client.FetchDocuments(context.Background(), 42)
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found != tt.expectedFound {
				t.Errorf("expected found=%v, got %v", tt.expectedFound, found)
			}
		})
	}
}

func TestClient_FetchInstitutionRegistration(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/records/institution-registration" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("numericId") != "42" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"numericId":         42,
			"institutionId":     7,
			"status":            "validated",
			"institutionalRole": "student",
		})
	})
	defer server.Close()

	reg, err := client.FetchInstitutionRegistration(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg == nil {
		t.Fatal("expected a registration row")
	}
	if reg.InstitutionID != 7 || reg.Status != domain.RegistrationValidated || reg.InstitutionalRole != "student" {
		t.Errorf("unexpected row: %+v", reg)
	}
}

func TestClient_FetchDriverValidationAbsence(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	dv, err := client.FetchDriverValidation(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dv != nil {
		t.Errorf("expected nil row for absence, got %+v", dv)
	}
}

func TestClient_SendsCredentialHeaders(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-bearer" {
			t.Errorf("missing bearer header, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Service-Key") != "test-key" {
			t.Errorf("missing service key header, got %q", r.Header.Get("X-Service-Key"))
		}
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	client.FetchDocuments(context.Background(), 42)
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "b", "k", time.Second)
	_, err := client.FetchDocuments(context.Background(), 42)
	if !errors.Is(err, domain.ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
}

func TestClient_CreateRegistrationRPC(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/rpc/apply-institution" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("undecodable body: %v", err)
		}
		if body["numericId"] != float64(42) || body["institutionId"] != float64(7) {
			t.Errorf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	defer server.Close()

	err := client.CreateRegistration(context.Background(), &domain.InstitutionRegistration{
		UserID:            42,
		InstitutionID:     7,
		InstitutionalRole: "student",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_RPCRejection(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "duplicate"})
	})
	defer server.Close()

	err := client.CreateDocuments(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error for a rejected rpc")
	}
}

func TestClient_RPCAuthFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	err := client.UpdateDriverStatus(context.Background(), 42, domain.DriverValidated)
	if !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("expected ErrAuthFailure, got %v", err)
	}
}
