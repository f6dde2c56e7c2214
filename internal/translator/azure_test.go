package translator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewAzureService_NoAPIKey(t *testing.T) {
	_, err := NewAzureService(AzureConfig{Endpoint: DefaultAzureEndpoint})
	if err == nil {
		t.Error("expected error when no API key")
	}
}

func TestNewAzureService_InvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"not a url", "ftp://example.com", "/relative/path", "://bad"} {
		_, err := NewAzureService(AzureConfig{APIKey: "key", Endpoint: endpoint})
		if err == nil {
			t.Errorf("expected error for endpoint %q", endpoint)
		}
	}
}

func TestNewAzureService_DefaultEndpoint(t *testing.T) {
	svc, err := NewAzureService(AzureConfig{APIKey: "key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.endpoint != DefaultAzureEndpoint {
		t.Errorf("expected %q, got %q", DefaultAzureEndpoint, svc.endpoint)
	}
}

func TestNewAzureService_CustomDomainEndpoint(t *testing.T) {
	svc, err := NewAzureService(AzureConfig{APIKey: "key", Endpoint: "https://my-res.cognitiveservices.azure.com/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://my-res.cognitiveservices.azure.com/translator/text/v3.0"
	if svc.endpoint != want {
		t.Errorf("expected %q, got %q", want, svc.endpoint)
	}
}

func TestAzureService_Name(t *testing.T) {
	svc, _ := NewAzureService(AzureConfig{APIKey: "key"})

	if svc.Name() != "azure" {
		t.Errorf("expected 'azure', got %q", svc.Name())
	}
}

func TestAzureService_IsAvailable(t *testing.T) {
	svc, _ := NewAzureService(AzureConfig{APIKey: "key"})

	if err := svc.IsAvailable(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAzureService_Translate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/translate" {
			t.Errorf("expected /translate, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api-version") != "3.0" || q.Get("from") != "en" || q.Get("to") != "es" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "test-key" {
			t.Errorf("missing subscription key header")
		}
		if r.Header.Get("Ocp-Apim-Subscription-Region") != "westeurope" {
			t.Errorf("missing region header")
		}
		if r.Header.Get("X-ClientTraceId") == "" {
			t.Errorf("missing trace id header")
		}

		var body []map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if len(body) != 1 || body[0]["Text"] != "Hello" {
			t.Errorf("unexpected body: %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"translations":[{"text":"Hola","to":"es"},{"text":"Buenas","to":"es"}]}]`))
	}))
	defer server.Close()

	svc, err := NewAzureService(AzureConfig{APIKey: "test-key", Endpoint: server.URL, Region: "westeurope"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := svc.Translate(context.Background(), TranslateRequest{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "es",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || len(results[0].Translations) != 2 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[0].Translations[0].Text != "Hola" {
		t.Errorf("expected 'Hola', got %q", results[0].Translations[0].Text)
	}
}

func TestAzureService_Translate_AutoSourceLang(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("from") {
			t.Errorf("expected no 'from' parameter, got %q", r.URL.RawQuery)
		}
		if r.Header.Get("Ocp-Apim-Subscription-Region") != "" {
			t.Errorf("expected no region header")
		}
		w.Write([]byte(`[{"detectedLanguage":{"language":"en","score":1.0},"translations":[{"text":"Привіт","to":"uk"}]}]`))
	}))
	defer server.Close()

	svc, _ := NewAzureService(AzureConfig{APIKey: "test-key", Endpoint: server.URL})

	results, err := svc.Translate(context.Background(), TranslateRequest{
		Text:       "Hello",
		SourceLang: "auto",
		TargetLang: "uk",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].DetectedLanguage == nil || results[0].DetectedLanguage.Language != "en" {
		t.Errorf("expected detected language 'en', got %+v", results[0].DetectedLanguage)
	}
}

func TestAzureService_Translate_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc, _ := NewAzureService(AzureConfig{APIKey: "test-key", Endpoint: server.URL})

	results, err := svc.Translate(context.Background(), TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "es"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestAzureService_Translate_StructuredError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "numeric code",
			body:     `{"error":{"code":400036,"message":"The target language is not valid."}}`,
			wantCode: "400036",
			wantMsg:  "The target language is not valid.",
		},
		{
			name:     "string code",
			body:     `{"error":{"code":"InvalidTarget","message":"en-xx is not valid"}}`,
			wantCode: "InvalidTarget",
			wantMsg:  "en-xx is not valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc, _ := NewAzureService(AzureConfig{APIKey: "test-key", Endpoint: server.URL})

			_, err := svc.Translate(context.Background(), TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "xx"})

			var svcErr *ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("expected *ServiceError, got %v", err)
			}
			if !svcErr.Structured() {
				t.Error("expected structured error")
			}
			if svcErr.StatusCode != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", svcErr.StatusCode)
			}
			if svcErr.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, svcErr.Code)
			}
			if svcErr.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, svcErr.Message)
			}
		})
	}
}

func TestAzureService_Translate_UnstructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Bad Gateway"))
	}))
	defer server.Close()

	svc, _ := NewAzureService(AzureConfig{APIKey: "test-key", Endpoint: server.URL})

	_, err := svc.Translate(context.Background(), TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "es"})

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if svcErr.Structured() {
		t.Error("expected unstructured error")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "Bad Gateway") {
		t.Errorf("unexpected error text: %q", err.Error())
	}
}

func TestAzureService_Translate_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	svc, _ := NewAzureService(AzureConfig{APIKey: "test-key", Endpoint: url})

	_, err := svc.Translate(context.Background(), TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "es"})
	if err == nil {
		t.Fatal("expected error when upstream is down")
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		t.Error("transport failure should not be a ServiceError")
	}
}

func TestAzureService_Translate_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	svc, _ := NewAzureService(AzureConfig{APIKey: "test-key", Endpoint: server.URL})

	_, err := svc.Translate(context.Background(), TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "es"})
	if err == nil {
		t.Error("expected error for malformed response")
	}
}

func TestServiceError_Error(t *testing.T) {
	err := &ServiceError{StatusCode: 400, Code: "InvalidTarget", Message: "en-xx is not valid"}

	want := "Error Code: InvalidTarget, Message: en-xx is not valid"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
