package tracking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"bonik/internal/models"
)

type fakeSettings models.AdminSettings

func (f fakeSettings) All() (models.AdminSettings, error) {
	return models.AdminSettings(f), nil
}

func TestHashPII(t *testing.T) {
	// sha256("rahim uddin")
	want := HashPII("rahim uddin")

	tests := []string{"Rahim Uddin", "  rahim uddin  ", "RAHIM UDDIN"}
	for _, in := range tests {
		if got := HashPII(in); got != want {
			t.Errorf("HashPII(%q) = %s, want normalized match", in, got)
		}
	}

	if len(want) != 64 {
		t.Errorf("hash length: got %d, want 64 hex chars", len(want))
	}
}

func TestHashPhone(t *testing.T) {
	want := HashPhone("8801712345678")

	tests := []string{"+880 1712-345678", "880 1712 345 678", "+8801712345678"}
	for _, in := range tests {
		if got := HashPhone(in); got != want {
			t.Errorf("HashPhone(%q) should match digits-only form", in)
		}
	}

	if HashPhone("01712345678") == want {
		t.Error("different digit strings must hash differently")
	}
}

func TestSendPurchase_DisabledIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(fakeSettings{
		SettingPixelID:     "123",
		SettingCAPIToken:   "token",
		SettingCAPIEnabled: "false",
	})
	c.baseURL = srv.URL

	if err := c.SendPurchase(context.Background(), Event{}); err != nil {
		t.Fatalf("SendPurchase: %v", err)
	}
	if called {
		t.Error("disabled CAPI must not call the API")
	}
}

func TestSendPurchase_SendsHashedEvent(t *testing.T) {
	var gotPath string
	var gotReq eventRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotReq)
		io.WriteString(w, `{"events_received":1}`)
	}))
	defer srv.Close()

	c := NewClient(fakeSettings{
		SettingPixelID:       "1234567890",
		SettingCAPIToken:     "token",
		SettingCAPIEnabled:   "true",
		SettingTestEventCode: "TEST123",
	})
	c.baseURL = srv.URL

	pid := uuid.New()
	order := &models.Order{
		OrderNumber:   "BNK-1001",
		Total:         1900,
		ShippingName:  "Rahim Uddin",
		ShippingPhone: "01712345678",
		ShippingCity:  "Dhaka",
		CreatedAt:     time.Now(),
		Items: []models.OrderItem{
			{ProductID: &pid, Price: 900, Quantity: 2},
		},
	}

	ev := PurchaseFromOrder(order, "https://shop.example.com/checkout")
	if err := c.SendPurchase(context.Background(), ev); err != nil {
		t.Fatalf("SendPurchase: %v", err)
	}

	if gotPath != "/1234567890/events" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotReq.TestEventCode != "TEST123" {
		t.Errorf("test event code: got %q", gotReq.TestEventCode)
	}
	if len(gotReq.Data) != 1 {
		t.Fatalf("events: got %d, want 1", len(gotReq.Data))
	}

	sent := gotReq.Data[0]
	if sent.EventName != "Purchase" || sent.EventID != "BNK-1001" {
		t.Errorf("event: %+v", sent)
	}
	if sent.CustomData.Currency != "BDT" || sent.CustomData.Value != 1900 {
		t.Errorf("custom data: %+v", sent.CustomData)
	}
	// PII must arrive hashed, never raw.
	if sent.UserData.Phones[0] != HashPhone("01712345678") {
		t.Error("phone must be hashed")
	}
	if sent.UserData.Names[0] != HashPII("Rahim Uddin") {
		t.Error("name must be hashed")
	}
	if sent.CustomData.Contents[0].ID != pid.String() {
		t.Errorf("content id: got %q", sent.CustomData.Contents[0].ID)
	}
}

func TestSendPurchase_MissingCredentialsIsNoop(t *testing.T) {
	c := NewClient(fakeSettings{SettingCAPIEnabled: "true"})
	if err := c.SendPurchase(context.Background(), Event{}); err != nil {
		t.Errorf("unconfigured CAPI should be a no-op, got %v", err)
	}
}
