package stripe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/solobill/solobill/internal/money"
	paymentdomain "github.com/solobill/solobill/internal/payment/domain"
)

const apiBase = "https://api.stripe.com/v1"

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Provider() string {
	return "stripe"
}

// NewAdapter builds a stripe adapter from a secret API key.
func (f *Factory) NewAdapter(secretKey string) (paymentdomain.Provider, error) {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil, paymentdomain.ErrInvalidConfig
	}

	return &Adapter{
		secretKey: secretKey,
		baseURL:   apiBase,
		client:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type Adapter struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func (a *Adapter) Name() string { return "stripe" }

func (a *Adapter) CreateIntent(ctx context.Context, req paymentdomain.IntentRequest) (*paymentdomain.Intent, error) {
	if !req.Amount.IsPositive() {
		return nil, paymentdomain.ErrInvalidAmount
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(money.MinorUnits(req.Amount), 10))
	form.Set("currency", strings.ToLower(strings.TrimSpace(req.Currency)))
	form.Set("metadata[invoice_id]", req.InvoiceID)
	form.Set("metadata[invoice_number]", req.InvoiceNumber)
	form.Set("automatic_payment_methods[enabled]", "true")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+a.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, paymentdomain.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, paymentdomain.ErrProviderUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, paymentdomain.ErrProviderUnavailable
	}

	var intent stripeIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, paymentdomain.ErrProviderUnavailable
	}
	if strings.TrimSpace(intent.ClientSecret) == "" {
		return nil, paymentdomain.ErrProviderUnavailable
	}

	return &paymentdomain.Intent{
		ClientSecret: intent.ClientSecret,
		ProviderRef:  intent.ID,
	}, nil
}

type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}
