package payments

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tastybites/tastybites-api/config"
)

// Client talks to the Pesapal gateway for card and paypal checkouts. A nil
// Client means payments are not configured; cod orders never reach it.
type Client struct {
	cfg  config.PesapalConfig
	http *resty.Client
}

func NewClient(cfg config.PesapalConfig) *Client {
	if !cfg.Enabled() {
		return nil
	}
	return &Client{
		cfg:  cfg,
		http: resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(30 * time.Second),
	}
}

func (c *Client) Enabled() bool {
	return c != nil
}

func (c *Client) requestAccessToken() (string, error) {
	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(map[string]string{
			"consumer_key":    c.cfg.ConsumerKey,
			"consumer_secret": c.cfg.ConsumerSecret,
		}).
		Post("/api/Auth/RequestToken")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("pesapal token request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	token, ok := response["token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in response: %v", response)
	}

	return token, nil
}

type CheckoutRequest struct {
	OrderNumber string
	Amount      float64
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	City        string
	Address     string
}

// CreateCheckout registers the order with the gateway and returns the URL
// the buyer is redirected to, plus the gateway's tracking id.
func (c *Client) CreateCheckout(req CheckoutRequest) (redirectURL, trackingID string, err error) {
	token, err := c.requestAccessToken()
	if err != nil {
		return "", "", err
	}

	body := map[string]any{
		"id":              req.OrderNumber,
		"currency":        c.cfg.Currency,
		"amount":          req.Amount,
		"description":     fmt.Sprintf("Payment for order %s", req.OrderNumber),
		"callback_url":    c.cfg.CallbackURL,
		"notification_id": c.cfg.NotificationID,
		"billing_address": map[string]any{
			"email_address": req.Email,
			"phone_number":  req.Phone,
			"first_name":    req.FirstName,
			"last_name":     req.LastName,
			"city":          req.City,
			"line_1":        req.Address,
		},
	}

	resp, err := c.http.R().
		SetHeaders(map[string]string{
			"Authorization": "Bearer " + token,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		}).
		SetBody(body).
		Post("/api/Transactions/SubmitOrderRequest")
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode() != 200 {
		return "", "", fmt.Errorf("pesapal order request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var gatewayResp map[string]any
	if err := json.Unmarshal(resp.Body(), &gatewayResp); err != nil {
		return "", "", fmt.Errorf("invalid response from payment gateway: %w", err)
	}

	redirectURL, rOK := gatewayResp["redirect_url"].(string)
	trackingID, tOK := gatewayResp["order_tracking_id"].(string)
	if !rOK || !tOK || redirectURL == "" || trackingID == "" {
		return "", "", fmt.Errorf("incomplete response from payment gateway")
	}

	return redirectURL, trackingID, nil
}
