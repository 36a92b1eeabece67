package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"salonpro-dashboard/models"
	"salonpro-dashboard/utils"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIError is a failure reported by the backend itself. Message is the
// backend's own text and is shown to the owner verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

// AsAPIError reports whether err carries a backend-reported failure.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// BackendClient talks to the remote salon REST backend on behalf of a
// signed-in owner. Every call carries the owner's bearer token.
type BackendClient struct {
	baseURL  string
	loginURL string
	http     *http.Client
}

func NewBackendClient(baseURL, loginURL string, timeout time.Duration) *BackendClient {
	baseURL = strings.TrimRight(baseURL, "/")
	if loginURL == "" {
		loginURL = baseURL + "/api/auth/login"
	}
	return &BackendClient{
		baseURL:  baseURL,
		loginURL: loginURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *BackendClient) do(ctx context.Context, method, target, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(b)
	}

	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = c.baseURL + target
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, target)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, target)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s %s", method, target)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodePayload(raw, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, target)
	}
	return nil
}

// decodePayload accepts both bare payloads and {"data": ...} envelopes.
func decodePayload(raw []byte, out interface{}) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if data, ok := envelope["data"]; ok && len(data) > 0 && string(data) != "null" {
			raw = data
		}
	}
	return json.Unmarshal(raw, out)
}

// errorMessage extracts the backend's "message" (a string or a list of
// validation messages), falling back to "error" and then the status text.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, field := range []json.RawMessage{body.Message, body.Error} {
			if msg := rawMessageText(field); msg != "" {
				return msg
			}
		}
	}
	return http.StatusText(status)
}

func rawMessageText(field json.RawMessage) string {
	if len(field) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(field, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(field, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

func resource(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return strings.Join(escaped, "/")
}

// Auth

func (c *BackendClient) Login(ctx context.Context, input models.LoginInput) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := c.do(ctx, http.MethodPost, c.loginURL, "", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *BackendClient) Signup(ctx context.Context, input models.SignupInput) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Salons, users and addresses

func (c *BackendClient) MySalons(ctx context.Context, token string) ([]models.Salon, error) {
	var salons []models.Salon
	err := c.do(ctx, http.MethodGet, "/api/salons/my-salons", token, nil, &salons)
	return salons, err
}

func (c *BackendClient) GetSalon(ctx context.Context, token, salonID string) (*models.Salon, error) {
	var salon models.Salon
	if err := c.do(ctx, http.MethodGet, "/api/salons/"+resource(salonID), token, nil, &salon); err != nil {
		return nil, err
	}
	return &salon, nil
}

func (c *BackendClient) UpdateSalon(ctx context.Context, token, salonID string, patch map[string]interface{}) (*models.Salon, error) {
	var salon models.Salon
	if err := c.do(ctx, http.MethodPatch, "/api/salons/"+resource(salonID), token, patch, &salon); err != nil {
		return nil, err
	}
	return &salon, nil
}

func (c *BackendClient) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *BackendClient) UpdateMe(ctx context.Context, token string, patch map[string]interface{}) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPatch, "/api/users/me", token, patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *BackendClient) ListAddresses(ctx context.Context, token string) ([]models.Address, error) {
	var addresses []models.Address
	err := c.do(ctx, http.MethodGet, "/api/addresses", token, nil, &addresses)
	return addresses, err
}

func (c *BackendClient) CreateAddress(ctx context.Context, token string, body map[string]interface{}) (*models.Address, error) {
	var address models.Address
	if err := c.do(ctx, http.MethodPost, "/api/addresses", token, body, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

func (c *BackendClient) UpdateAddress(ctx context.Context, token, addressID string, patch map[string]interface{}) (*models.Address, error) {
	var address models.Address
	if err := c.do(ctx, http.MethodPatch, "/api/addresses/"+resource(addressID), token, patch, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

// Bookings

func (c *BackendClient) ListBookings(ctx context.Context, token, salonID string) ([]models.Booking, error) {
	q := url.Values{}
	q.Set("salonId", salonID)
	var bookings []models.Booking
	err := c.do(ctx, http.MethodGet, "/api/bookings?"+q.Encode(), token, nil, &bookings)
	return bookings, err
}

func (c *BackendClient) GetBooking(ctx context.Context, token, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/"+resource(bookingID), token, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BackendClient) CreateBooking(ctx context.Context, token string, req models.CreateBookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", token, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BackendClient) ConfirmBooking(ctx context.Context, token, bookingID string) (*models.Booking, error) {
	return c.transitionBooking(ctx, token, "/api/bookings/"+resource(bookingID, "confirm"), nil)
}

func (c *BackendClient) CompleteBooking(ctx context.Context, token, bookingID string) (*models.Booking, error) {
	return c.transitionBooking(ctx, token, "/api/bookings/"+resource(bookingID, "complete"), nil)
}

func (c *BackendClient) CancelBooking(ctx context.Context, token, bookingID string) (*models.Booking, error) {
	body := map[string]interface{}{"status": models.BookingCancelled}
	return c.transitionBooking(ctx, token, "/api/bookings/"+resource(bookingID), body)
}

func (c *BackendClient) transitionBooking(ctx context.Context, token, path string, body interface{}) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, http.MethodPatch, path, token, body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Availability fetches the backend-computed slots for a service, staff
// member and day (YYYY-MM-DD).
func (c *BackendClient) Availability(ctx context.Context, token, serviceID, staffID, date string) ([]models.AvailabilitySlot, error) {
	q := url.Values{}
	q.Set("serviceId", serviceID)
	q.Set("staffId", staffID)
	q.Set("date", date)
	var payload slotsPayload
	if err := c.do(ctx, http.MethodGet, "/api/bookings/availability?"+q.Encode(), token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Slots, nil
}

// slotsPayload accepts a bare list or {"slots": [...]}; entries may be
// objects or plain "HH:MM" strings, which count as available.
type slotsPayload struct {
	Slots []models.AvailabilitySlot
}

func (p *slotsPayload) UnmarshalJSON(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		var wrapped struct {
			Slots        []json.RawMessage `json:"slots"`
			Availability []json.RawMessage `json:"availability"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		entries = wrapped.Slots
		if entries == nil {
			entries = wrapped.Availability
		}
	}

	p.Slots = make([]models.AvailabilitySlot, 0, len(entries))
	for _, e := range entries {
		var s string
		if err := json.Unmarshal(e, &s); err == nil {
			p.Slots = append(p.Slots, models.AvailabilitySlot{Time: s, Available: true})
			continue
		}
		var slot models.AvailabilitySlot
		if err := json.Unmarshal(e, &slot); err != nil {
			return err
		}
		p.Slots = append(p.Slots, slot)
	}
	return nil
}

// Services

func (c *BackendClient) ListServices(ctx context.Context, token, salonID string) ([]models.Service, error) {
	var services []models.Service
	err := c.do(ctx, http.MethodGet, "/api/services/salon/"+resource(salonID), token, nil, &services)
	return services, err
}

func (c *BackendClient) CreateService(ctx context.Context, token string, body interface{}) (*models.Service, error) {
	var service models.Service
	if err := c.do(ctx, http.MethodPost, "/api/services", token, body, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *BackendClient) UpdateService(ctx context.Context, token, serviceID string, body interface{}) (*models.Service, error) {
	var service models.Service
	if err := c.do(ctx, http.MethodPatch, "/api/services/"+resource(serviceID), token, body, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *BackendClient) DeleteService(ctx context.Context, token, serviceID string) error {
	return c.do(ctx, http.MethodDelete, "/api/services/"+resource(serviceID), token, nil, nil)
}

// Staff

func (c *BackendClient) ListStaff(ctx context.Context, token, salonID string) ([]models.StaffMember, error) {
	var staff []models.StaffMember
	err := c.do(ctx, http.MethodGet, "/api/staff/salon/"+resource(salonID), token, nil, &staff)
	return staff, err
}

func (c *BackendClient) CreateStaff(ctx context.Context, token string, body interface{}) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := c.do(ctx, http.MethodPost, "/api/staff", token, body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *BackendClient) UpdateStaff(ctx context.Context, token, staffID string, body interface{}) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := c.do(ctx, http.MethodPatch, "/api/staff/"+resource(staffID), token, body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *BackendClient) DeleteStaff(ctx context.Context, token, staffID string) error {
	return c.do(ctx, http.MethodDelete, "/api/staff/"+resource(staffID), token, nil, nil)
}

// Products

func (c *BackendClient) ListProducts(ctx context.Context, token, salonID string) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/api/products/salon/"+resource(salonID), token, nil, &products)
	return products, err
}

func (c *BackendClient) CreateProduct(ctx context.Context, token string, body interface{}) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", token, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *BackendClient) UpdateProduct(ctx context.Context, token, productID string, body interface{}) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPatch, "/api/products/"+resource(productID), token, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *BackendClient) DeleteProduct(ctx context.Context, token, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+resource(productID), token, nil, nil)
}

// Customers and analytics

func (c *BackendClient) ListCustomers(ctx context.Context, token, salonID string) ([]models.Customer, error) {
	var customers []models.Customer
	err := c.do(ctx, http.MethodGet, "/api/customers/salon/"+resource(salonID), token, nil, &customers)
	return customers, err
}

func (c *BackendClient) Analytics(ctx context.Context, token, salonID string, r utils.DateRange) (*models.AnalyticsData, error) {
	q := url.Values{}
	q.Set("startDate", r.StartDate())
	q.Set("endDate", r.EndDate())
	var data models.AnalyticsData
	if err := c.do(ctx, http.MethodGet, "/api/analytics/salons/"+resource(salonID)+"?"+q.Encode(), token, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
