package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/viuelpadel/internal/adapter/driven/memory"
	"github.com/ericfisherdev/viuelpadel/internal/application"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// --- Mock implementations ---

type lineCall struct {
	remittanceID, clientID, amount int64
}

type mockGateway struct {
	clients         []model.ClientListItem
	client          model.Client
	invoices        []model.Invoice
	remittanceTypes []model.RemittanceType
	remittances     []model.Remittance
	lines           []model.RemittanceLine
	typeClients     []model.RemittanceTypeClient
	err             error

	cleared     int
	activated   []string
	edited      map[string]model.NewClientPayload
	addedLines  []lineCall
	validated   []int64
	typeUpdates map[int64]int64
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		edited:      make(map[string]model.NewClientPayload),
		typeUpdates: make(map[int64]int64),
	}
}

func (m *mockGateway) CheckAuth(_ context.Context) (bool, error) { return m.err == nil, m.err }
func (m *mockGateway) ListClients(_ context.Context) ([]model.ClientListItem, error) {
	return m.clients, m.err
}
func (m *mockGateway) GetClient(_ context.Context, _ string) (*model.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	c := m.client
	return &c, nil
}
func (m *mockGateway) CreateClient(_ context.Context, p model.NewClientPayload) error {
	m.edited[""] = p
	return m.err
}
func (m *mockGateway) EditClient(_ context.Context, original string, p model.NewClientPayload) error {
	m.edited[original] = p
	return m.err
}
func (m *mockGateway) ActivateClient(_ context.Context, name string) error {
	m.activated = append(m.activated, name)
	return m.err
}
func (m *mockGateway) DeactivateClient(_ context.Context, _ string) error { return m.err }
func (m *mockGateway) ListInvoices(_ context.Context) ([]model.Invoice, error) {
	return m.invoices, m.err
}
func (m *mockGateway) ListRemittanceTypes(_ context.Context) ([]model.RemittanceType, error) {
	return m.remittanceTypes, m.err
}
func (m *mockGateway) ListRemittances(_ context.Context, _ int64) ([]model.Remittance, error) {
	return m.remittances, m.err
}
func (m *mockGateway) ListRemittanceLines(_ context.Context, _ int64) ([]model.RemittanceLine, error) {
	return m.lines, m.err
}
func (m *mockGateway) ListRemittanceTypeClients(_ context.Context, _ int64) ([]model.RemittanceTypeClient, error) {
	return m.typeClients, m.err
}
func (m *mockGateway) ValidateRemittance(_ context.Context, id int64) error {
	m.validated = append(m.validated, id)
	return m.err
}
func (m *mockGateway) AddRemittanceLine(_ context.Context, remittanceID, clientID, amount int64) (int64, error) {
	m.addedLines = append(m.addedLines, lineCall{remittanceID, clientID, amount})
	return 99, m.err
}
func (m *mockGateway) UpdateRemittanceLine(_ context.Context, _, _ int64) error { return m.err }
func (m *mockGateway) AddRemittanceTypeClient(_ context.Context, _, _, _ int64) (int64, error) {
	return 0, m.err
}
func (m *mockGateway) UpdateRemittanceTypeClient(_ context.Context, id, amount int64) error {
	m.typeUpdates[id] = amount
	return m.err
}
func (m *mockGateway) ClearCache() { m.cleared++ }

// --- Helpers ---

const testCSRF = "test-csrf-token"

type fixture struct {
	gw      *mockGateway
	auth    *application.AuthService
	history *application.NavigationHistory
	mux     *http.ServeMux
}

func setup(t *testing.T, loggedIn bool) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := newMockGateway()
	slot := application.NewCredentialSlot(memory.NewCredentialStore())
	auth := application.NewAuthService(slot, gw, logger)
	if loggedIn {
		require.NoError(t, auth.Login(context.Background(), "admin-key"))
	}
	history := application.NewNavigationHistory()

	h := NewHandler(gw, auth, application.NewOverviewService(gw), history, logger)
	h.now = func() time.Time { return time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC) }

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return &fixture{gw: gw, auth: auth, history: history, mux: mux}
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (f *fixture) post(target string, form url.Values, withCSRF bool) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	if withCSRF {
		form.Set(csrfFormField, testCSRF)
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRF})

	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) hasCredential(t *testing.T) bool {
	t.Helper()
	ok, err := f.auth.HasCredential(context.Background())
	require.NoError(t, err)
	return ok
}

func sampleInvoices() []model.Invoice {
	return []model.Invoice{
		{Number: "F-001", Type: "Quota", Client: "Ana Puig", Description: "Quota **març**", Amount: decimal.RequireFromString("40.5"), Date: "01-03-2024"},
		{Number: "F-002", Type: "Classe", Client: "Pau Serra", Description: "Classe", Amount: decimal.RequireFromString("25"), Date: "15-03-2024"},
		{Number: "F-003", Type: "Quota", Client: "Pau Serra", Description: "Quota abril", Amount: decimal.RequireFromString("40.5"), Date: "01-04-2024"},
	}
}

// --- Session ---

func TestHome_LoggedOutShowsLoginForm(t *testing.T) {
	f := setup(t, false)

	rec := f.get("/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="admin_key"`)
	assert.NotContains(t, rec.Body.String(), `action="/logout"`)
}

func TestHome_LoggedInShowsOverview(t *testing.T) {
	f := setup(t, true)
	f.gw.clients = []model.ClientListItem{{Client: "Ana Puig"}}
	f.gw.invoices = sampleInvoices()

	rec := f.get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>2</strong> invoices in 2024-03")
	assert.Contains(t, body, `href="/invoices?date=2024-03"`)
	assert.Contains(t, body, `action="/logout"`)
}

func TestLogin_StoresCredentialAndRedirectsHome(t *testing.T) {
	f := setup(t, false)
	f.history.Visit("/clients")
	f.history.Visit("/invoices")

	rec := f.post("/login", url.Values{"admin_key": {"  new-key  "}}, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	cred, ok, err := f.auth.Credential(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new-key", cred)
	assert.Equal(t, 1, f.gw.cleared)
	assert.Empty(t, f.history.Entries())
}

func TestLogin_RejectsMissingCSRF(t *testing.T) {
	f := setup(t, false)

	rec := f.post("/login", url.Values{"admin_key": {"k"}}, false)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, f.hasCredential(t))
}

func TestLogout_ClearsCredential(t *testing.T) {
	f := setup(t, true)

	rec := f.post("/logout", nil, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.False(t, f.hasCredential(t))
	assert.Equal(t, 1, f.gw.cleared)
}

func TestBackendAuthFailureRedirectsHome(t *testing.T) {
	tests := map[string]error{
		"unauthenticated": driven.ErrUnauthenticated,
		"revoked":         &driven.RequestFailedError{Method: http.MethodGet, Endpoint: "/viuelpadel/clients", Status: http.StatusForbidden},
	}

	for name, backendErr := range tests {
		t.Run(name, func(t *testing.T) {
			f := setup(t, true)
			f.history.Visit("/invoices")
			f.history.Visit("/remittances")
			f.gw.err = backendErr

			rec := f.get("/clients")

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
			assert.Equal(t, 1, f.gw.cleared)
			assert.Empty(t, f.history.Entries())
		})
	}
}

func TestHome_RejectedKeyRendersUnauthorized(t *testing.T) {
	f := setup(t, true)
	f.history.Visit("/clients")
	f.gw.err = &driven.RequestFailedError{Method: http.MethodGet, Endpoint: "/viuelpadel/clients", Status: http.StatusForbidden}

	rec := f.get("/")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"), "home must not redirect to itself")
	assert.Equal(t, 1, f.gw.cleared)
}

func TestBackendFailureRendersErrorPage(t *testing.T) {
	f := setup(t, true)
	f.gw.err = &driven.RequestFailedError{Method: http.MethodGet, Endpoint: "/viuelpadel/clients", Status: http.StatusInternalServerError}

	rec := f.get("/clients")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "status 500")
	assert.True(t, f.hasCredential(t), "only a 403 revokes the credential")

	f.gw.err = &driven.NetworkError{Method: http.MethodGet, Endpoint: "/viuelpadel/clients", Err: errors.New("refused")}
	rec = f.get("/clients")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be reached")
}

// --- Navigation ---

func TestPagesRenderBackLinkFromHistory(t *testing.T) {
	f := setup(t, true)
	f.gw.clients = []model.ClientListItem{{Client: "Ana Puig", Responsable: "Jordi Puig"}}
	f.gw.client = model.Client{Client: "Ana Puig"}

	first := f.get("/clients")
	assert.NotContains(t, first.Body.String(), `class="back"`)

	rec := f.get("/client/Ana%20Puig")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<a class="back" href="/clients">`)
	assert.Equal(t, []string{"/clients"}, f.history.Entries())

	f.get("/clients")
	assert.Empty(t, f.history.Entries(), "returning to the previous page pops it")
}

// --- Clients ---

func TestClients_SortedAndEscaped(t *testing.T) {
	f := setup(t, true)
	f.gw.clients = []model.ClientListItem{
		{Client: "Pau <b>Serra</b>", Responsable: "Jordi"},
		{Client: "Ana Puig", Responsable: "Laia"},
	}

	rec := f.get("/clients")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, "Ana Puig"), strings.Index(body, "Pau &lt;b&gt;Serra&lt;/b&gt;"))
	assert.NotContains(t, body, "<b>Serra</b>")
	assert.Contains(t, body, `href="/responsable/Jordi"`)
}

func TestResponsable_FiltersClients(t *testing.T) {
	f := setup(t, true)
	f.gw.clients = []model.ClientListItem{
		{Client: "Ana Puig", Responsable: "Jordi Puig"},
		{Client: "Pau Serra", Responsable: "Laia Serra"},
	}

	rec := f.get("/responsable/Jordi%20Puig")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ana Puig")
	assert.NotContains(t, rec.Body.String(), "Pau Serra")
}

func TestClientDetail_ShowsOwnInvoices(t *testing.T) {
	f := setup(t, true)
	f.gw.client = model.Client{Client: "Pau Serra", IBAN: "ES7921000813610123456789"}
	f.gw.invoices = sampleInvoices()

	rec := f.get("/client/Pau%20Serra")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ES7921000813610123456789")
	assert.Contains(t, body, "F-002")
	assert.Contains(t, body, "F-003")
	assert.NotContains(t, body, "F-001")
	assert.Contains(t, body, "65.00 €")
}

func TestActivateClient_ClearsCacheAndRedirects(t *testing.T) {
	f := setup(t, true)

	rec := f.post("/client/Ana%20Puig/activate", nil, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/client/Ana%20Puig", rec.Header().Get("Location"))
	assert.Equal(t, []string{"Ana Puig"}, f.gw.activated)
	assert.Equal(t, 1, f.gw.cleared)
}

func TestUpdateClient_SendsOriginalName(t *testing.T) {
	f := setup(t, true)

	rec := f.post("/client/Ana%20Puig/edit", url.Values{
		"client": {"Ana Puig Vila"},
		"iban":   {"es79 2100 0813"},
	}, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/client/Ana%20Puig%20Vila", rec.Header().Get("Location"))
	payload, ok := f.gw.edited["Ana Puig"]
	require.True(t, ok)
	assert.Equal(t, "Ana Puig Vila", payload.Client)
	assert.Equal(t, "ES7921000813", payload.IBAN)
}

func TestCreateClient_RequiresName(t *testing.T) {
	f := setup(t, true)

	rec := f.post("/clients", url.Values{"email": {"a@b.cat"}}, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
	assert.Contains(t, rec.Body.String(), `value="a@b.cat"`)
	assert.Empty(t, f.gw.edited)
	assert.Equal(t, 0, f.gw.cleared)
}

func TestWriteWithoutCSRFIsRejected(t *testing.T) {
	f := setup(t, true)

	rec := f.post("/client/Ana/activate", nil, false)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.gw.activated)
}

// --- Invoices ---

func TestInvoices_AppliesQueryFilters(t *testing.T) {
	f := setup(t, true)
	f.gw.invoices = sampleInvoices()

	rec := f.get("/invoices?date=2024-03")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "F-001")
	assert.Contains(t, body, "F-002")
	assert.NotContains(t, body, "F-003")
	assert.Contains(t, body, "<strong>març</strong>")

	rec = f.get("/invoices?type=Quota&client=Pau+Serra")
	body = rec.Body.String()
	assert.Contains(t, body, "F-003")
	assert.NotContains(t, body, "F-001")
	assert.NotContains(t, body, "F-002")
}

// --- Remittances ---

func remittanceFixture(t *testing.T, status model.RemittanceStatus) *fixture {
	t.Helper()
	f := setup(t, true)
	f.gw.remittanceTypes = []model.RemittanceType{{ID: 3, Name: "Quotes"}}
	f.gw.remittances = []model.Remittance{{ID: 7, Status: status, Month: 3, Year: 2024}}
	f.gw.lines = []model.RemittanceLine{
		{ID: 11, RemittanceID: 7, AmountMinUnit: 4050, Client: model.ClientReference{ID: 1, Name: "Ana Puig", IsActive: true}},
		{ID: 12, RemittanceID: 7, AmountMinUnit: 2500, Client: model.ClientReference{ID: 2, Name: "Pau Serra", IsActive: true}},
	}
	f.gw.typeClients = []model.RemittanceTypeClient{
		{ID: 21, RemittanceTypeID: 3, AmountMinUnit: 4050, Client: model.ClientReference{ID: 1, Name: "Ana Puig", IsActive: true}},
	}
	return f
}

func TestRemittance_PendingIsEditable(t *testing.T) {
	f := remittanceFixture(t, model.RemittanceStatusPending)

	rec := f.get("/remittance/3/7")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Quotes 2024-03")
	assert.Contains(t, body, "65.50 €")
	assert.Contains(t, body, `action="/remittance/3/7/lines/11"`)
	assert.Contains(t, body, `action="/remittance/3/7/validate"`)
	assert.Contains(t, body, `<option value="1">Ana Puig</option>`)
}

func TestRemittance_ValidatedIsReadOnly(t *testing.T) {
	f := remittanceFixture(t, model.RemittanceStatusValidated)

	rec := f.get("/remittance/3/7")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, `action="/remittance/3/7/validate"`)
	assert.NotContains(t, body, `action="/remittance/3/7/lines"`)
}

func TestRemittance_UnknownIDs(t *testing.T) {
	f := remittanceFixture(t, model.RemittanceStatusPending)

	assert.Equal(t, http.StatusNotFound, f.get("/remittance/3/8").Code)
	assert.Equal(t, http.StatusNotFound, f.get("/remittance/4/7").Code)
	assert.Equal(t, http.StatusNotFound, f.get("/remittances/abc").Code)
}

func TestRemittanceType_ListsRemittancesAndCharges(t *testing.T) {
	f := remittanceFixture(t, model.RemittanceStatusPending)

	rec := f.get("/remittances/3")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/remittance/3/7"`)
	assert.Contains(t, body, `action="/remittances/3/clients/21"`)
	assert.Contains(t, body, `value="40.50"`)
}

func TestAddRemittanceLine_ParsesAmount(t *testing.T) {
	f := remittanceFixture(t, model.RemittanceStatusPending)

	rec := f.post("/remittance/3/7/lines", url.Values{"client_id": {"1"}, "amount": {"12,50"}}, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/remittance/3/7", rec.Header().Get("Location"))
	assert.Equal(t, []lineCall{{remittanceID: 7, clientID: 1, amount: 1250}}, f.gw.addedLines)
	assert.Equal(t, 1, f.gw.cleared)
}

func TestAddRemittanceLine_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"12.505", "-3", "1e30", "92233720368547758.08"} {
		t.Run(amount, func(t *testing.T) {
			f := remittanceFixture(t, model.RemittanceStatusPending)

			rec := f.post("/remittance/3/7/lines", url.Values{"client_id": {"1"}, "amount": {amount}}, true)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, f.gw.addedLines)
			assert.Equal(t, 0, f.gw.cleared)
		})
	}
}

func TestValidateRemittance(t *testing.T) {
	f := remittanceFixture(t, model.RemittanceStatusPending)

	rec := f.post("/remittance/3/7/validate", nil, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []int64{7}, f.gw.validated)
}

func TestUpdateRemittanceTypeClient(t *testing.T) {
	f := remittanceFixture(t, model.RemittanceStatusPending)

	rec := f.post("/remittances/3/clients/21", url.Values{"amount": {"45"}}, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/remittances/3", rec.Header().Get("Location"))
	assert.Equal(t, int64(4500), f.gw.typeUpdates[21])
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in    string
		want  int64
		valid bool
	}{
		{"12", 1200, true},
		{"12.5", 1250, true},
		{"12,50", 1250, true},
		{" 0.01 ", 1, true},
		{"12.505", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1e30", 0, false},
		{"92233720368547758.08", 0, false},
		{"92233720368547758.07", 9223372036854775807, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if !tt.valid {
				var fe *formError
				assert.True(t, errors.As(err, &fe))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
