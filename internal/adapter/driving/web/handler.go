// Package web implements the HTML console driving adapter using templ components.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/viuelpadel/internal/application"
	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// Handler is the web console driving adapter that serves HTML via templ components.
type Handler struct {
	gateway  driven.BackendGateway
	auth     *application.AuthService
	overview *application.OverviewService
	history  *application.NavigationHistory
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	gateway driven.BackendGateway,
	auth *application.AuthService,
	overview *application.OverviewService,
	history *application.NavigationHistory,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		gateway:  gateway,
		auth:     auth,
		overview: overview,
		history:  history,
		logger:   logger,
		now:      time.Now,
	}
}

// Home renders the login form when no credential is stored and the
// dashboard otherwise.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	loggedIn, err := h.auth.HasCredential(r.Context())
	if err != nil {
		h.handleBackendError(w, r, err, "failed to read credential")
		return
	}
	if !loggedIn {
		h.render(w, r, http.StatusOK, "Log in", pages.Login)
		return
	}

	now := h.now()
	summary, err := h.overview.Summary(r.Context(), now.Year(), int(now.Month()))
	if err != nil {
		h.handleBackendError(w, r, err, "failed to load dashboard")
		return
	}

	monthLabel := fmt.Sprintf("%04d-%02d", summary.CurrentYear, summary.CurrentMonth)
	dashboard := vm.DashboardViewModel{
		ClientCount:       summary.ClientCount,
		InvoiceCount:      summary.InvoiceCount,
		InvoicesThisMonth: summary.InvoicesThisMonth,
		MonthLabel:        monthLabel,
		MonthInvoicesPath: "/invoices?date=" + monthLabel,
		InvoiceTypes:      summary.InvoiceTypes,
		RemittanceTypes:   toRemittanceTypeViewModels(summary.RemittanceTypes),
	}
	h.render(w, r, http.StatusOK, "Overview", func(string) templ.Component {
		return pages.Dashboard(dashboard)
	})
}

// Login stores the submitted admin key and returns to the home page. The key
// is not validated here; the first backend request does that.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	if err := h.auth.Login(r.Context(), r.FormValue("admin_key")); err != nil {
		h.handleBackendError(w, r, err, "failed to store credential")
		return
	}
	h.resetSession()
	http.Redirect(w, r, application.HomePath, http.StatusSeeOther)
}

// Logout clears the admin key and returns to the home page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	if err := h.auth.Logout(r.Context()); err != nil {
		h.handleBackendError(w, r, err, "failed to clear credential")
		return
	}
	h.resetSession()
	http.Redirect(w, r, application.HomePath, http.StatusSeeOther)
}

// render writes body inside the layout. GET pages are recorded in the
// navigation history before the back link is computed.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title string, body func(csrfToken string) templ.Component) {
	token := csrfToken(w, r)

	path := r.URL.EscapedPath()
	if r.Method == http.MethodGet {
		h.history.Visit(path)
	}
	back, _ := h.history.PreviousRoute(path)

	loggedIn, err := h.auth.HasCredential(r.Context())
	if err != nil {
		h.logger.Error("failed to read credential", "error", err)
	}

	meta := vm.PageMeta{
		Title:     title,
		CSRFToken: token,
		BackURL:   back,
		LoggedIn:  loggedIn,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Layout(meta, body(token)).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", path, "error", err)
	}
}

// renderError renders the error page with the given status.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, http.StatusText(status), func(string) templ.Component {
		return pages.Error(vm.ErrorViewModel{Status: status, Message: message})
	})
}

// handleBackendError applies the console's failure policy. A missing or
// revoked credential resets the session and redirects home, where the login
// form is shown. Other failures render an error page.
func (h *Handler) handleBackendError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var (
		failed *driven.RequestFailedError
		netErr *driven.NetworkError
	)

	switch {
	case errors.Is(err, driven.ErrUnauthenticated), errors.Is(err, driven.ErrAuthRevoked):
		h.logger.Warn(msg, "error", err)
		h.resetSession()
		if r.Method == http.MethodGet && r.URL.Path == application.HomePath {
			// Home renders the 401 page instead of redirecting so the redirect cannot loop.
			h.renderError(w, r, http.StatusUnauthorized, "The admin key was rejected.")
			return
		}
		http.Redirect(w, r, application.HomePath, http.StatusSeeOther)
	case errors.As(err, &failed):
		h.logger.Error(msg, "error", err)
		h.renderError(w, r, http.StatusBadGateway, fmt.Sprintf("The backend answered %s with status %d.", failed.Endpoint, failed.Status))
	case errors.As(err, &netErr):
		h.logger.Error(msg, "error", err)
		h.renderError(w, r, http.StatusBadGateway, "The backend could not be reached.")
	default:
		h.logger.Error(msg, "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "Something went wrong.")
	}
}

// resetSession drops everything tied to the previous credential, as a full
// page reload of the console would.
func (h *Handler) resetSession() {
	h.gateway.ClearCache()
	h.history.Reset()
}

// mutate runs a backend write for a POST form, clears the response cache on
// success and redirects to target.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, msg string, target func() string, write func(ctx context.Context) error) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	if err := write(r.Context()); err != nil {
		var invalid *formError
		if errors.As(err, &invalid) {
			h.renderError(w, r, http.StatusBadRequest, invalid.Error())
			return
		}
		h.handleBackendError(w, r, err, msg)
		return
	}

	h.gateway.ClearCache()
	http.Redirect(w, r, target(), http.StatusSeeOther)
}
