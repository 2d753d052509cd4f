package web

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

// formError is a rejected form value. It is rendered as a 400 page rather
// than treated as a backend failure.
type formError struct {
	field string
	msg   string
}

func (e *formError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.msg)
}

// maxCents is the largest amount in cents that fits the backend's integer
// minor-unit fields.
var maxCents = decimal.NewFromInt(math.MaxInt64)

// parseAmount converts a euro amount such as "12,50" or "12.5" into cents.
func parseAmount(raw string) (int64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, &formError{field: "amount", msg: "not a number"}
	}
	if d.IsNegative() {
		return 0, &formError{field: "amount", msg: "must not be negative"}
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, &formError{field: "amount", msg: "at most two decimals"}
	}
	if cents.GreaterThan(maxCents) {
		return 0, &formError{field: "amount", msg: "too large"}
	}
	return cents.IntPart(), nil
}

// parseID parses a positive identifier from a path or form value.
func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, &formError{field: field, msg: "invalid id"}
	}
	return id, nil
}

// clientPayloadFromForm reads the client form fields.
func clientPayloadFromForm(r *http.Request) model.NewClientPayload {
	v := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	return model.NewClientPayload{
		Client:          v("client"),
		Responsable:     v("responsable"),
		Address1:        v("address1"),
		Address2:        v("address2"),
		Email:           v("email"),
		Phone:           v("phone"),
		IDType:          v("id_type"),
		IDValue:         v("id_value"),
		ClientReference: v("client_reference"),
		MandateRef:      v("mandate_ref"),
		MandateSignedAt: v("mandate_signed_at"),
		IBAN:            strings.ToUpper(strings.ReplaceAll(v("iban"), " ", "")),
	}
}
