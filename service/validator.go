package service

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"frt-offers/domain"
	"frt-offers/repository"
)

// ValidatedRequest is an OfferRequest resolved against one catalog snapshot.
type ValidatedRequest struct {
	Request       domain.OfferRequest
	LoadPort      domain.Port
	DischargePort domain.Port
	Cargo         domain.Cargo
	Charterer     *domain.Charterer
	LaycanStart   time.Time
	LaycanEnd     time.Time
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldKinds maps request fields to the error kind reported for them.
var fieldKinds = map[string]domain.ErrorKind{
	"load_port":          domain.KindUnknownPort,
	"discharge_port":     domain.KindUnknownPort,
	"cargo":              domain.KindUnknownCargo,
	"quantity":           domain.KindInvalidQuantity,
	"quantity_tolerance": domain.KindInvalidQuantity,
	"freight_rate":       domain.KindInvalidRate,
	"demurrage_rate":     domain.KindInvalidRate,
	"laycan_start":       domain.KindInvalidLaycan,
	"laycan_end":         domain.KindInvalidLaycan,
	"charterer_id":       domain.KindUnknownCharterer,
}

// ValidateRequest checks req before any clause logic runs. It stops at the
// first failure: field shape first (in declaration order), then catalog
// lookups, then laycan ordering.
func ValidateRequest(cat *repository.Catalog, req domain.OfferRequest) (ValidatedRequest, error) {
	if err := structValidator.Struct(req); err != nil {
		return ValidatedRequest{}, translateValidationError(err)
	}

	out := ValidatedRequest{Request: req}
	var err error
	if out.LoadPort, err = ClassifyPort(cat, domain.PortRoleLoad, req.LoadPort); err != nil {
		return ValidatedRequest{}, err
	}
	if out.DischargePort, err = ClassifyPort(cat, domain.PortRoleDischarge, req.DischargePort); err != nil {
		return ValidatedRequest{}, err
	}

	cargo, ok := cat.Cargo(req.Cargo)
	if !ok {
		return ValidatedRequest{}, domain.NewError(domain.KindUnknownCargo, "cargo", "cargo %q not found", req.Cargo)
	}
	out.Cargo = cargo

	if id := strings.TrimSpace(req.ChartererID); id != "" {
		ch, ok := cat.Charterer(id)
		if !ok {
			return ValidatedRequest{}, domain.NewError(domain.KindUnknownCharterer, "charterer_id", "charterer %q not found", id)
		}
		out.Charterer = &ch
	}

	if out.LaycanStart, err = parseDate("laycan_start", req.LaycanStart); err != nil {
		return ValidatedRequest{}, err
	}
	if out.LaycanEnd, err = parseDate("laycan_end", req.LaycanEnd); err != nil {
		return ValidatedRequest{}, err
	}
	if out.LaycanEnd.Before(out.LaycanStart) {
		return ValidatedRequest{}, domain.NewError(domain.KindInvalidLaycan, "laycan_end",
			"laycan end %s is before start %s", req.LaycanEnd, req.LaycanStart)
	}
	return out, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &domain.Error{Kind: domain.KindInvalidLaycan, Field: field, Message: "malformed date", Err: err}
	}
	return t, nil
}

func translateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domain.Error{Kind: domain.KindInvalidRequest, Message: "request rejected", Err: err}
	}
	fe := verrs[0]
	kind, ok := fieldKinds[fe.Field()]
	if !ok {
		kind = domain.KindInvalidRequest
	}
	return domain.NewError(kind, fe.Field(), "%s", describeRule(fe))
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	}
	return "failed " + fe.Tag() + " check"
}
