package margin

import (
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// MarginCalcRequest is the immutable payload of one margin calculation.
// Build it with NewStandardRequest, NewRequest or a Builder.
type MarginCalcRequest struct {
	typ                    RequestType
	valuationDate          civil.Date
	applyClientMultiplier  bool
	reportingCurrency      string
	calculationCurrency    string
	hasCalculationCurrency bool
	portfolioData          []PortfolioDataFile
}

// Option customises the request factories.
type Option func(*requestOptions)

type requestOptions struct {
	serializer          Serializer
	calculationCurrency *string
}

// WithSerializer replaces the XML serializer used for structured portfolio objects.
func WithSerializer(s Serializer) Option {
	return func(o *requestOptions) {
		o.serializer = s
	}
}

// WithCalculationCurrency sets the currency the calculation is performed in.
// Without it the service infers the calculation currency from the reporting currency.
func WithCalculationCurrency(ccy string) Option {
	return func(o *requestOptions) {
		o.calculationCurrency = &ccy
	}
}

// NewStandardRequest creates a standard margin calculation request without the client multiplier.
//
// Each portfolio item is either a data file or a structured trade/position
// object, which is serialized to "<TypeName>.xml".
func NewStandardRequest(valuationDate civil.Date, reportingCurrency string, items []PortfolioItem, opts ...Option) (MarginCalcRequest, error) {
	return NewRequest(valuationDate, reportingCurrency, items, DefaultRequestType, false, opts...)
}

// NewRequest creates a margin calculation request of the given type.
func NewRequest(
	valuationDate civil.Date,
	reportingCurrency string,
	items []PortfolioItem,
	typ RequestType,
	applyClientMultiplier bool,
	opts ...Option,
) (MarginCalcRequest, error) {

	o := requestOptions{serializer: DefaultSerializer}
	for _, opt := range opts {
		opt(&o)
	}

	if items == nil {
		return MarginCalcRequest{}, missingField("portfolioData")
	}
	files, err := NormalizePortfolioData(items, o.serializer)
	if err != nil {
		return MarginCalcRequest{}, err
	}

	ccy, hasCcy := "", false
	if o.calculationCurrency != nil {
		ccy, hasCcy = *o.calculationCurrency, true
	}
	return newMarginCalcRequest(typ, valuationDate, applyClientMultiplier, reportingCurrency, ccy, hasCcy, files)
}

// newMarginCalcRequest is the single validating constructor; every path goes through it.
func newMarginCalcRequest(
	typ RequestType,
	valuationDate civil.Date,
	applyClientMultiplier bool,
	reportingCurrency string,
	calculationCurrency string,
	hasCalculationCurrency bool,
	portfolioData []PortfolioDataFile,
) (MarginCalcRequest, error) {

	switch {
	case typ == "":
		return MarginCalcRequest{}, missingField("type")
	case !typ.IsValid():
		return MarginCalcRequest{}, fmt.Errorf("unknown margin request type %q", string(typ))
	case valuationDate == (civil.Date{}):
		return MarginCalcRequest{}, missingField("valuationDate")
	case !valuationDate.IsValid():
		return MarginCalcRequest{}, fmt.Errorf("invalid valuation date %s", valuationDate)
	case reportingCurrency == "":
		return MarginCalcRequest{}, missingField("reportingCurrency")
	case portfolioData == nil:
		return MarginCalcRequest{}, missingField("portfolioData")
	}

	files := make([]PortfolioDataFile, len(portfolioData))
	copy(files, portfolioData)

	return MarginCalcRequest{
		typ:                    typ,
		valuationDate:          valuationDate,
		applyClientMultiplier:  applyClientMultiplier,
		reportingCurrency:      reportingCurrency,
		calculationCurrency:    calculationCurrency,
		hasCalculationCurrency: hasCalculationCurrency,
		portfolioData:          files,
	}, nil
}

// Type returns the calculation type.
func (r MarginCalcRequest) Type() RequestType {
	return r.typ
}

// ValuationDate returns the date the portfolio is processed for.
func (r MarginCalcRequest) ValuationDate() civil.Date {
	return r.valuationDate
}

// ApplyClientMultiplier reports whether the client multiplier is applied.
func (r MarginCalcRequest) ApplyClientMultiplier() bool {
	return r.applyClientMultiplier
}

// ReportingCurrency returns the ISO 4217 code results are reported in.
func (r MarginCalcRequest) ReportingCurrency() string {
	return r.reportingCurrency
}

// CalculationCurrency returns the calculation currency and whether one was set.
// An absent currency is distinct from a present empty one.
func (r MarginCalcRequest) CalculationCurrency() (string, bool) {
	return r.calculationCurrency, r.hasCalculationCurrency
}

// PortfolioData returns a copy of the portfolio data in submission order.
func (r MarginCalcRequest) PortfolioData() []PortfolioDataFile {
	if r.portfolioData == nil {
		return nil
	}
	files := make([]PortfolioDataFile, len(r.portfolioData))
	copy(files, r.portfolioData)
	return files
}

// PortfolioDataLen returns the number of portfolio data files.
func (r MarginCalcRequest) PortfolioDataLen() int {
	return len(r.portfolioData)
}

// Equal reports whether both requests carry the same values, with portfolio data in the same order.
func (r MarginCalcRequest) Equal(other MarginCalcRequest) bool {
	if r.typ != other.typ ||
		r.valuationDate != other.valuationDate ||
		r.applyClientMultiplier != other.applyClientMultiplier ||
		r.reportingCurrency != other.reportingCurrency ||
		r.calculationCurrency != other.calculationCurrency ||
		r.hasCalculationCurrency != other.hasCalculationCurrency ||
		len(r.portfolioData) != len(other.portfolioData) {
		return false
	}
	for i := range r.portfolioData {
		if r.portfolioData[i] != other.portfolioData[i] {
			return false
		}
	}
	return true
}

// ToBuilder returns a builder pre-filled with this request's values.
func (r MarginCalcRequest) ToBuilder() *Builder {
	b := NewBuilder().
		Type(r.typ).
		ValuationDate(r.valuationDate).
		ApplyClientMultiplier(r.applyClientMultiplier).
		ReportingCurrency(r.reportingCurrency).
		PortfolioData(r.PortfolioData())
	if r.hasCalculationCurrency {
		b.CalculationCurrency(r.calculationCurrency)
	}
	return b
}

func (r MarginCalcRequest) String() string {
	names := make([]string, len(r.portfolioData))
	for i, f := range r.portfolioData {
		names[i] = f.Name()
	}
	ccy := "null"
	if r.hasCalculationCurrency {
		ccy = r.calculationCurrency
	}
	return fmt.Sprintf(
		"MarginCalcRequest{type=%s, valuationDate=%s, applyClientMultiplier=%t, reportingCurrency=%s, calculationCurrency=%s, portfolioData=[%s]}",
		r.typ, r.valuationDate, r.applyClientMultiplier, r.reportingCurrency, ccy, strings.Join(names, ", "),
	)
}

// requestJSON keeps the wire field order.
type requestJSON struct {
	Type                  *RequestType        `json:"type"`
	ValuationDate         *civil.Date         `json:"valuationDate"`
	ApplyClientMultiplier bool                `json:"applyClientMultiplier"`
	ReportingCurrency     string              `json:"reportingCurrency"`
	CalculationCurrency   *string             `json:"calculationCurrency,omitempty"`
	PortfolioData         []PortfolioDataFile `json:"portfolioData"`
}

func (r MarginCalcRequest) MarshalJSON() ([]byte, error) {
	out := requestJSON{
		Type:                  &r.typ,
		ValuationDate:         &r.valuationDate,
		ApplyClientMultiplier: r.applyClientMultiplier,
		ReportingCurrency:     r.reportingCurrency,
		PortfolioData:         r.portfolioData,
	}
	if r.hasCalculationCurrency {
		out.CalculationCurrency = &r.calculationCurrency
	}
	if out.PortfolioData == nil {
		out.PortfolioData = []PortfolioDataFile{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a request, applying the same defaults and checks as Builder.Build.
func (r *MarginCalcRequest) UnmarshalJSON(data []byte) error {
	var in requestJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to decode margin request: %w", err)
	}

	b := NewBuilder().
		ApplyClientMultiplier(in.ApplyClientMultiplier).
		ReportingCurrency(in.ReportingCurrency)
	if in.Type != nil {
		b.Type(*in.Type)
	}
	if in.ValuationDate != nil {
		b.ValuationDate(*in.ValuationDate)
	}
	if in.CalculationCurrency != nil {
		b.CalculationCurrency(*in.CalculationCurrency)
	}
	if in.PortfolioData != nil {
		b.PortfolioData(in.PortfolioData)
	}

	req, err := b.Build()
	if err != nil {
		return err
	}
	*r = req
	return nil
}
