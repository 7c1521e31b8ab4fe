package margin

import "cloud.google.com/go/civil"

// Builder stages the fields of a MarginCalcRequest.
//
// A required-field setter given a zero value (an empty type or currency, a
// zero date, nil portfolio data) records a *MissingFieldError. Only the
// first such error is kept, and it stays recorded: Build reports it even if
// a later call supplies a valid value for the same field.
//
// It is not safe for concurrent use.
type Builder struct {
	typ                    RequestType
	valuationDate          civil.Date
	applyClientMultiplier  bool
	reportingCurrency      string
	calculationCurrency    string
	hasCalculationCurrency bool
	portfolioData          []PortfolioDataFile

	// first setter failure, reported by Build
	err error
}

// NewBuilder returns a builder with the type preset to DefaultRequestType.
func NewBuilder() *Builder {
	return &Builder{typ: DefaultRequestType}
}

func (b *Builder) fail(field string) *Builder {
	if b.err == nil {
		b.err = missingField(field)
	}
	return b
}

// Type sets the calculation type.
func (b *Builder) Type(typ RequestType) *Builder {
	if typ == "" {
		return b.fail("type")
	}
	b.typ = typ
	return b
}

// ValuationDate sets the date the portfolio is processed for.
func (b *Builder) ValuationDate(d civil.Date) *Builder {
	if d == (civil.Date{}) {
		return b.fail("valuationDate")
	}
	b.valuationDate = d
	return b
}

// ApplyClientMultiplier sets whether the client multiplier is applied.
func (b *Builder) ApplyClientMultiplier(apply bool) *Builder {
	b.applyClientMultiplier = apply
	return b
}

// ReportingCurrency sets the ISO 4217 code results are reported in.
func (b *Builder) ReportingCurrency(ccy string) *Builder {
	if ccy == "" {
		return b.fail("reportingCurrency")
	}
	b.reportingCurrency = ccy
	return b
}

// CalculationCurrency sets the optional calculation currency.
func (b *Builder) CalculationCurrency(ccy string) *Builder {
	b.calculationCurrency = ccy
	b.hasCalculationCurrency = true
	return b
}

// ClearCalculationCurrency removes the calculation currency, leaving the service to infer it.
func (b *Builder) ClearCalculationCurrency() *Builder {
	b.calculationCurrency = ""
	b.hasCalculationCurrency = false
	return b
}

// PortfolioData replaces the portfolio data. An empty, non-nil slice is valid.
func (b *Builder) PortfolioData(files []PortfolioDataFile) *Builder {
	if files == nil {
		return b.fail("portfolioData")
	}
	b.portfolioData = make([]PortfolioDataFile, len(files))
	copy(b.portfolioData, files)
	return b
}

// AddPortfolioData appends files to the portfolio data.
func (b *Builder) AddPortfolioData(files ...PortfolioDataFile) *Builder {
	if b.portfolioData == nil {
		b.portfolioData = make([]PortfolioDataFile, 0, len(files))
	}
	b.portfolioData = append(b.portfolioData, files...)
	return b
}

// Build validates the staged values and returns the immutable request.
func (b *Builder) Build() (MarginCalcRequest, error) {
	if b.err != nil {
		return MarginCalcRequest{}, b.err
	}
	return newMarginCalcRequest(
		b.typ,
		b.valuationDate,
		b.applyClientMultiplier,
		b.reportingCurrency,
		b.calculationCurrency,
		b.hasCalculationCurrency,
		b.portfolioData,
	)
}
