package margin

import (
	"encoding/json"
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var valDate = civil.Date{Year: 2026, Month: 10, Day: 15}

func sampleFiles() []PortfolioDataFile {
	return []PortfolioDataFile{
		NewPortfolioDataFile("trades.csv", "id,qty\n1,10\n"),
		NewPortfolioDataFile("positions.csv", "id,qty\n2,20\n"),
	}
}

func TestNewStandardRequest(t *testing.T) {
	files := sampleFiles()
	items := []PortfolioItem{File(files[0]), Object(FraTrade{ID: "1"}), File(files[1])}

	req, err := NewStandardRequest(valDate, "USD", items)
	require.NoError(t, err)

	assert.Equal(t, RequestTypeStandard, req.Type())
	assert.Equal(t, valDate, req.ValuationDate())
	assert.False(t, req.ApplyClientMultiplier())
	assert.Equal(t, "USD", req.ReportingCurrency())

	ccy, ok := req.CalculationCurrency()
	assert.False(t, ok)
	assert.Equal(t, "", ccy)

	data := req.PortfolioData()
	require.Len(t, data, 3)
	assert.Equal(t, files[0], data[0])
	assert.Equal(t, "FraTrade.xml", data[1].Name())
	assert.Equal(t, files[1], data[2])
}

func TestNewRequestExtended(t *testing.T) {
	req, err := NewRequest(valDate, "EUR", Files(sampleFiles()...), RequestTypeFull, true,
		WithCalculationCurrency("GBP"))
	require.NoError(t, err)

	assert.Equal(t, RequestTypeFull, req.Type())
	assert.True(t, req.ApplyClientMultiplier())

	ccy, ok := req.CalculationCurrency()
	assert.True(t, ok)
	assert.Equal(t, "GBP", ccy)
}

func TestNewRequestWithSerializer(t *testing.T) {
	ser := SerializerFunc(func(v interface{}) (string, error) {
		return "custom", nil
	})

	req, err := NewStandardRequest(valDate, "USD", []PortfolioItem{Object(SwapPosition{})}, WithSerializer(ser))
	require.NoError(t, err)
	assert.Equal(t, []PortfolioDataFile{NewPortfolioDataFile("SwapPosition.xml", "custom")}, req.PortfolioData())
}

func TestNewRequestSerializationFailure(t *testing.T) {
	ser := SerializerFunc(func(v interface{}) (string, error) {
		return "", errors.New("cannot write")
	})

	req, err := NewStandardRequest(valDate, "USD", []PortfolioItem{Object(SwapPosition{})}, WithSerializer(ser))
	assert.True(t, errors.Is(err, ErrSerialization))
	assert.Equal(t, 0, req.PortfolioDataLen())
}

func TestNewRequestMissingFields(t *testing.T) {
	items := Files(sampleFiles()...)

	tests := []struct {
		name  string
		build func() error
		field string
	}{
		{"valuationDate", func() error {
			_, err := NewStandardRequest(civil.Date{}, "USD", items)
			return err
		}, "valuationDate"},
		{"reportingCurrency", func() error {
			_, err := NewStandardRequest(valDate, "", items)
			return err
		}, "reportingCurrency"},
		{"portfolioData", func() error {
			_, err := NewStandardRequest(valDate, "USD", nil)
			return err
		}, "portfolioData"},
		{"type", func() error {
			_, err := NewRequest(valDate, "USD", items, "", false)
			return err
		}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingField))

			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.field, missing.Field)
		})
	}
}

func TestNewRequestInvalidValues(t *testing.T) {
	_, err := NewRequest(valDate, "USD", []PortfolioItem{}, RequestType("QUICK"), false)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingField))

	_, err = NewStandardRequest(civil.Date{Year: 2026, Month: 2, Day: 30}, "USD", []PortfolioItem{})
	assert.Error(t, err)
}

func TestEmptyPortfolioIsValid(t *testing.T) {
	req, err := NewStandardRequest(valDate, "USD", []PortfolioItem{})
	require.NoError(t, err)
	assert.NotNil(t, req.PortfolioData())
	assert.Equal(t, 0, req.PortfolioDataLen())
}

func TestRequestImmutable(t *testing.T) {
	files := sampleFiles()
	req, err := NewBuilder().
		ValuationDate(valDate).
		ReportingCurrency("USD").
		PortfolioData(files).
		Build()
	require.NoError(t, err)

	// mutate the caller's slice and the returned copy
	files[0] = NewPortfolioDataFile("changed.csv", "")
	data := req.PortfolioData()
	data[1] = NewPortfolioDataFile("changed.csv", "")

	again := req.PortfolioData()
	assert.Equal(t, "trades.csv", again[0].Name())
	assert.Equal(t, "positions.csv", again[1].Name())
}

func TestRequestEqual(t *testing.T) {
	files := sampleFiles()

	a, err := NewStandardRequest(valDate, "USD", Files(files...))
	require.NoError(t, err)
	b, err := NewStandardRequest(valDate, "USD", Files(files...))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	reordered, err := NewStandardRequest(valDate, "USD", Files(files[1], files[0]))
	require.NoError(t, err)
	assert.False(t, a.Equal(reordered))

	withCcy, err := NewStandardRequest(valDate, "USD", Files(files...), WithCalculationCurrency(""))
	require.NoError(t, err)
	assert.False(t, a.Equal(withCcy), "absent and empty calculation currency differ")

	full, err := NewRequest(valDate, "USD", Files(files...), RequestTypeFull, false)
	require.NoError(t, err)
	assert.False(t, a.Equal(full))
}

func TestToBuilder(t *testing.T) {
	req, err := NewRequest(valDate, "USD", Files(sampleFiles()...), RequestTypeFull, true,
		WithCalculationCurrency("EUR"))
	require.NoError(t, err)

	copied, err := req.ToBuilder().Build()
	require.NoError(t, err)
	assert.True(t, req.Equal(copied))

	changed, err := req.ToBuilder().ClearCalculationCurrency().ReportingCurrency("JPY").Build()
	require.NoError(t, err)
	assert.Equal(t, "JPY", changed.ReportingCurrency())
	_, ok := changed.CalculationCurrency()
	assert.False(t, ok)
	assert.Equal(t, "USD", req.ReportingCurrency())
}

func TestRequestJSON(t *testing.T) {
	req, err := NewBuilder().
		ValuationDate(valDate).
		ReportingCurrency("USD").
		AddPortfolioData(NewPortfolioDataFile("a.csv", "1")).
		Build()
	require.NoError(t, err)

	out, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"STANDARD","valuationDate":"2026-10-15","applyClientMultiplier":false,"reportingCurrency":"USD","portfolioData":[{"name":"a.csv","data":"1"}]}`,
		string(out))

	var decoded MarginCalcRequest
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, req.Equal(decoded))

	withCcy, err := req.ToBuilder().CalculationCurrency("EUR").Build()
	require.NoError(t, err)
	out, err = json.Marshal(withCcy)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"reportingCurrency":"USD","calculationCurrency":"EUR","portfolioData"`)
}

func TestRequestJSONDefaultsAndValidation(t *testing.T) {
	var req MarginCalcRequest
	require.NoError(t, json.Unmarshal([]byte(`{"valuationDate":"2026-10-15","reportingCurrency":"USD","portfolioData":[]}`), &req))
	assert.Equal(t, RequestTypeStandard, req.Type())
	assert.Equal(t, 0, req.PortfolioDataLen())

	err := json.Unmarshal([]byte(`{"valuationDate":"2026-10-15","portfolioData":[]}`), &req)
	assert.True(t, errors.Is(err, ErrMissingField))

	err = json.Unmarshal([]byte(`{"valuationDate":"2026-10-15","reportingCurrency":"USD"}`), &req)
	assert.True(t, errors.Is(err, ErrMissingField))

	err = json.Unmarshal([]byte(`{"type":"QUICK","valuationDate":"2026-10-15","reportingCurrency":"USD","portfolioData":[]}`), &req)
	assert.Error(t, err)
}

func TestRequestString(t *testing.T) {
	req, err := NewStandardRequest(valDate, "USD", Files(sampleFiles()...))
	require.NoError(t, err)
	assert.Equal(t,
		"MarginCalcRequest{type=STANDARD, valuationDate=2026-10-15, applyClientMultiplier=false, reportingCurrency=USD, calculationCurrency=null, portfolioData=[trades.csv, positions.csv]}",
		req.String())
}
