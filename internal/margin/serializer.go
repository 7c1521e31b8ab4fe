package margin

import (
	"encoding/xml"
	"errors"
)

// Serializer converts a structured portfolio object into its canonical text form.
type Serializer interface {
	Serialize(v interface{}) (string, error)
}

// SerializerFunc adapts a plain function to the Serializer interface.
type SerializerFunc func(v interface{}) (string, error)

func (f SerializerFunc) Serialize(v interface{}) (string, error) {
	return f(v)
}

// XMLSerializer writes compact XML: no indentation and a leading XML declaration.
type XMLSerializer struct{}

func (XMLSerializer) Serialize(v interface{}) (string, error) {
	if isNil(v) {
		return "", errors.New("cannot serialize nil value")
	}
	out, err := xml.Marshal(v)
	if err != nil {
		return "", err
	}
	return xml.Header + string(out), nil
}

// DefaultSerializer is used by the request factories unless WithSerializer is given.
var DefaultSerializer Serializer = XMLSerializer{}
