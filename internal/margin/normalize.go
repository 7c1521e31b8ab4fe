package margin

import (
	"errors"
	"fmt"
	"reflect"

	"frizo/margin_sdk/internal/logger"
)

const xmlFileSuffix = ".xml"

// NormalizePortfolioData turns caller inputs into portfolio data files, keeping their order.
//
// Files pass through unchanged. Objects are serialized with s and named
// "<TypeName>.xml"; two objects of the same type yield two files with the
// same name. The first serialization failure aborts the whole call and no
// files are returned. items is never modified.
func NormalizePortfolioData(items []PortfolioItem, s Serializer) ([]PortfolioDataFile, error) {
	if s == nil {
		s = DefaultSerializer
	}

	files := make([]PortfolioDataFile, 0, len(items))
	for i, item := range items {
		switch it := item.(type) {
		case FileItem:
			files = append(files, it.File)

		case ObjectItem:
			file, err := serializeObject(it, s)
			if err != nil {
				return nil, &SerializationError{Index: i, TypeName: it.TypeName, Err: err}
			}
			logger.Default().Debug("serialized portfolio object",
				"index", i,
				"name", file.Name(),
				"bytes", len(file.Data()),
			)
			files = append(files, file)

		case nil:
			return nil, &SerializationError{Index: i, Err: errors.New("nil portfolio item")}

		default:
			return nil, &SerializationError{Index: i, Err: fmt.Errorf("unsupported portfolio item %T", item)}
		}
	}
	return files, nil
}

func serializeObject(it ObjectItem, s Serializer) (PortfolioDataFile, error) {
	if isNil(it.Value) {
		return PortfolioDataFile{}, errors.New("nil portfolio object")
	}
	if it.TypeName == "" {
		return PortfolioDataFile{}, fmt.Errorf("portfolio object %T has no type name", it.Value)
	}
	data, err := s.Serialize(it.Value)
	if err != nil {
		return PortfolioDataFile{}, err
	}
	return NewPortfolioDataFile(it.TypeName+xmlFileSuffix, data), nil
}

// isNil also catches typed nils such as (*Trade)(nil), which xml.Marshal writes as nothing.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
