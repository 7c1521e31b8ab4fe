package margin

import "reflect"

// PortfolioItem is one caller-supplied portfolio input.
// The only implementations are FileItem and ObjectItem.
type PortfolioItem interface {
	portfolioItem()
}

// FileItem is an input that is already a portfolio data file.
type FileItem struct {
	File PortfolioDataFile
}

// ObjectItem is a structured trade, position or portfolio object that is
// serialized to XML during normalization.
type ObjectItem struct {
	Value    interface{}
	TypeName string
}

func (FileItem) portfolioItem()   {}
func (ObjectItem) portfolioItem() {}

// File wraps a portfolio data file as an item.
func File(f PortfolioDataFile) PortfolioItem {
	return FileItem{File: f}
}

// Files wraps each file as an item, keeping their order.
func Files(files ...PortfolioDataFile) []PortfolioItem {
	items := make([]PortfolioItem, len(files))
	for i, f := range files {
		items[i] = FileItem{File: f}
	}
	return items
}

// Object wraps a structured object as an item named after its Go type.
// Pointers are dereferenced, so *Trade and Trade are both named "Trade".
// A PortfolioDataFile is passed through as a FileItem.
func Object(v interface{}) PortfolioItem {
	switch f := v.(type) {
	case PortfolioDataFile:
		return FileItem{File: f}
	case *PortfolioDataFile:
		if f != nil {
			return FileItem{File: *f}
		}
	}
	return ObjectItem{Value: v, TypeName: SimpleTypeName(v)}
}

// NamedObject wraps a structured object under an explicit type name.
func NamedObject(v interface{}, typeName string) PortfolioItem {
	return ObjectItem{Value: v, TypeName: typeName}
}

// SimpleTypeName returns the unqualified type name of v, or "" for nil and unnamed types.
func SimpleTypeName(v interface{}) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}
