package diagram

import (
	"encoding/xml"
	"errors"
	"fmt"
	"sort"
)

// EncodeXML serializes a whole diagram as the XML text payload used for
// cross-process clipboard transfer
func EncodeXML(r *Root) ([]byte, error) {
	if r == nil {
		return nil, errors.New("cannot encode nil diagram")
	}

	doc := toDocument(r)
	names := make([]string, 0, len(doc.Keywords))
	for k := range doc.Keywords {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		doc.KeywordList = append(doc.KeywordList, docKeyword{Name: k, Value: doc.Keywords[k]})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode diagram as XML: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// DecodeXML parses a diagram from an XML payload
func DecodeXML(data []byte) (*Root, error) {
	if len(data) == 0 {
		return nil, errors.New("empty XML input")
	}

	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return fromDocument(&doc)
}
