package pmolog

import (
	"bytes"
	"encoding/xml"
)

// PrettyPrintXML reindents an XML fragment for debug output. Broken
// input is returned as far as it could be tokenized.
func PrettyPrintXML(raw string) string {
	var out bytes.Buffer
	dec := xml.NewDecoder(bytes.NewReader([]byte(raw)))
	enc := xml.NewEncoder(&out)
	enc.Indent("", "  ")
	for {
		t, err := dec.Token()
		if err != nil {
			break
		}
		if err := enc.EncodeToken(t); err != nil {
			break
		}
	}
	enc.Flush()
	return out.String()
}
