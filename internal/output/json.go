package output

import "encoding/json"

// JSONFormatter renders a single report as an object and several as an array.
type JSONFormatter struct{ Pretty bool }

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(reports []Report) ([]byte, error) {
	var v any = reports
	if len(reports) == 1 {
		v = reports[0]
	}
	if j.Pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
