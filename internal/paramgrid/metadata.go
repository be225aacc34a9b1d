package paramgrid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// MetadataJSON renders the original parameter mapping as indented JSON, one
// key per parameter holding its list of candidate values.
func MetadataJSON(params map[string][]cty.Value) ([]byte, error) {
	attrs := make(map[string]cty.Value, len(params))
	for name, values := range params {
		if len(values) == 0 {
			attrs[name] = cty.EmptyTupleVal
			continue
		}
		attrs[name] = cty.TupleVal(values)
	}
	obj := cty.ObjectVal(attrs)

	raw, err := ctyjson.Marshal(obj, obj.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameter metadata: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "    "); err != nil {
		return nil, fmt.Errorf("failed to indent parameter metadata: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// WriteMetadata writes MetadataJSON(params) to path.
func WriteMetadata(path string, params map[string][]cty.Value) error {
	data, err := MetadataJSON(params)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write parameter metadata %s: %w", path, err)
	}
	return nil
}

// RowJSON renders one extracted row as a compact JSON object.
func RowJSON(row map[string]cty.Value) ([]byte, error) {
	obj := cty.ObjectVal(row)
	if len(row) == 0 {
		obj = cty.EmptyObjectVal
	}
	raw, err := ctyjson.Marshal(obj, obj.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameter row: %w", err)
	}
	return raw, nil
}
