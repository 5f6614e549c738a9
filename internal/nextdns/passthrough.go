package nextdns

import (
	"bytes"
	"encoding/json"
)

// The upstream owns these shapes and adds fields over time. Decoding keeps every
// member the typed fields would not re-emit, which covers unknown keys and known
// keys holding an empty value, so that encoding reproduces the upstream keys.

// decodeWithExtra decodes data into v, which must not implement json.Marshaler,
// and returns the members encoding v alone would lose.
func decodeWithExtra(data []byte, v any) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	typed, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var emitted map[string]json.RawMessage
	if err := json.Unmarshal(typed, &emitted); err != nil {
		return nil, err
	}
	for k := range emitted {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

func encodeWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, typed := all[k]; !typed {
			all[k] = raw
		}
	}
	return json.Marshal(all)
}

// unwrapData returns the object inside a {"data": {...}} envelope, or body
// itself when there is no such envelope.
func unwrapData(body []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return body
	}
	if len(env.Data) > 0 && bytes.HasPrefix(bytes.TrimSpace(env.Data), []byte("{")) {
		return env.Data
	}
	return body
}
