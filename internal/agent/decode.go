package agent

import "encoding/json"

var knownFields = map[string]bool{
	"name": true, "command": true, "extension": true, "interval": true,
	"timeout": true, "standalone": true, "handle": true,
	"issued": true, "executed": true, "duration": true, "output": true, "status": true,
}

// decodeCheckRequest parses a JSON text object (§6: "Payload is a text
// object of a check request") into a CheckRequest, stashing any key this
// core doesn't know about in Extra so it passes through untouched.
func decodeCheckRequest(raw []byte) (CheckRequest, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return CheckRequest{}, err
	}
	return requestFromMap(m), nil
}

func requestFromMap(m map[string]interface{}) CheckRequest {
	def := CheckDefinition{Extra: map[string]interface{}{}}
	if v, ok := m["name"].(string); ok {
		def.Name = v
	}
	if v, ok := m["command"].(string); ok {
		def.Command = v
	}
	if v, ok := m["extension"].(string); ok {
		def.Extension = v
	}
	if v, ok := numberOf(m["interval"]); ok {
		def.Interval = int(v)
	}
	if v, ok := numberOf(m["timeout"]); ok {
		def.Timeout = v
	}
	if v, ok := m["standalone"].(bool); ok {
		def.Standalone = v
	}
	if v, ok := m["handle"].(bool); ok {
		def.Handle = boolPtr(v)
	}
	for k, v := range m {
		if !knownFields[k] {
			def.Extra[k] = v
		}
	}

	req := CheckRequest{CheckDefinition: def}
	if v, ok := numberOf(m["issued"]); ok {
		req.Issued = int64(v)
	}
	if v, ok := numberOf(m["executed"]); ok {
		req.Executed = int64(v)
	}
	if v, ok := numberOf(m["duration"]); ok {
		req.Duration = v
	}
	if v, ok := m["output"].(string); ok {
		req.Output = v
	}
	if v, ok := numberOf(m["status"]); ok {
		req.Status = int(v)
	}
	return req
}

func numberOf(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// mergeLocal merges a locally-defined check over a received request: local
// fields win (§3: "merged with any same-named local definition (local
// fields override)").
func mergeLocal(received CheckRequest, local map[string]interface{}) CheckRequest {
	if local == nil {
		return received
	}
	localDef := requestFromMap(local).CheckDefinition

	merged := received
	if localDef.Command != "" {
		merged.Command = localDef.Command
	}
	if localDef.Extension != "" {
		merged.Extension = localDef.Extension
	}
	if localDef.Interval != 0 {
		merged.Interval = localDef.Interval
	}
	if localDef.Timeout != 0 {
		merged.Timeout = localDef.Timeout
	}
	if localDef.Handle != nil {
		merged.Handle = localDef.Handle
	}
	if v, ok := local["standalone"].(bool); ok {
		merged.Standalone = v
	}
	for k, v := range localDef.Extra {
		if merged.Extra == nil {
			merged.Extra = map[string]interface{}{}
		}
		merged.Extra[k] = v
	}
	return merged
}

// asMap flattens a CheckRequest back to a JSON-shaped map for the result
// envelope and for settings-tree lookups that need the request's own
// fields (none currently do, but this keeps Extra round-tripping).
func (r CheckRequest) asMap() map[string]interface{} {
	m := map[string]interface{}{}
	for k, v := range r.Extra {
		m[k] = v
	}
	m["name"] = r.Name
	if r.Command != "" {
		m["command"] = r.Command
	}
	if r.Extension != "" {
		m["extension"] = r.Extension
	}
	if r.Interval != 0 {
		m["interval"] = r.Interval
	}
	if r.Timeout != 0 {
		m["timeout"] = r.Timeout
	}
	if r.Standalone {
		m["standalone"] = r.Standalone
	}
	if r.Handle != nil {
		m["handle"] = *r.Handle
	} else {
		m["handle"] = r.resolvedHandle()
	}
	m["executed"] = r.Executed
	m["duration"] = r.Duration
	m["output"] = r.Output
	m["status"] = r.Status
	if r.Issued != 0 {
		m["issued"] = r.Issued
	}
	return m
}
