// Package redact provides the pure masking function the keepalive engine
// invokes before a client block leaves the process. It is deliberately the
// only "configuration content" this module inspects: which keys are
// sensitive is decided entirely by the caller's key list.
package redact

const maskValue = "--REDACTED--"

// Mask returns a shallow copy of in with every key named in sensitive
// replaced by a fixed mask value. Nested maps are not descended into: a
// sensitive key name only matches at the top level, mirroring the client
// settings shape the keepalive payload is built from (§3 of the agent
// spec: "the client settings section ... passed through the redactor with
// the client's configured sensitive-key list").
func Mask(in map[string]interface{}, sensitive []string) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	for _, key := range sensitive {
		if _, ok := out[key]; ok {
			out[key] = maskValue
		}
	}
	return out
}
