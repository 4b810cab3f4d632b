package agent

import (
	"crypto/md5"
	"encoding/binary"
)

// splaySeconds computes the deterministic per-check splay offset (§4.4,
// §8 property 2): H is the low-64-bit little-endian reading of an MD5
// digest of "<client>:<check>". The result is stable across restarts and
// always in [0, intervalSeconds).
//
// Any stable 128-bit-wide hash whose low 64 bits vary well would do; MD5 is
// used here, matching the upstream agent this core is modeled on, purely
// for its uniform bit distribution — it is not security-sensitive (§9).
func splaySeconds(client, check string, nowMs int64, intervalSeconds int) float64 {
	if intervalSeconds <= 0 {
		return 0
	}
	sum := md5.Sum([]byte(client + ":" + check))
	h := binary.LittleEndian.Uint64(sum[:8])

	intervalMs := int64(intervalSeconds) * 1000
	hMod := int64(h % uint64(intervalMs))
	nowMod := nowMs % intervalMs
	offsetMs := ((hMod - nowMod) % intervalMs + intervalMs) % intervalMs
	return float64(offsetMs) / 1000.0
}
