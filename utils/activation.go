package utils

import (
	"context"
	"sync"
	"time"
)

// in-memory fallback when Redis is unavailable
var (
	activationCooldowns   = map[string]time.Time{}
	activationCooldownsMu sync.Mutex
)

// ActivationCooldownTrySet sets a cooldown key for resending the activation
// email. Returns true if set, false if still cooling down. Prefers Redis so
// the cooldown survives restarts; falls back to process memory.
func ActivationCooldownTrySet(email string, cooldown time.Duration) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := "cooldown:activation:" + email
		if ok, err := rc.SetNX(ctx, key, "1", cooldown).Result(); err == nil {
			return ok
		}
	}
	activationCooldownsMu.Lock()
	defer activationCooldownsMu.Unlock()
	if until, ok := activationCooldowns[email]; ok && time.Now().Before(until) {
		return false
	}
	activationCooldowns[email] = time.Now().Add(cooldown)
	return true
}
