package services

import (
	"github.com/vrickster/vault/internal/provider"
	"github.com/vrickster/vault/pkg/logger"
)

// withRotation runs fn against the domain's current provider. When that
// call fails the registry rotates once and fn runs exactly once more
// against the new provider; fn receives the provider name so its cache key
// stays provider-scoped and a bad entry for the old provider is never
// reused. Returns false when both attempts failed, so callers hand back
// their domain's empty sentinel. Errors never propagate past this helper.
func withRotation(reg *provider.Registry, d provider.Domain, log logger.Logger, op string, fn func(providerName string) error) bool {
	current := reg.Current(d)
	err := fn(current)
	if err == nil {
		return true
	}

	next := reg.Rotate(d)
	log.Warnf("[%s] %s via %s failed, rotating to %s: %v", d, op, current, next, err)

	if err = fn(next); err != nil {
		log.Errorf("[%s] %s via %s failed after rotation: %v", d, op, next, err)
		return false
	}
	return true
}
