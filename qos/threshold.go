package qos

import "fmt"

// MaxDynamicTh bounds |alpha| so that 2^|alpha| fits in an int64.
const MaxDynamicTh = 62

// AvailableSharedBuffer returns how many of sharedCells a single priority
// group may claim under dynamic buffer management. The PG may keep growing
// its usage x while (sharedCells - x) * 2^alpha >= x, so the boundary is
//
//	alpha >= 0: sharedCells * 2^alpha / (2^alpha + 1)
//	alpha <  0: sharedCells / (2^-alpha + 1)
//
// with integer (floor) division. The dynamic_th register encodes alpha with
// an offset of 7: register 0 is alpha -7 (1/128), register 10 is alpha 3 (8).
func AvailableSharedBuffer(sharedCells, alpha int64) (int64, error) {
	if sharedCells < 0 {
		return 0, fmt.Errorf("shared buffer %d cells: %w", sharedCells, ErrInvalidSize)
	}
	if alpha > MaxDynamicTh || alpha < -MaxDynamicTh {
		return 0, fmt.Errorf("alpha %d outside [-%d, %d]: %w", alpha, MaxDynamicTh, MaxDynamicTh, ErrInvalidDynamicThreshold)
	}
	if alpha < 0 {
		return sharedCells / (int64(1)<<uint(-alpha) + 1), nil
	}
	// floor(S*k/(k+1)) == S - ceil(S/(k+1)); avoids overflowing S*k.
	d := int64(1)<<uint(alpha) + 1
	return sharedCells - (sharedCells+d-1)/d, nil
}

// PoolAvailableSharedBuffer applies AvailableSharedBuffer for a pool's mode.
// Only dynamic pools have a closed form; static pools are rejected.
func PoolAvailableSharedBuffer(pool Pool, sharedCells, alpha int64) (int64, error) {
	if pool.Mode != PoolModeDynamic {
		return 0, fmt.Errorf("pool mode %q: %w", pool.Mode, ErrUnsupportedPoolMode)
	}
	return AvailableSharedBuffer(sharedCells, alpha)
}

// ResolveAlpha returns the dynamic threshold governing the ingress lossless
// profile: the profile's dynamic_th, or the pool's when the profile has none.
func ResolveAlpha(profile Profile, pool Pool) (int64, error) {
	switch {
	case profile.DynamicTh != nil:
		return int64(*profile.DynamicTh), nil
	case pool.DynamicTh != nil:
		return int64(*pool.DynamicTh), nil
	}
	return 0, fmt.Errorf("no dynamic_th on profile or pool: %w", ErrInvalidDynamicThreshold)
}
