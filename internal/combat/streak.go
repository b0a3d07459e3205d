package combat

// StreakTier is the escalating feedback level derived from the kill-streak
// counter. Purely derived; no state beyond the counter persists.
type StreakTier string

const (
	TierNone   StreakTier = ""
	TierDouble StreakTier = "double"
	TierTriple StreakTier = "triple"
	TierMega   StreakTier = "mega"
)

// Streak is a rolling kill counter. Kills within the window extend the
// streak; a window elapsing without a kill resets it.
type Streak struct {
	Window float64 // seconds

	count      int
	lastKillAt float64
}

// Record registers a kill at the given sim time.
func (k *Streak) Record(now float64) {
	if k.count > 0 && now-k.lastKillAt <= k.Window {
		k.count++
	} else {
		k.count = 1
	}
	k.lastKillAt = now
}

// Tick expires the streak if the window has elapsed without a kill.
func (k *Streak) Tick(now float64) {
	if k.count > 0 && now-k.lastKillAt > k.Window {
		k.count = 0
	}
}

// Count returns the current streak length.
func (k *Streak) Count() int {
	return k.count
}

// Tier returns the feedback tier for the current counter value.
func (k *Streak) Tier() StreakTier {
	switch {
	case k.count >= 5:
		return TierMega
	case k.count >= 3:
		return TierTriple
	case k.count >= 2:
		return TierDouble
	default:
		return TierNone
	}
}
