package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Registry_PreservesRegistrationOrder(t *testing.T) {
	r := &registry{}

	a := On(func() {})
	b := On(func() {})
	c := On(func() {})

	assert.True(t, r.add(a))
	assert.True(t, r.add(b))
	assert.True(t, r.add(c))

	entries, swept := r.snapshot()
	assert.Zero(t, swept)
	assert.Equal(t, []*Observer{a, b, c}, entries)

	// Removing the middle entry keeps the order of the rest.
	assert.True(t, r.remove(b))

	entries, _ = r.snapshot()
	assert.Equal(t, []*Observer{a, c}, entries)
}

func Test_Registry_DeduplicatesByHandleIdentity(t *testing.T) {
	r := &registry{}

	obs := On(func() {})

	assert.True(t, r.add(obs))
	assert.False(t, r.add(obs))
	assert.Len(t, r.entries, 1)

	// Distinct handles over the same function body are distinct observers.
	other := On(func() {})
	assert.True(t, r.add(other))
	assert.Len(t, r.entries, 2)
}

func Test_Registry_RemoveAbsentReportsFalse(t *testing.T) {
	r := &registry{}

	assert.False(t, r.remove(On(func() {})))
	assert.True(t, r.empty())
}

func Test_Registry_SweepsDeadEntries(t *testing.T) {
	r := &registry{}

	live := On(func() {})
	dead := On(func() {})
	dead.alive = func() bool { return false }

	r.add(live)
	// Bypass add's sweep to plant a dead entry between live ones.
	r.entries = append(r.entries, dead)
	tail := On(func() {})
	r.entries = append(r.entries, tail)

	entries, swept := r.snapshot()
	assert.Equal(t, 1, swept)
	assert.Equal(t, []*Observer{live, tail}, entries)
}

func Test_Registry_HasOldNewChecksLiveEntriesOnly(t *testing.T) {
	r := &registry{}

	assert.False(t, r.hasOldNew())

	r.add(On(func() {}))
	assert.False(t, r.hasOldNew())

	dead := OnChange(func(old, new any) {})
	dead.alive = func() bool { return false }
	r.entries = append(r.entries, dead)
	assert.False(t, r.hasOldNew())

	r.add(OnChange(func(old, new any) {}))
	assert.True(t, r.hasOldNew())
}
