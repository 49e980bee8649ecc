package domain

import (
	"math"
	"time"
)

const (
	megabyte = int64(1024 * 1024)

	// UnlimitedStorage and UnlimitedCount stand in for plans without a ceiling.
	UnlimitedStorage = int64(math.MaxInt64)
	UnlimitedCount   = math.MaxInt32
)

// QuotaState holds a user's storage ceiling and daily upload/generation counters.
// Version is the optimistic-concurrency token of the stored record.
type QuotaState struct {
	StorageUsed      int64
	StorageLimit     int64
	UploadsToday     int
	UploadsLimit     int
	GenerationsToday int
	GenerationsLimit int
	LastResetDate    time.Time
	Version          int64
}

// QuotaLimits is one row of the plan lookup table.
type QuotaLimits struct {
	StorageBytes int64
	Uploads      int
	Generations  int
}

// DefaultLimits returns the ceilings a new user starts with.
func DefaultLimits(role Role, plan Plan) QuotaLimits {
	switch plan {
	case PlanStudent:
		return QuotaLimits{StorageBytes: 50 * megabyte, Uploads: 20, Generations: 100}
	case PlanEducator:
		return QuotaLimits{StorageBytes: 500 * megabyte, Uploads: UnlimitedCount, Generations: UnlimitedCount}
	case PlanEnterprise:
		return QuotaLimits{StorageBytes: UnlimitedStorage, Uploads: UnlimitedCount, Generations: UnlimitedCount}
	}
	if role == RoleStudent {
		return QuotaLimits{StorageBytes: 10 * megabyte, Uploads: 5, Generations: 20}
	}
	return QuotaLimits{StorageBytes: 100 * megabyte, Uploads: 50, Generations: 100}
}

// NewQuotaState initializes an empty quota with the given limits.
func NewQuotaState(limits QuotaLimits, now time.Time) QuotaState {
	return QuotaState{
		StorageLimit:     limits.StorageBytes,
		UploadsLimit:     limits.Uploads,
		GenerationsLimit: limits.Generations,
		LastResetDate:    now,
	}
}

func sameCalendarDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// EnsureFreshDay zeroes the daily counters when now falls on a later calendar
// day than the last reset. The day is evaluated in now's location.
func EnsureFreshDay(q QuotaState, now time.Time) QuotaState {
	if sameCalendarDay(q.LastResetDate, now) {
		return q
	}
	q.UploadsToday = 0
	q.GenerationsToday = 0
	q.LastResetDate = now
	return q
}

func CanUpload(q QuotaState) bool {
	return CanUploadN(q, 1)
}

// CanUploadN reports whether n more uploads fit in today's allowance.
func CanUploadN(q QuotaState, n int) bool {
	return q.UploadsLimit-q.UploadsToday >= n
}

func CanGenerate(q QuotaState) bool {
	return q.GenerationsToday < q.GenerationsLimit
}

func CanStore(q QuotaState, additionalBytes int64) bool {
	return additionalBytes <= q.StorageLimit-q.StorageUsed
}

// RecordUpload counts one upload of the given size. Limits are not re-checked.
func RecordUpload(q QuotaState, bytes int64) QuotaState {
	q.UploadsToday++
	q.StorageUsed += bytes
	return q
}

func RecordGeneration(q QuotaState) QuotaState {
	q.GenerationsToday++
	return q
}

// ReleaseStorage frees bytes, never dropping below zero.
func ReleaseStorage(q QuotaState, bytes int64) QuotaState {
	q.StorageUsed -= bytes
	if q.StorageUsed < 0 {
		q.StorageUsed = 0
	}
	return q
}

// RemainingUploads is the number of uploads still allowed today.
func RemainingUploads(q QuotaState) int {
	if q.UploadsToday >= q.UploadsLimit {
		return 0
	}
	return q.UploadsLimit - q.UploadsToday
}
