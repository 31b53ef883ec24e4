package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmissionVerdict(t *testing.T) {
	cases := []struct {
		name      string
		quota     uint32
		taken     int64
		duplicate bool
		want      error
	}{
		{name: "empty session admits", quota: 10, taken: 0, want: nil},
		{name: "last spot admits", quota: 10, taken: 9, want: nil},
		{name: "full session rejects", quota: 10, taken: 10, want: ErrQuotaFull},
		{name: "overfull session rejects", quota: 10, taken: 11, want: ErrQuotaFull},
		{name: "quota one single spot", quota: 1, taken: 0, want: nil},
		{name: "quota one full", quota: 1, taken: 1, want: ErrQuotaFull},
		{name: "duplicate booking rejects", quota: 10, taken: 3, duplicate: true, want: ErrAlreadyReserved},
		// A full session reports quota before the duplicate rule.
		{name: "full wins over duplicate", quota: 10, taken: 10, duplicate: true, want: ErrQuotaFull},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := admissionVerdict(tc.quota, tc.taken, tc.duplicate)
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

// Shrinking a session's quota below the live reservation count must not
// break existing bookings, only block new ones.
func TestAdmissionVerdictShrunkQuota(t *testing.T) {
	assert.ErrorIs(t, admissionVerdict(2, 5, false), ErrQuotaFull)
}
