package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{
			name:   "identical intervals overlap",
			aStart: ts(10, 0), aEnd: ts(11, 0),
			bStart: ts(10, 0), bEnd: ts(11, 0),
			want: true,
		},
		{
			name:   "partial overlap",
			aStart: ts(10, 0), aEnd: ts(11, 0),
			bStart: ts(10, 30), bEnd: ts(11, 30),
			want: true,
		},
		{
			name:   "containment",
			aStart: ts(9, 0), aEnd: ts(12, 0),
			bStart: ts(10, 0), bEnd: ts(11, 0),
			want: true,
		},
		{
			name:   "touching at end does not overlap",
			aStart: ts(9, 0), aEnd: ts(10, 0),
			bStart: ts(10, 0), bEnd: ts(11, 0),
			want: false,
		},
		{
			name:   "touching at start does not overlap",
			aStart: ts(11, 0), aEnd: ts(12, 0),
			bStart: ts(10, 0), bEnd: ts(11, 0),
			want: false,
		},
		{
			name:   "disjoint",
			aStart: ts(8, 0), aEnd: ts(9, 0),
			bStart: ts(10, 0), bEnd: ts(11, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.Equal(t, tt.want, got)

			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
