package services

import (
	"foodbridge-match-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tp(t time.Time) *time.Time { return &t }

func TestWindowsOverlap(t *testing.T) {
	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		pickup     *domain.TimeWindow
		readyAfter *time.Time
		delivery   *domain.TimeWindow
		want       bool
	}{
		{
			name:     "nil delivery window is unconstrained",
			pickup:   &domain.TimeWindow{Start: tp(base), End: tp(base.Add(time.Hour))},
			delivery: nil,
			want:     true,
		},
		{
			name:     "no pickup bounds at all is fully flexible",
			delivery: &domain.TimeWindow{Start: tp(base), End: tp(base.Add(time.Hour))},
			want:     true,
		},
		{
			name:     "plain overlap",
			pickup:   &domain.TimeWindow{Start: tp(base), End: tp(base.Add(4 * time.Hour))},
			delivery: &domain.TimeWindow{Start: tp(base.Add(2 * time.Hour)), End: tp(base.Add(6 * time.Hour))},
			want:     true,
		},
		{
			name:     "pickup entirely before zero-width delivery window",
			pickup:   &domain.TimeWindow{Start: tp(base.Add(-4 * time.Hour)), End: tp(base.Add(-time.Hour))},
			delivery: &domain.TimeWindow{Start: tp(base), End: tp(base)},
			want:     false,
		},
		{
			name:     "pickup starts after delivery ends",
			pickup:   &domain.TimeWindow{Start: tp(base.Add(3 * time.Hour))},
			delivery: &domain.TimeWindow{End: tp(base.Add(time.Hour))},
			want:     false,
		},
		{
			name:       "ready-after pushes effective pickup start past delivery end",
			pickup:     &domain.TimeWindow{Start: tp(base.Add(-2 * time.Hour))},
			readyAfter: tp(base.Add(5 * time.Hour)),
			delivery:   &domain.TimeWindow{End: tp(base.Add(time.Hour))},
			want:       false,
		},
		{
			name:     "shared instant counts as overlap",
			pickup:   &domain.TimeWindow{Start: tp(base), End: tp(base.Add(time.Hour))},
			delivery: &domain.TimeWindow{Start: tp(base.Add(time.Hour)), End: tp(base.Add(2 * time.Hour))},
			want:     true,
		},
		{
			name:       "ready-after only, before delivery end",
			readyAfter: tp(base),
			delivery:   &domain.TimeWindow{Start: tp(base.Add(-time.Hour)), End: tp(base.Add(time.Hour))},
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WindowsOverlap(tt.pickup, tt.readyAfter, tt.delivery)
			assert.Equal(t, tt.want, got)
		})
	}
}
