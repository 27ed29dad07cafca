package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordState(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name        string
		completedAt *time.Time
		failed      bool
		confirmed   bool
		want        State
	}{
		{"fresh record is running", nil, false, false, StateRunning},
		{"completed, unconfirmed", &now, false, false, StateComplete},
		{"completed and confirmed", &now, false, true, StateConfirmed},
		{"failed", nil, true, false, StateFailed},
		{"failed dominates completed", &now, true, false, StateFailed},
		{"failed dominates confirmed", &now, true, true, StateFailed},
		{"running ignores confirmed flag", nil, false, true, StateRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &Record{
				CompletedAt: tt.completedAt,
				Failed:      tt.failed,
				Confirmed:   tt.confirmed,
			}
			assert.Equal(t, tt.want, record.State())
		})
	}
}
