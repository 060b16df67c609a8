package policy

import (
	"testing"

	"github.com/sbilibin2017/blog-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanWrite(t *testing.T) {
	tests := []struct {
		name    string
		actor   *models.UserDB
		ownerID int64
		want    bool
	}{
		{
			name:    "owner may write",
			actor:   &models.UserDB{ID: 1},
			ownerID: 1,
			want:    true,
		},
		{
			name:    "non-owner may not write",
			actor:   &models.UserDB{ID: 2},
			ownerID: 1,
			want:    false,
		},
		{
			name:    "superuser may write to any resource",
			actor:   &models.UserDB{ID: 2, IsSuperuser: true},
			ownerID: 1,
			want:    true,
		},
		{
			name:    "nil actor may not write",
			actor:   nil,
			ownerID: 1,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanWrite(tt.actor, tt.ownerID))
		})
	}
}
