package policy

import (
	"github.com/sbilibin2017/blog-service/internal/models"
)

// CanWrite reports whether the actor may mutate a resource owned by ownerID.
// Only the owner or a superuser may write; reads are not restricted here.
func CanWrite(actor *models.UserDB, ownerID int64) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.IsSuperuser
}
