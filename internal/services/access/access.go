// Package access проверяет права пользователя на изменение ресурса.
package access

import (
	"github.com/magabrotheeeer/marketplace/internal/lib/apperr"
	"github.com/magabrotheeeer/marketplace/internal/models"
)

// CheckOwner возвращает Forbidden, если ресурс принадлежит другому пользователю
func CheckOwner(p models.Principal, ownerID int64) error {
	if p.ID != ownerID {
		return apperr.NewForbidden()
	}
	return nil
}
