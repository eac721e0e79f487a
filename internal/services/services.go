// Package services holds the order, admin, menu and login workflows. Every
// operation receives the caller's identity explicitly.
package services

import (
	"strings"

	"restaurant/internal/config"
	"restaurant/internal/models"
)

var allowedStatuses = strings.Join(models.OrderStatuses, ", ")

// IsAdmin is a pure check of the identity's email against the allow-list.
func IsAdmin(admins config.EmailSet, ident models.Identity) bool {
	return ident.Authenticated() && admins.Contains(ident.Email)
}
