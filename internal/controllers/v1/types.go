package v1

import (
	ep_uuid "github.com/expansepro/backend/internal/uuid"
)

type URIID struct {
	ID ep_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIName struct {
	Name string `uri:"name" binding:"required"` // Name of the resource
}
