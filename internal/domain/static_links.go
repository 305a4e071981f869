package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StaticLink is the denormalized descriptor kept on the asset row for fast
// display. It mirrors a static row in the link tables and is append-only.
type StaticLink struct {
	ServiceID    uuid.UUID  `json:"service_id"`
	SubServiceID *uuid.UUID `json:"sub_service_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DecodeStaticLinks is the single deserialize boundary for the serialized
// static_service_links column. An empty column decodes to an empty list.
func DecodeStaticLinks(raw datatypes.JSON) ([]StaticLink, error) {
	if len(raw) == 0 {
		return []StaticLink{}, nil
	}
	var links []StaticLink
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, Wrap(CodeStorage, "DecodeStaticLinks", err)
	}
	return links, nil
}

// EncodeStaticLinks re-serializes the full list; the store has no
// partial-array update primitive.
func EncodeStaticLinks(links []StaticLink) (datatypes.JSON, error) {
	if links == nil {
		links = []StaticLink{}
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return nil, Wrap(CodeStorage, "EncodeStaticLinks", err)
	}
	return datatypes.JSON(raw), nil
}

// ContainsStaticLink reports whether the descriptor list already carries the
// (service, sub-service) pair. A nil sub-service only matches a nil one.
func ContainsStaticLink(links []StaticLink, serviceID uuid.UUID, subServiceID *uuid.UUID) bool {
	for _, l := range links {
		if l.ServiceID != serviceID {
			continue
		}
		if (l.SubServiceID == nil) != (subServiceID == nil) {
			continue
		}
		if l.SubServiceID == nil || *l.SubServiceID == *subServiceID {
			return true
		}
	}
	return false
}

// AppendStaticLink adds the descriptor unless the pair is already present.
func AppendStaticLink(links []StaticLink, serviceID uuid.UUID, subServiceID *uuid.UUID, at time.Time) []StaticLink {
	if ContainsStaticLink(links, serviceID, subServiceID) {
		return links
	}
	return append(links, StaticLink{ServiceID: serviceID, SubServiceID: subServiceID, CreatedAt: at})
}
