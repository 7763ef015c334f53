package entity

import (
	"encoding/json"
	"strings"

	"github.com/civic-interconnect/cep-core/pkg/cep"
)

// entityJSON mirrors Entity's wire form; EntityType itself is not
// transmitted, since entityTypeUri already encodes it (TypeURI/stripping
// typeURIPrefix round-trip it losslessly).
type entityJSON Entity

// MarshalJSON implements the wire form of §6: lowerCamelCase field names,
// optional fields omitted when absent.
func (e Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(entityJSON(e))
}

// UnmarshalJSON implements the wire form of §6, accepting both omitted and
// explicit JSON-null optional fields, and re-deriving EntityType from the
// transmitted entityTypeUri.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var dto entityJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return cep.NewInvalidJSON(err)
	}
	*e = Entity(dto)
	e.EntityType = TypeCode(strings.TrimPrefix(e.EntityTypeURI, typeURIPrefix))
	return nil
}
