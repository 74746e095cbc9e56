package pets

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// petNamespace es el namespace UUIDv5 para IDs derivados de la población.
var petNamespace = uuid.MustParse("6f0e1c8e-3b0a-4c55-9c1e-5a7f2d7b9e10")

// DeriveID genera un ID estable cuando la fuente no trae uno:
// mismo (especie, nombre, fila) => mismo ID entre recargas.
func DeriveID(species Species, name string, row int) string {
	key := string(species) + "|" + strings.ToLower(strings.TrimSpace(name)) + "|" + strconv.Itoa(row)
	return uuid.NewSHA1(petNamespace, []byte(key)).String()
}
