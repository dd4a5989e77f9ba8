package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex res_01HV3Q6N9X2C5M8K4T7B1R0W2Z
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns an upper-cased short code with a prefix.
// Total length is capped at 12 characters, e.g. `HOTEL4XZ8QK`.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.NewReplacer("-", "", "_", "").Replace(id)

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(prefix + id)
}

const (
	UUID_PREFIX_USER              = "user"
	UUID_PREFIX_SITE              = "site"
	UUID_PREFIX_ROOM_TYPE         = "rtype"
	UUID_PREFIX_ROOM              = "room"
	UUID_PREFIX_COUPON            = "cpn"
	UUID_PREFIX_COUPON_ASSIGNMENT = "cpa"
	UUID_PREFIX_RESERVATION       = "res"
	UUID_PREFIX_EVENT             = "event"
)

const (
	SHORT_ID_PREFIX_COUPON = "HTL"
)
