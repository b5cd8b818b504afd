package types

import (
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// Record id prefixes, e.g. exp_01HZX3T5V8K9N2Q4R6S7W8Y0AB
const (
	UUID_PREFIX_USER    = "user"
	UUID_PREFIX_EXPENSE = "exp"
	UUID_PREFIX_CLIENT  = "cli"
	UUID_PREFIX_INVOICE = "inv"
)

// SHORT_ID_PREFIX_INVOICE starts every human readable invoice number
const SHORT_ID_PREFIX_INVOICE = "INV-"

// invoiceNumberLen fits the invoices.number column
const invoiceNumberLen = 16

// GenerateUUID returns a ULID, so ids sort by creation time
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns prefix_ULID, or a bare ULID for an empty prefix
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}

var (
	sidOnce sync.Once
	sid     *shortid.Shortid
)

// GenerateShortIDWithPrefix returns prefix followed by a shortid, cut to 16
// characters in total, e.g. INV-dppUr2Hk. It returns "" if the prefix leaves no room.
func GenerateShortIDWithPrefix(prefix string) string {
	room := invoiceNumberLen - len(prefix)
	if room <= 0 {
		return ""
	}

	sidOnce.Do(func() {
		sid = shortid.MustNew(1, shortid.DefaultABC, uint64(time.Now().UnixNano()))
	})

	id, err := sid.Generate()
	if err != nil {
		// fall back to the random tail of a ULID
		id = GenerateUUID()[10:]
	}
	id = strings.NewReplacer("-", "", "_", "").Replace(id)
	if len(id) > room {
		id = id[:room]
	}
	return prefix + id
}
