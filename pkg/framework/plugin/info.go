package plugin

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Namespace for deriving class IDs from plugin IDs.
var uidNamespace = uuid.MustParse("6f1a4e52-0b7d-5c39-9d38-2a6e4c1f8b07")

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Product  string // Product name reported to the host
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")
	FourCC   string // Four character unique ID for legacy hosts
}

// UID derives the 16-byte class ID from the string ID. The same ID always
// yields the same UID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(uidNamespace, []byte(i.ID))
}

// ValidateUID checks that a class ID can be derived.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID cannot be empty")
	}
	if i.UID() == ([16]byte{}) {
		return fmt.Errorf("plugin ID %q produced an empty UID", i.ID)
	}
	return nil
}

// UniqueID packs FourCC big-endian into a uint32, so "tRbE" becomes
// 0x74526245. It fails unless FourCC is exactly four bytes.
func (i Info) UniqueID() (uint32, error) {
	if len(i.FourCC) != 4 {
		return 0, fmt.Errorf("unique ID %q must be 4 characters", i.FourCC)
	}
	return binary.BigEndian.Uint32([]byte(i.FourCC)), nil
}
