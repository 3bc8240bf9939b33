package manifest

// InterfaceKey is the fixed key of the InterfaceRecord.
const InterfaceKey = "interface"

// InterfaceRecord holds the canonical signature every handler must match.
type InterfaceRecord struct {
	Raw string
}

// CommandRecord is one handler's registration.
type CommandRecord struct {
	Name string
	Code uint64
	// Raw is the full declaration with the synthetic receiver inserted.
	Raw string
	// Imports lists the import specs of the declaring file in Go syntax,
	// e.g. `"fmt"` or `rt "runtime"`. Generation prunes the unused ones.
	Imports []string
}
